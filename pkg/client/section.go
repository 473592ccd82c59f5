package client

import "context"

// Section is the outcome of one fail-soft fetch.
type Section[T any] struct {
	Data T
	// Fallback is set when the fetch failed and Data holds the fallback.
	Fallback bool
	// Empty is set when a list fetch succeeded with no rows.
	Empty bool
	Err   error
}

// FetchSection makes exactly one attempt. On error it returns fallback
// instead of failing.
func FetchSection[T any](ctx context.Context, fetch func(context.Context) (T, error), fallback T) Section[T] {
	data, err := fetch(ctx)
	if err != nil {
		return Section[T]{Data: fallback, Fallback: true, Err: err}
	}
	return Section[T]{Data: data}
}

// FetchList is FetchSection for collections. A successful empty result is
// flagged so callers can show a placeholder.
func FetchList[T any](ctx context.Context, fetch func(context.Context) ([]T, error), fallback []T) Section[[]T] {
	section := FetchSection(ctx, fetch, fallback)
	if section.Data == nil {
		section.Data = []T{}
	}
	section.Empty = !section.Fallback && len(section.Data) == 0
	return section
}
