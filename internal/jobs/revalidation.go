package jobs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/karloscodes/cartridge"
)

var _ cartridge.BackgroundWorker = (*Revalidator)(nil)

// Revalidator tells an external frontend cache that public content changed.
// Notifications arriving within the settle delay are sent as one request.
type Revalidator struct {
	url    string
	secret string
	client *http.Client
	logger *slog.Logger
	delay  time.Duration

	pending chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	started bool
}

// NewRevalidator creates a revalidator posting to url. An empty url disables it.
func NewRevalidator(url, secret string, logger *slog.Logger) *Revalidator {
	return &Revalidator{
		url:     url,
		secret:  secret,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
		delay:   2 * time.Second,
		pending: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Enabled reports whether a revalidation URL is configured.
func (r *Revalidator) Enabled() bool {
	return r != nil && r.url != ""
}

// Notify schedules a revalidation. It never blocks.
func (r *Revalidator) Notify() {
	if !r.Enabled() {
		return
	}
	select {
	case r.pending <- struct{}{}:
	default:
	}
}

// Start runs the delivery worker until Stop.
func (r *Revalidator) Start() error {
	if !r.Enabled() || r.started {
		return nil
	}
	r.started = true
	r.logger.Info("Starting revalidation worker", slog.String("url", r.url))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		for {
			select {
			case <-r.pending:
			case <-r.done:
				return
			}

			select {
			case <-time.After(r.delay):
			case <-r.done:
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), r.client.Timeout)
			if err := r.Send(ctx); err != nil {
				r.logger.Error("Failed to revalidate frontend cache", slog.Any("error", err))
			}
			cancel()
		}
	}()
	return nil
}

// Stop ends the worker. Pending notifications are dropped.
func (r *Revalidator) Stop() {
	if r == nil || !r.started {
		return
	}
	r.once.Do(func() { close(r.done) })
	r.wg.Wait()
}

// Send posts a revalidation request immediately.
func (r *Revalidator) Send(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{"secret": r.secret})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("revalidation endpoint returned status %d", resp.StatusCode)
	}

	r.logger.Debug("Frontend cache revalidated", slog.Int("status", resp.StatusCode))
	return nil
}
