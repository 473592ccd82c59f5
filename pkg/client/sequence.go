package client

import "strings"

// SequenceEditor edits an ordered list of strings, such as a project's
// technologies, before it is submitted with the rest of the form.
type SequenceEditor struct {
	items []string
}

// NewSequenceEditor starts from initial, dropping blanks and duplicates.
func NewSequenceEditor(initial []string) *SequenceEditor {
	e := &SequenceEditor{items: []string{}}
	for _, v := range initial {
		e.Add(v)
	}
	return e
}

// Add appends the trimmed value. It reports false for blanks and values
// already present.
func (e *SequenceEditor) Add(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || e.Contains(value) {
		return false
	}
	e.items = append(e.items, value)
	return true
}

// Remove deletes value, reporting whether it was present.
func (e *SequenceEditor) Remove(value string) bool {
	for i, item := range e.items {
		if item == value {
			e.items = append(e.items[:i], e.items[i+1:]...)
			return true
		}
	}
	return false
}

func (e *SequenceEditor) Contains(value string) bool {
	for _, item := range e.items {
		if item == value {
			return true
		}
	}
	return false
}

// Items returns a copy of the sequence.
func (e *SequenceEditor) Items() []string {
	return append([]string{}, e.items...)
}

func (e *SequenceEditor) Len() int { return len(e.items) }
