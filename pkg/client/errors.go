package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned when the request carried no valid session or token.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when the caller's role may not perform the request.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports a rejected payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}

// APIError is any other non-success response.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func statusError(status int, body errorBody) error {
	switch status {
	case 400:
		return &ValidationError{Message: body.Error}
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return fmt.Errorf("%w: %s", ErrNotFound, body.Error)
	}
	return &APIError{StatusCode: status, Message: body.Error, Details: body.Details}
}
