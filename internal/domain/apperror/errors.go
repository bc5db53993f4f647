// Package apperror holds the error types shared by the use cases and the HTTP layer.
package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrPageLimitExceeded is returned when a cursor-paginated fetch does not finish within the page cap
	ErrPageLimitExceeded = errors.New("pagination page limit exceeded")

	// ErrCursorRejected is returned when a next-page cursor repeats or points off the API host
	ErrCursorRejected = errors.New("pagination cursor rejected")
)

// ConfigurationError reports required settings that are missing
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) == 0 {
		return "configuration error"
	}
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// RemoteAPIError is a non-2xx response from OwnerRez
type RemoteAPIError struct {
	Operation string
	Status    int
	Message   string
	Details   json.RawMessage
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("OwnerRez API error: %d - %s", e.Status, e.Message)
}

// Summary is the short "<status> - <message>" form reported to clients as ownerRezError
func (e *RemoteAPIError) Summary() string {
	return fmt.Sprintf("%d - %s", e.Status, e.Message)
}

// ValidationError reports missing or invalid request fields
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// NotFoundError reports a resource that is absent from every source
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// PersistenceError wraps an unexpected local store failure
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("persistence error during %s", e.Op)
	}
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps an error to the status code returned to clients
func HTTPStatus(err error) int {
	var (
		cfgErr      *ConfigurationError
		remoteErr   *RemoteAPIError
		validErr    *ValidationError
		notFoundErr *NotFoundError
		persistErr  *PersistenceError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &cfgErr), errors.As(err, &persistErr):
		return http.StatusInternalServerError
	case errors.As(err, &remoteErr):
		if remoteErr.Status >= 400 && remoteErr.Status < 600 {
			return remoteErr.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
