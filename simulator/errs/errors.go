package errs

import (
	"fmt"
	"net/http"

	"github.com/Gthulhu/schedsim/report"
	"github.com/Gthulhu/schedsim/scheduler"
	"github.com/Gthulhu/schedsim/simulator/domain"
	"github.com/pkg/errors"
)

type HTTPStatusError struct {
	StatusCode  int
	Message     string
	OriginalErr error
}

func (e *HTTPStatusError) Error() string {
	if e.OriginalErr == nil {
		return fmt.Sprintf("(status %d) %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("(status %d) %s: %v", e.StatusCode, e.Message, e.OriginalErr)
}

func (e *HTTPStatusError) Unwrap() error {
	return e.OriginalErr
}

func NewHTTPStatusError(statusCode int, message string, originalErr error) *HTTPStatusError {
	return &HTTPStatusError{
		StatusCode:  statusCode,
		Message:     message,
		OriginalErr: originalErr,
	}
}

func IsHTTPStatusError(err error) (*HTTPStatusError, bool) {
	if err == nil {
		return nil, false
	}
	var httpErr *HTTPStatusError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// FromError classifies err into an HTTP status. Errors already carrying a
// status keep it; input errors become 400, missing runs 404 and bad tokens 401.
func FromError(err error) *HTTPStatusError {
	if httpErr, ok := IsHTTPStatusError(err); ok {
		return httpErr
	}
	switch {
	case scheduler.IsInputError(err),
		errors.Is(err, domain.ErrTooManyProcesses),
		errors.Is(err, domain.ErrNoPolicy),
		errors.Is(err, domain.ErrNilQueryInput),
		errors.Is(err, report.ErrEmptyResult):
		return NewHTTPStatusError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, domain.ErrNotFound):
		return NewHTTPStatusError(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, domain.ErrInvalidToken):
		return NewHTTPStatusError(http.StatusUnauthorized, "invalid token", err)
	case errors.Is(err, domain.ErrTokenDisabled):
		return NewHTTPStatusError(http.StatusNotFound, err.Error(), err)
	}
	return NewHTTPStatusError(http.StatusInternalServerError, "internal server error", err)
}
