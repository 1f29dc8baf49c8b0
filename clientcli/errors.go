package clientcli

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/takeshixx/kleber"
)

// ErrConfigRequired is returned by New when no config is given.
var ErrConfigRequired = errors.New("config is required")

const maxErrorBodyLen = 200

// APIError represents an unexpected response from the server.
type APIError struct {
	Op         string
	StatusCode int
	Body       string

	kind error
}

func newAPIError(op string, kind error, statusCode int, body []byte) *APIError {
	return &APIError{
		Op:         op,
		StatusCode: statusCode,
		Body:       string(body),
		kind:       kind,
	}
}

func (e *APIError) Error() string {
	msg := e.Op + " failed (" + strconv.Itoa(e.StatusCode) + ")"
	body := strings.Join(strings.Fields(e.Body), " ")
	if body == "" {
		return msg
	}
	if len(body) > maxErrorBodyLen {
		body = body[:maxErrorBodyLen] + "..."
	}
	return msg + ": " + body
}

// Unwrap returns kleber.ErrUploadFailed or kleber.ErrListFailed.
func (e *APIError) Unwrap() error {
	return e.kind
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrUnauthorized is returned when the API key is invalid or missing (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrForbidden is returned when the request is not permitted (403).
	ErrForbidden = &APIError{StatusCode: http.StatusForbidden}

	// ErrPayloadTooLarge is returned when the service rejects the upload size (413).
	ErrPayloadTooLarge = &APIError{StatusCode: http.StatusRequestEntityTooLarge}
)

// invalidInput converts a validation failure into an ErrInvalidInput error
// naming the offending field and value.
func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %w", kleber.ErrInvalidInput, err)
	}
	fe := verrs[0]
	return fmt.Errorf("%w: invalid %s value: %v", kleber.ErrInvalidInput, strings.ToLower(fe.Field()), fe.Value())
}
