package clientcli

import (
	"encoding/json"

	"github.com/takeshixx/kleber"
)

// UploadOptions configures an upload operation.
type UploadOptions struct {
	// Source is a file path, or "-" for standard input.
	Source string `validate:"required"`

	// Name is the display name of the upload. Defaults to Source.
	Name string

	// Password protects the upload. Optional.
	Password string

	// Secure requests a longer, harder to guess shortcut.
	Secure bool

	// Lifetime in seconds. Must be positive; use kleber.DefaultLifetime
	// for the service default.
	Lifetime int64 `validate:"gt=0"`

	// Progress, when set, observes the request body as it is sent.
	Progress ProgressFunc
}

// UploadResult represents a completed upload.
type UploadResult struct {
	URL      string `json:"url"`
	Shortcut string `json:"shortcut"`
	Name     string `json:"name"`
	Size     int64  `json:"size_bytes"`
}

// ListOptions configures a list operation.
type ListOptions struct {
	// Page is 1-indexed. Zero means the first page.
	Page int `validate:"min=1"`
}

// ListResult is one page of upload history. Body is the document returned
// by the service, untouched.
type ListResult struct {
	Page int             `json:"page"`
	Body json.RawMessage `json:"body"`
}

// Pretty renders Body indented by two spaces with sorted keys.
func (r *ListResult) Pretty() (string, error) {
	return kleber.PrettyJSON(r.Body)
}

// serverUploadResponse mirrors the JSON response of the files endpoint.
type serverUploadResponse struct {
	Shortcut string `json:"shortcut"`
}
