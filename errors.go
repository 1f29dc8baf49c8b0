package kleber

import "errors"

var (
	// ErrConfigUnreadable is returned when the config file is missing or is not valid JSON
	ErrConfigUnreadable = errors.New("config unreadable")
	// ErrCredentialMissing is returned when no API key could be resolved
	ErrCredentialMissing = errors.New("api key missing")
	// ErrInvalidInput is returned when an upload source, lifetime or page is invalid
	ErrInvalidInput = errors.New("invalid input")
	// ErrUploadFailed is returned when the service rejects an upload
	ErrUploadFailed = errors.New("upload failed")
	// ErrListFailed is returned when the upload history cannot be fetched
	ErrListFailed = errors.New("list failed")
	// ErrClipboardUnavailable is returned when the system clipboard cannot be written
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)
