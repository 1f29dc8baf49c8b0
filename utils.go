package kleber

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultURL is the origin of the hosted service.
	DefaultURL = "https://kleber.io"

	// DefaultLifetime is the upload lifetime in seconds (7 days).
	DefaultLifetime = 604800

	// MaxUploadSize is the largest upload the service accepts (250 MiB).
	MaxUploadSize = 262144000

	// StdinSource is the source name that selects standard input.
	StdinSource = "-"

	// RCFileName is the name of the credential file.
	RCFileName = ".kleberrc"
)

// Version is the client version. It is overridden at build time with
// -ldflags "-X github.com/takeshixx/kleber.Version=...".
var Version = "dev"

// UserAgent returns the User-Agent header value sent with every request.
func UserAgent() string {
	return "Kleber CLI " + Version
}

// IsStdin reports whether source selects standard input.
func IsStdin(source string) bool {
	return source == StdinSource
}

// ShareURL builds the share URL for an upload. The password, if any, is
// appended as a single query parameter.
func ShareURL(base, shortcut, password string) string {
	u := strings.TrimSuffix(base, "/") + "/" + shortcut
	if password != "" {
		u += "?password=" + url.QueryEscape(password)
	}
	return u
}

// PrettyJSON re-indents a JSON document with two spaces and sorted object keys.
// Numbers are kept verbatim.
func PrettyJSON(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("decode json: %w", err)
	}
	if dec.More() {
		return "", errors.New("decode json: trailing data after document")
	}

	// encoding/json sorts map keys on output
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
