package clientcli

import (
	"fmt"
	"io"
)

// FormatUpload writes the share URL of an upload.
func FormatUpload(w io.Writer, result *UploadResult) error {
	_, err := fmt.Fprintln(w, result.URL)
	return err
}

// FormatList writes a history page as indented JSON with sorted keys.
func FormatList(w io.Writer, result *ListResult) error {
	out, err := result.Pretty()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// FormatError writes an error as a single human-readable line.
func FormatError(w io.Writer, err error) error {
	_, werr := fmt.Fprintf(w, "Error: %v\n", err)
	return werr
}
