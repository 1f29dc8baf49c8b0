package clientcli

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

type formField struct {
	name  string
	value string
}

// multipartBody is a streamed multipart/form-data request body whose size
// is known up front. Only the part headers and the trailer are buffered;
// the file content is read straight from its source.
type multipartBody struct {
	reader      io.Reader
	contentType string
	size        int64
}

// newMultipartBody encodes fields followed by a single file part named
// fileField. contentSize must be the exact length of content.
func newMultipartBody(fields []formField, fileField, fileName string, content io.Reader, contentSize int64) (*multipartBody, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", f.name, err)
		}
	}
	if _, err := mw.CreateFormFile(fileField, fileName); err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	head := bytes.Clone(buf.Bytes())

	buf.Reset()
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}
	trailer := bytes.Clone(buf.Bytes())

	return &multipartBody{
		reader:      io.MultiReader(bytes.NewReader(head), content, bytes.NewReader(trailer)),
		contentType: mw.FormDataContentType(),
		size:        int64(len(head)) + contentSize + int64(len(trailer)),
	}, nil
}
