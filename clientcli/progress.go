package clientcli

import (
	"io"
	"sync"
)

// ProgressFunc is called while an upload body is being sent. sent is the
// number of bytes handed to the transport so far, total the full encoded
// request size. The final call has done set and is made exactly once.
type ProgressFunc func(sent int64, total int64, done bool)

// progressReader counts the bytes read through it.
// Originally from https://github.com/machinebox/progress (Apache License 2.0)
type progressReader struct {
	reader io.Reader
	sent   int64
	total  int64
	fn     ProgressFunc
	done   bool
	mu     sync.Mutex
}

func newProgressReader(r io.Reader, total int64, fn ProgressFunc) *progressReader {
	return &progressReader{
		reader: r,
		total:  total,
		fn:     fn,
	}
}

// Read passes reads through to the underlying reader and reports the new
// byte count. Reaching EOF finishes the report.
func (r *progressReader) Read(p []byte) (n int, err error) {
	n, err = r.reader.Read(p)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}
	r.sent += int64(n)
	if err == io.EOF {
		r.done = true
		r.fn(r.sent, r.total, true)
	} else if n > 0 {
		r.fn(r.sent, r.total, false)
	}
	return
}

// finish reports completion if the body was not read to the end, e.g.
// because the request failed early.
func (r *progressReader) finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done {
		return
	}
	r.done = true
	r.fn(r.sent, r.total, true)
}
