package apitest

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	// DefaultPageSize is the number of uploads per history page.
	DefaultPageSize = 20

	shortShortcutLen = 6
	maxMemory        = 32 << 20
)

// Upload is an upload received by the server.
type Upload struct {
	Shortcut string    `json:"shortcut"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Lifetime int64     `json:"lifetime"`
	Secure   bool      `json:"secure_shortcut"`
	Created  time.Time `json:"created"`

	Password string `json:"-"`
	Content  []byte `json:"-"`
}

// Request is a request seen by the server.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// Page is the history document served by GET /api/uploads/.
type Page struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Upload `json:"results"`
}

// Server is a running fake Kleber API.
type Server struct {
	*httptest.Server

	keys     map[string]bool
	pageSize int
	now      func() time.Time

	mu       sync.Mutex
	uploads  []Upload
	requests []Request
}

// Option configures a Server.
type Option func(*Server)

// WithPageSize sets the number of uploads per history page.
func WithPageSize(n int) Option {
	return func(s *Server) {
		s.pageSize = n
	}
}

// WithUploads seeds the history.
func WithUploads(uploads ...Upload) Option {
	return func(s *Server) {
		s.uploads = append(s.uploads, uploads...)
	}
}

// NewServer starts a server accepting the given API keys.
func NewServer(apiKey string, opts ...Option) *Server {
	s := NewUnstartedServer(apiKey, opts...)
	s.Start()
	return s
}

// NewUnstartedServer returns a server that is not listening yet. Call
// Start or StartTLS before use.
func NewUnstartedServer(apiKey string, opts ...Option) *Server {
	s := &Server{
		keys:     map[string]bool{apiKey: true},
		pageSize: DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewUnstartedServer(s.Router())
	return s
}

// Router returns the http.Handler serving the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recordMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Use(TokenAuthMiddleware(s.keys))
		r.Post("/files/", s.handleUpload)
		r.Get("/uploads/", s.handleList)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusNotFound, "Not found.")
	})

	return r
}

// Uploads returns a copy of all uploads received so far, oldest first.
func (s *Server) Uploads() []Upload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Upload(nil), s.uploads...)
}

// Requests returns a copy of all requests seen so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		WriteError(w, http.StatusBadRequest, "Multipart form parse error.")
		return
	}

	lifetime, err := strconv.ParseInt(r.FormValue("lifetime"), 10, 64)
	if err != nil || lifetime <= 0 {
		WriteError(w, http.StatusBadRequest, "A valid lifetime is required.")
		return
	}

	secure, err := parseBool(r.FormValue("secure_shortcut"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Must be a valid boolean.")
		return
	}

	file, header, err := r.FormFile("uploaded_file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "No file was submitted.")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "The submitted file could not be read.")
		return
	}

	upload := Upload{
		Shortcut: newShortcut(secure),
		Name:     header.Filename,
		Size:     int64(len(content)),
		Lifetime: lifetime,
		Secure:   secure,
		Created:  s.now().UTC(),
		Password: r.FormValue("password"),
		Content:  content,
	}

	s.mu.Lock()
	s.uploads = append(s.uploads, upload)
	s.mu.Unlock()

	_ = WriteJSON(w, http.StatusCreated, upload)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed < 1 {
			WriteError(w, http.StatusNotFound, "Invalid page.")
			return
		}
		page = parsed
	}

	s.mu.Lock()
	// newest first
	all := make([]Upload, len(s.uploads))
	for i, u := range s.uploads {
		all[len(s.uploads)-1-i] = u
	}
	s.mu.Unlock()

	start := (page - 1) * s.pageSize
	if start > 0 && start >= len(all) {
		WriteError(w, http.StatusNotFound, "Invalid page.")
		return
	}
	end := min(start+s.pageSize, len(all))

	result := Page{
		Count:   len(all),
		Results: all[start:end],
	}
	if end < len(all) {
		result.Next = s.pageURL(r, page+1)
	}
	if page > 1 {
		result.Previous = s.pageURL(r, page-1)
	}

	_ = WriteJSON(w, http.StatusOK, result)
}

func (s *Server) pageURL(r *http.Request, page int) *string {
	u := fmt.Sprintf("http://%s/api/uploads/?page=%d", r.Host, page)
	return &u
}

// newShortcut returns a short identifier, or a long one when secure is set.
func newShortcut(secure bool) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if secure {
		return id
	}
	return id[:shortShortcutLen]
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "", "false":
		return false, nil
	case "true":
		return true, nil
	default:
		return false, errors.New("invalid boolean")
	}
}
