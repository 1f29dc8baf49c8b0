package clientcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/takeshixx/kleber"
)

const (
	filesPath   = "/api/files/"
	uploadsPath = "/api/uploads/"

	uploadFileField = "uploaded_file"

	opUpload = "upload"
	opList   = "list"
)

// Client performs operations against the Kleber API.
type Client struct {
	config        *Config
	httpClient    *http.Client
	logger        *slog.Logger
	stdin         io.Reader
	maxUploadSize int64
	validate      *validator.Validate
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout. There is no timeout by default
// since uploads may be large.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithStdin sets the reader used for the "-" source. Defaults to os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(c *Client) {
		c.stdin = r
	}
}

// WithMaxUploadSize sets the largest source Upload accepts, in bytes.
// Zero or less disables the check.
func WithMaxUploadSize(n int64) Option {
	return func(c *Client) {
		c.maxUploadSize = n
	}
}

// New creates a new Client with the given config and options.
// No network call is made.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()
	if err := cfg.ValidateWithAuth(); err != nil {
		return nil, err
	}

	c := &Client{
		config: &Config{
			Endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
			APIKey:   cfg.APIKey,
		},
		httpClient:    &http.Client{},
		logger:        slog.New(slog.DiscardHandler),
		stdin:         os.Stdin,
		maxUploadSize: kleber.MaxUploadSize,
		validate:      validator.New(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Endpoint returns the base URL the client talks to.
func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// Upload sends a file or standard input to the service and returns the
// share URL. The source is validated and opened before any request is made.
func (c *Client) Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error) {
	if err := c.validate.Struct(&opts); err != nil {
		return nil, invalidInput(err)
	}

	content, size, err := c.openSource(opts.Source)
	if err != nil {
		return nil, err
	}
	defer func() { _ = content.Close() }()

	name := opts.Name
	if name == "" {
		name = opts.Source
	}

	fields := []formField{
		{name: "lifetime", value: strconv.FormatInt(opts.Lifetime, 10)},
		{name: "secure_shortcut", value: strconv.FormatBool(opts.Secure)},
	}
	if opts.Password != "" {
		fields = append(fields, formField{name: "password", value: opts.Password})
	}

	body, err := newMultipartBody(fields, uploadFileField, name, content, size)
	if err != nil {
		return nil, err
	}

	reader := body.reader
	if opts.Progress != nil {
		progress := newProgressReader(reader, body.size, opts.Progress)
		defer progress.finish()
		reader = progress
	}

	req, err := c.newRequest(ctx, http.MethodPost, filesPath, reader)
	if err != nil {
		return nil, err
	}
	req.ContentLength = body.size
	req.Header.Set("Content-Type", body.contentType)

	c.logger.Debug("uploading",
		"name", name,
		"size", size,
		"lifetime", opts.Lifetime,
		"secure", opts.Secure,
		"password", opts.Password != "",
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %w", kleber.ErrUploadFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", kleber.ErrUploadFailed, err)
	}

	c.logger.Debug("upload response", "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode != http.StatusCreated {
		return nil, newAPIError(opUpload, kleber.ErrUploadFailed, resp.StatusCode, respBody)
	}

	var created serverUploadResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", kleber.ErrUploadFailed, err)
	}
	if created.Shortcut == "" {
		return nil, fmt.Errorf("%w: response has no shortcut", kleber.ErrUploadFailed)
	}

	return &UploadResult{
		URL:      kleber.ShareURL(c.config.Endpoint, created.Shortcut, opts.Password),
		Shortcut: created.Shortcut,
		Name:     name,
		Size:     size,
	}, nil
}

// openSource opens a file path or, for "-", buffers all of stdin.
func (c *Client) openSource(source string) (io.ReadCloser, int64, error) {
	if kleber.IsStdin(source) {
		r := c.stdin
		if c.maxUploadSize > 0 {
			r = io.LimitReader(r, c.maxUploadSize+1)
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, 0, fmt.Errorf("read stdin: %w", err)
		}
		if err := c.checkSize(source, int64(len(data))); err != nil {
			return nil, 0, err
		}
		return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
	}

	info, err := os.Stat(source)
	if err != nil || !info.Mode().IsRegular() {
		return nil, 0, fmt.Errorf("%w: %s", kleber.ErrInvalidInput, source)
	}
	if err := c.checkSize(source, info.Size()); err != nil {
		return nil, 0, err
	}

	file, err := os.Open(source) //#nosec G304 -- source is user-provided input
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", kleber.ErrInvalidInput, err)
	}
	return file, info.Size(), nil
}

func (c *Client) checkSize(source string, size int64) error {
	if c.maxUploadSize > 0 && size > c.maxUploadSize {
		return fmt.Errorf("%w: %s exceeds the maximum upload size of %d bytes", kleber.ErrInvalidInput, source, c.maxUploadSize)
	}
	return nil
}

// List fetches one page of the upload history.
func (c *Client) List(ctx context.Context, opts ListOptions) (*ListResult, error) {
	if opts.Page == 0 {
		opts.Page = 1
	}
	if err := c.validate.Struct(&opts); err != nil {
		return nil, invalidInput(err)
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(opts.Page))

	req, err := c.newRequest(ctx, http.MethodGet, uploadsPath+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("listing uploads", "page", opts.Page)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %w", kleber.ErrListFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", kleber.ErrListFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(opList, kleber.ErrListFailed, resp.StatusCode, body)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not valid json", kleber.ErrListFailed)
	}

	return &ListResult{
		Page: opts.Page,
		Body: json.RawMessage(body),
	}, nil
}

// newRequest builds an authenticated request for path below the endpoint.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.config.Endpoint+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", kleber.UserAgent())
	req.Header.Set("Authorization", "Token "+c.config.APIKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}
