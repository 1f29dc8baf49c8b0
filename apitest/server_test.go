package apitest_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takeshixx/kleber/apitest"
)

const testKey = "test-key"

func uploadRequest(t *testing.T, url string, fields map[string]string, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("uploaded_file", "hello.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, url+"/api/files/", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Token "+testKey)
	return req
}

func TestServer_Auth(t *testing.T) {
	srv := apitest.NewServer(testKey)
	defer srv.Close()

	tt := []struct {
		Name   string
		Header string
		Want   int
	}{
		{Name: "no header", Header: "", Want: http.StatusUnauthorized},
		{Name: "wrong scheme", Header: "Bearer " + testKey, Want: http.StatusUnauthorized},
		{Name: "wrong key", Header: "Token nope", Want: http.StatusUnauthorized},
		{Name: "valid", Header: "Token " + testKey, Want: http.StatusOK},
	}

	for _, tc := range tt {
		t.Run(tc.Name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/uploads/", http.NoBody)
			require.NoError(t, err)
			if tc.Header != "" {
				req.Header.Set("Authorization", tc.Header)
			}

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tc.Want, resp.StatusCode)
		})
	}
}

func TestServer_Upload(t *testing.T) {
	t.Run("stores upload", func(t *testing.T) {
		srv := apitest.NewServer(testKey)
		defer srv.Close()

		req := uploadRequest(t, srv.URL, map[string]string{
			"lifetime":        "3600",
			"secure_shortcut": "false",
			"password":        "pw",
		}, "hello world")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var created struct {
			Shortcut string `json:"shortcut"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Len(t, created.Shortcut, 6)

		uploads := srv.Uploads()
		require.Len(t, uploads, 1)
		assert.Equal(t, created.Shortcut, uploads[0].Shortcut)
		assert.Equal(t, "hello.txt", uploads[0].Name)
		assert.Equal(t, "hello world", string(uploads[0].Content))
		assert.Equal(t, int64(3600), uploads[0].Lifetime)
		assert.Equal(t, "pw", uploads[0].Password)
		assert.False(t, uploads[0].Secure)
	})

	t.Run("secure shortcut is long", func(t *testing.T) {
		srv := apitest.NewServer(testKey)
		defer srv.Close()

		req := uploadRequest(t, srv.URL, map[string]string{"lifetime": "60", "secure_shortcut": "true"}, "x")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		uploads := srv.Uploads()
		require.Len(t, uploads, 1)
		assert.Len(t, uploads[0].Shortcut, 32)
		assert.True(t, uploads[0].Secure)
	})

	t.Run("rejects bad lifetime", func(t *testing.T) {
		srv := apitest.NewServer(testKey)
		defer srv.Close()

		req := uploadRequest(t, srv.URL, map[string]string{"lifetime": "0"}, "x")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Empty(t, srv.Uploads())
	})
}

func TestServer_List(t *testing.T) {
	seed := []apitest.Upload{
		{Shortcut: "a1"}, {Shortcut: "b2"}, {Shortcut: "c3"},
	}
	srv := apitest.NewServer(testKey, apitest.WithPageSize(2), apitest.WithUploads(seed...))
	defer srv.Close()

	get := func(t *testing.T, query string) (*http.Response, apitest.Page) {
		t.Helper()
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/uploads/"+query, http.NoBody)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Token "+testKey)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		var page apitest.Page
		if resp.StatusCode == http.StatusOK {
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&page))
		}
		return resp, page
	}

	t.Run("first page newest first", func(t *testing.T) {
		resp, page := get(t, "?page=1")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 3, page.Count)
		require.Len(t, page.Results, 2)
		assert.Equal(t, "c3", page.Results[0].Shortcut)
		assert.Equal(t, "b2", page.Results[1].Shortcut)
		assert.NotNil(t, page.Next)
		assert.Nil(t, page.Previous)
	})

	t.Run("second page", func(t *testing.T) {
		resp, page := get(t, "?page=2")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Len(t, page.Results, 1)
		assert.Equal(t, "a1", page.Results[0].Shortcut)
		assert.Nil(t, page.Next)
		assert.NotNil(t, page.Previous)
	})

	t.Run("out of range", func(t *testing.T) {
		resp, _ := get(t, "?page=3")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("not a number", func(t *testing.T) {
		resp, _ := get(t, "?page=abc")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("requests are recorded", func(t *testing.T) {
		reqs := srv.Requests()
		require.NotEmpty(t, reqs)
		assert.Equal(t, "/api/uploads/", reqs[0].Path)
		assert.Equal(t, "1", reqs[0].Query.Get("page"))
	})
}

func TestServer_EmptyHistory(t *testing.T) {
	srv := apitest.NewServer(testKey)
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/uploads/", http.NoBody)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Token "+testKey)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, float64(0), raw["count"])
	assert.Equal(t, []any{}, raw["results"])
}
