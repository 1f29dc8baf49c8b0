// Package apitest provides an in-memory implementation of the Kleber API for
// tests.
//
// The server implements the two endpoints the client uses:
//
//   - POST /api/files/ accepts a multipart upload and answers 201 with a shortcut
//   - GET /api/uploads/?page=N returns a paginated history document
//
// Both require "Authorization: Token <key>" with one of the configured keys.
// Every request is recorded so tests can assert on headers, counts and the
// uploaded content.
//
// # Usage
//
//	srv := apitest.NewServer("test-key")
//	defer srv.Close()
//
//	client, _ := clientcli.New(&clientcli.Config{Endpoint: srv.URL, APIKey: "test-key"})
//	result, err := client.Upload(ctx, opts)
//
//	uploads := srv.Uploads()
package apitest
