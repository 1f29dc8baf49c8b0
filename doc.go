// Package kleber provides the shared primitives of the Kleber command-line
// client: error kinds, version information and helpers for building share
// URLs and rendering API responses.
//
// Kleber (https://kleber.io) is a file and paste sharing service. Uploads
// are addressed by a short identifier called a shortcut; the share URL is
// the service origin followed by that shortcut.
//
// # Key Components
//
//   - clientcli: HTTP client for the upload and history endpoints
//   - config: API key resolution from ~/.kleberrc and friends
//   - apitest: in-memory Kleber API for tests
//   - cmd/kleber: the kleber command
//
// # Example Usage
//
//	cfg, err := config.Load(config.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := clientcli.New(&clientcli.Config{APIKey: cfg.APIKey})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.Upload(ctx, clientcli.UploadOptions{
//	    Source:   "notes.txt",
//	    Lifetime: kleber.DefaultLifetime,
//	})
//
// Errors returned by the client and the loader wrap one of the sentinel
// errors declared in this package, so callers can classify them with
// errors.Is.
package kleber
