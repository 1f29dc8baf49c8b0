// Package clientcli provides a client library for the Kleber file and paste
// sharing API.
//
// It supports uploading a file or standard input and fetching the upload
// history of the authenticated user. Requests authenticate with an API key
// sent as "Authorization: Token <key>".
//
// # Basic Usage
//
// Create a client and upload a file:
//
//	client, err := clientcli.New(&clientcli.Config{APIKey: "your-api-key"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.Upload(ctx, clientcli.UploadOptions{
//		Source:   "./notes.txt",
//		Lifetime: kleber.DefaultLifetime,
//	})
//	fmt.Println(result.URL)
//
// Use "-" as the source to upload standard input (or the reader given with
// WithStdin).
//
// # Progress
//
// Set UploadOptions.Progress to observe the request body as it is sent. The
// callback runs on the goroutine that reads the body and must not block.
//
// # Errors
//
// Failures wrap the sentinel errors of the kleber package. Non-success HTTP
// responses are returned as *APIError:
//
//	var apiErr *clientcli.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Println("status", apiErr.StatusCode)
//	}
//	if errors.Is(err, kleber.ErrUploadFailed) {
//		// ...
//	}
package clientcli
