package main

import (
	"context"
	"log/slog"

	"github.com/takeshixx/kleber/clientcli"
)

func (a *app) runUpload(ctx context.Context, logger *slog.Logger, opts *options) error {
	client, err := a.newClient(logger, opts)
	if err != nil {
		return err
	}

	uploadOpts := clientcli.UploadOptions{
		Source:   opts.infile,
		Name:     opts.name,
		Password: opts.password,
		Secure:   opts.secure,
		Lifetime: opts.lifetime,
	}
	if width, ok := a.terminalWidth(); ok {
		uploadOpts.Progress = newProgressBar(a.stderr, width).Update
	}

	result, err := client.Upload(ctx, uploadOpts)
	if err != nil {
		return err
	}
	logger.Debug("upload complete", "shortcut", result.Shortcut, "size", result.Size)

	if err := clientcli.FormatUpload(a.stdout, result); err != nil {
		return err
	}

	if opts.clipboard {
		if err := a.clipboard(result.URL); err != nil {
			logger.Warn("could not copy link to clipboard", "err", err)
		}
	}

	return nil
}
