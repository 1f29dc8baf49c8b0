package main

import (
	"context"
	"log/slog"

	"github.com/takeshixx/kleber/clientcli"
)

func (a *app) runList(ctx context.Context, logger *slog.Logger, opts *options) error {
	client, err := a.newClient(logger, opts)
	if err != nil {
		return err
	}

	result, err := client.List(ctx, clientcli.ListOptions{Page: opts.listPage})
	if err != nil {
		return err
	}

	return clientcli.FormatList(a.stdout, result)
}
