package main

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/takeshixx/kleber"
)

func copyToClipboard(text string) error {
	if clipboard.Unsupported {
		return kleber.ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", kleber.ErrClipboardUnavailable, err)
	}
	return nil
}
