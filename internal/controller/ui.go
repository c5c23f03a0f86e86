// Package controller provides output adapters for displaying conversion results.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "ngshift.dev/pkg/ngshift/internal/model"
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	showPlan bool
	showDiff bool
	write    bool
}

// WithPlan makes the UI print the edit plan of every converted file.
func WithPlan() StartOption {
	return func(c *StartConfig) {
		c.showPlan = true
	}
}

// WithDiff makes the UI print the unified diff of every converted file.
func WithDiff() StartOption {
	return func(c *StartConfig) {
		c.showDiff = true
	}
}

// WithWrite tells the UI that results are written back to disk.
func WithWrite() StartOption {
	return func(c *StartConfig) {
		c.write = true
	}
}

// UI defines the interface for displaying conversion results.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayResult(ctx context.Context, result m.FileResult)
	DisplaySummary(ctx context.Context, results []m.FileResult)
	DisplayProfile(ctx context.Context, rendered []byte) error
}

// NewUI returns the UI for cmd's output. Diffs are colored when color is set.
func NewUI(cmd *cobra.Command, color bool) UI {
	return NewSimpleUI(cmd, color)
}

// IsTTY reports whether f is an interactive terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}
