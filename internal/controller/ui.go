// Package controller renders minification progress and statistics for the CLI.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

// UI defines how a run is presented to the user.
// Implementations can use different output methods (plain text, styled terminal).
type UI interface {
	DisplayStart(ctx context.Context, source, output m.Path, scheme m.Scheme, scope m.SymbolScope)
	DisplayStatistics(ctx context.Context, report m.RunReport) error
	DisplayPreview(ctx context.Context, unit *m.Unit, diff string, symbols m.SymbolDump) error
}

// NewUI returns a styled UI when writing to a terminal and a plain one otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewStyledUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
