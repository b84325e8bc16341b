package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

const ruleWidth = 50

// textKind tells a decorator what a piece of text represents.
type textKind int

const (
	kindPlain textKind = iota
	kindHeading
	kindSuccess
	kindWarning
	kindFailure
)

// SimpleUI implements UI by printing plain text to the cobra command's output.
type SimpleUI struct {
	cmd      *cobra.Command
	out      io.Writer
	decorate func(kind textKind, text string) string
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{
		cmd:      cmd,
		decorate: func(_ textKind, text string) string { return text },
	}
}

// DisplayStart announces the run.
func (s *SimpleUI) DisplayStart(ctx context.Context, source, output m.Path, scheme m.Scheme, scope m.SymbolScope) {
	if err := ctx.Err(); err != nil {
		return
	}

	mode := "strip"
	if scheme.Aggressive() {
		mode = fmt.Sprintf("rename, %s-scoped symbols", scope)
	}

	s.printf("%s %s -> %s (scheme %d: %s)\n", s.decorate(kindHeading, "Minifying"), source, output, scheme, mode)
}

// DisplayStatistics prints the folder/file counts, one status line per
// minified file, then a summary table and any failures.
func (s *SimpleUI) DisplayStatistics(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rule := strings.Repeat("-", ruleWidth)

	s.printf("%s\n", rule)
	s.printf("Application  contains %d folders and %d files :\n", report.FolderCount, report.FileCount)
	s.printf("%s\n\n", rule)
	s.printf(" %s\n\n", s.decorate(kindHeading, "Generating minification status:"))

	for _, unit := range report.Minified() {
		s.printf("%s --> %s\n", unit.Output, unit.StatusLine())
	}

	s.printf("%s\n", rule)

	if len(report.Units) > 0 {
		s.printf("\n%s", renderStatisticsTable(report, s.decorate))
	}

	s.displayProblems(report)

	return nil
}

func (s *SimpleUI) displayProblems(report m.RunReport) {
	units := make([]*m.Unit, len(report.Units))
	copy(units, report.Units)

	sort.Slice(units, func(i, j int) bool {
		return units[i].Input < units[j].Input
	})

	for _, unit := range units {
		switch unit.Outcome.Status {
		case m.StatusFailed:
			s.printf("%s %s: %v\n", s.decorate(kindFailure, "failed"), unit.Input, unit.Outcome.Err)
		case m.StatusSkipped:
			s.printf("%s %s: %s\n", s.decorate(kindWarning, "skipped"), unit.Input, unit.Outcome.Reason)
		}

		if len(unit.Outcome.Unrenamed) > 0 {
			s.printf("%s %s: %d identifier(s) kept their names: %s\n",
				s.decorate(kindWarning, "budget"), unit.Input, len(unit.Outcome.Unrenamed), strings.Join(unit.Outcome.Unrenamed, ", "))
		}
	}
}

func renderStatisticsTable(report m.RunReport, decorate func(textKind, string) string) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Original (kb)", "Compressed (kb)", "Reduction (%)", "Status"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER,
	})

	units := make([]*m.Unit, len(report.Units))
	copy(units, report.Units)

	sort.Slice(units, func(i, j int) bool {
		return units[i].Output < units[j].Output
	})

	for _, unit := range units {
		table.Append([]string{
			string(unit.Input),
			fmt.Sprintf("%.2f", m.Kilobytes(unit.OriginalSize)),
			fmt.Sprintf("%.2f", m.Kilobytes(unit.CompressedSize)),
			fmt.Sprintf("%.2f", unit.Reduction()),
			decorate(statusKind(unit.Outcome.Status), unit.Outcome.Status.String()),
		})
	}

	original, compressed := report.Totals()
	total := m.Unit{OriginalSize: original, CompressedSize: compressed}

	table.SetFooter([]string{
		fmt.Sprintf("Minified %d/%d", report.Count(m.StatusMinified), len(report.Units)),
		fmt.Sprintf("%.2f", m.Kilobytes(original)),
		fmt.Sprintf("%.2f", m.Kilobytes(compressed)),
		fmt.Sprintf("%.2f", total.Reduction()),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func statusKind(status m.Status) textKind {
	switch status {
	case m.StatusMinified:
		return kindSuccess
	case m.StatusSkipped:
		return kindWarning
	case m.StatusFailed:
		return kindFailure
	default:
		return kindPlain
	}
}

// DisplayPreview prints the diff of one file followed by its symbol mappings.
func (s *SimpleUI) DisplayPreview(ctx context.Context, unit *m.Unit, diff string, symbols m.SymbolDump) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if diff == "" {
		s.printf("%s: no changes\n", unit.Input)
	} else {
		s.printf("%s", diff)
	}

	if len(symbols.Variables)+len(symbols.Functions) > 0 {
		s.printf("\n%s", renderSymbolTable(symbols))
	}

	s.printf("\n%s\n", unit.StatusLine())

	return nil
}

func renderSymbolTable(symbols m.SymbolDump) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Class", "Original", "Synthetic"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, symbol := range symbols.Functions {
		table.Append([]string{string(m.ClassFunction), symbol.Original, symbol.Synthetic})
	}

	for _, symbol := range symbols.Variables {
		table.Append([]string{string(m.ClassVariable), "$" + symbol.Original, "$" + symbol.Synthetic})
	}

	table.Render()

	return tableBuffer.String()
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	out := s.out
	if out == nil {
		out = s.cmd.OutOrStdout()
	}

	_, _ = fmt.Fprintf(out, format, args...)
}

// withWriter returns a copy of s printing to w instead of the command output.
func (s *SimpleUI) withWriter(w io.Writer) *SimpleUI {
	clone := *s
	clone.out = w

	return &clone
}
