package controller

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	m "phpmin.dev/pkg/phpmin/internal/model"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

// StyledUI is a SimpleUI that colors headings and statuses for terminals and
// pages reports taller than the screen.
type StyledUI struct {
	*SimpleUI

	pager pagerRunner
}

// pagerRunner drives a pager model until it quits.
type pagerRunner func(ctx context.Context, model tea.Model, in io.Reader, out io.Writer) error

// NewStyledUI creates a new StyledUI.
func NewStyledUI(cmd *cobra.Command) *StyledUI {
	ui := NewSimpleUI(cmd)
	ui.decorate = styleText

	return &StyledUI{SimpleUI: ui, pager: runPager}
}

func runPager(ctx context.Context, model tea.Model, in io.Reader, out io.Writer) error {
	_, err := tea.NewProgram(model, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out)).Run()

	return err
}

// DisplayStatistics renders the statistics and pages them.
func (s *StyledUI) DisplayStatistics(ctx context.Context, report m.RunReport) error {
	var buf bytes.Buffer
	if err := s.withWriter(&buf).DisplayStatistics(ctx, report); err != nil {
		return err
	}

	s.page(ctx, "phpmin: "+string(report.Source), buf.String())

	return nil
}

// DisplayPreview renders the preview diff and pages it.
func (s *StyledUI) DisplayPreview(ctx context.Context, unit *m.Unit, diff string, symbols m.SymbolDump) error {
	var buf bytes.Buffer
	if err := s.withWriter(&buf).DisplayPreview(ctx, unit, diff, symbols); err != nil {
		return err
	}

	s.page(ctx, "phpmin preview: "+string(unit.Input), buf.String())

	return nil
}

// page lets the user scroll through content, then prints it so it stays in
// the terminal's scrollback.
func (s *StyledUI) page(ctx context.Context, title, content string) {
	if err := s.pager(ctx, newPagerModel(title, content), s.cmd.InOrStdin(), s.cmd.OutOrStdout()); err != nil {
		slog.Warn("Pager stopped, printing report", "error", err)
	}

	s.printf("%s", content)
}

func styleText(kind textKind, text string) string {
	switch kind {
	case kindHeading:
		return headingStyle.Render(text)
	case kindSuccess:
		return successStyle.Render(text)
	case kindWarning:
		return warningStyle.Render(text)
	case kindFailure:
		return failureStyle.Render(text)
	default:
		return text
	}
}
