package controller

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// pagerChromeLines is the height taken by the title and the footer.
const pagerChromeLines = 2

// pagerModel shows a report in a scrollable viewport when it is taller than
// the terminal. Reports that fit quit straight away without drawing.
type pagerModel struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
	quitting bool
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: strings.TrimRight(content, "\n")}
}

func (p pagerModel) Init() tea.Cmd {
	return nil
}

func (p pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - pagerChromeLines
		if !p.ready && p.lineCount() <= height {
			p.quitting = true
			return p, tea.Quit
		}

		if !p.ready {
			p.viewport = viewport.New(msg.Width, height)
			p.viewport.SetContent(p.content)
			p.ready = true

			return p, tea.EnterAltScreen
		}

		p.viewport.Width = msg.Width
		p.viewport.Height = height

		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			p.quitting = true
			return p, tea.Quit
		}
	}

	if !p.ready {
		return p, nil
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)

	return p, cmd
}

func (p pagerModel) View() string {
	if !p.ready || p.quitting {
		return ""
	}

	footer := fmt.Sprintf("↑/↓ pgup/pgdown scroll · q quit · %3.f%%", p.viewport.ScrollPercent()*100)

	return headingStyle.Render(p.title) + "\n" + p.viewport.View() + "\n" + warningStyle.Render(footer)
}

func (p pagerModel) lineCount() int {
	if p.content == "" {
		return 0
	}

	return strings.Count(p.content, "\n") + 1
}
