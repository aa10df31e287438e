// Package summary shows the end-of-session recap.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/retain/internal/router"
	"github.com/abhisek/retain/internal/screen"
	"github.com/abhisek/retain/internal/session"
	"github.com/abhisek/retain/internal/ui/layout"
	"github.com/abhisek/retain/internal/ui/theme"
)

// SummaryScreen displays the session tally.
type SummaryScreen struct {
	tally session.Tally
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a summary screen for a finished session.
func New(tally session.Tally) *SummaryScreen {
	return &SummaryScreen{tally: tally}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	title := "Session complete!"
	if s.tally.Reviewed == 0 {
		title = "Nothing due right now."
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	if s.tally.Reviewed > 0 {
		stats := fmt.Sprintf("Reviewed: %d        Correct: %d", s.tally.Reviewed, s.tally.Correct)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(stats))
		b.WriteString("\n\n")
	}

	if s.tally.NextDue != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Next review due " + s.tally.NextDue.Format("Mon, Jan 2 2006")))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, b.String())
}
