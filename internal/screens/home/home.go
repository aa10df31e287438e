// Package home is the landing screen: due counts per item kind and the
// main menu.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/retain/internal/grading"
	"github.com/abhisek/retain/internal/router"
	"github.com/abhisek/retain/internal/screen"
	"github.com/abhisek/retain/internal/screens/review"
	"github.com/abhisek/retain/internal/store"
	"github.com/abhisek/retain/internal/ui/components"
	"github.com/abhisek/retain/internal/ui/theme"
)

// HomeScreen is the landing screen of the application.
type HomeScreen struct {
	st      *store.Store
	grader  *grading.Service
	menu    components.Menu
	counts  dueCounts
	loadErr error
}

type dueCounts struct {
	Questions  int
	Challenges int
	MCQs       int
}

func (c dueCounts) sessionTotal() int { return c.Questions + c.MCQs }

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. grader may be nil when no LLM provider
// is configured; answer grading is simply unavailable then.
func New(st *store.Store, grader *grading.Service) *HomeScreen {
	h := &HomeScreen{st: st, grader: grader}
	h.counts, h.loadErr = loadDueCounts(st)

	items := []components.MenuItem{
		{
			Label:    "START REVIEW",
			Disabled: h.counts.sessionTotal() == 0,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: review.New(st, grader)}
				}
			},
		},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

func loadDueCounts(st *store.Store) (dueCounts, error) {
	ctx := context.Background()
	now := time.Now()
	var c dueCounts

	questions, err := st.Questions().Due(ctx, now)
	if err != nil {
		return c, err
	}
	challenges, err := st.Challenges().Due(ctx, now)
	if err != nil {
		return c, err
	}
	mcqs, err := st.MCQs().Due(ctx, now)
	if err != nil {
		return c, err
	}

	c.Questions = len(questions)
	c.Challenges = len(challenges)
	c.MCQs = len(mcqs)
	return c, nil
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("What do you want to retain today?"))
	b.WriteString("\n\n")

	if h.loadErr != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(fmt.Sprintf("Could not load due items: %v", h.loadErr)))
		b.WriteString("\n\n")
	} else {
		stats := fmt.Sprintf("Due today    Questions: %d    MCQs: %d    Challenges: %d",
			h.counts.Questions, h.counts.MCQs, h.counts.Challenges)
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Text).
			Render(stats))
		b.WriteString("\n")
		if h.counts.Challenges > 0 {
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Italic(true).
				Render("Challenges are reviewed with `retain review challenge`."))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	menu := h.menu.View()
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Center, b.String())
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// DueTotal is shown in the header badge.
func (h *HomeScreen) DueTotal() int {
	return h.counts.Questions + h.counts.Challenges + h.counts.MCQs
}
