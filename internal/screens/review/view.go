package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/ui/components"
	"github.com/abhisek/retain/internal/ui/theme"
)

func (r *ReviewScreen) View(width, height int) string {
	if r.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+r.errMsg))
	}
	if r.phase == phaseLoading {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading due items..."))
	}

	var b strings.Builder
	b.WriteString(r.renderProgress(width))
	b.WriteString("\n\n")

	switch r.phase {
	case phasePrompt:
		b.WriteString(r.renderPrompt())
	case phaseGrading:
		b.WriteString(r.renderPrompt())
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Grading your answer..."))
	case phaseRate:
		b.WriteString(r.renderRate())
	case phaseAnswer:
		b.WriteString(r.mc.View())
	case phaseConfidence:
		b.WriteString(r.mc.View())
		b.WriteString("\n")
		b.WriteString(r.renderConfidence())
	case phaseReveal:
		b.WriteString(r.renderReveal())
	}

	content := lipgloss.NewStyle().Width(min(width-4, 76)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (r *ReviewScreen) renderProgress(width int) string {
	done := r.idx
	if r.phase == phaseReveal {
		done++
	}
	percent := 0.0
	if len(r.queue) > 0 {
		percent = float64(done) / float64(len(r.queue))
	}
	label := fmt.Sprintf("%d/%d", done, len(r.queue))
	bar := components.NewProgressBar(label, percent, false, min(width-8, 60))
	return bar.View()
}

func (r *ReviewScreen) renderPrompt() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.current().Prompt()))
	b.WriteString("\n\n")
	b.WriteString(r.input.View())
	return b.String()
}

func (r *ReviewScreen) renderRate() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.current().Prompt()))
	b.WriteString("\n\n")

	if answer := r.input.Value(); answer != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Your answer: " + answer))
		b.WriteString("\n\n")
	}
	if r.grade != nil {
		score := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
			Render(fmt.Sprintf("LLM grade: %.1f/3", r.grade.Score))
		b.WriteString(score)
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(r.grade.Feedback))
		b.WriteString("\n\n")
	}
	if r.gradeErr != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).
			Render("Grading unavailable: " + r.gradeErr.Error()))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("How well did you recall this?"))
	b.WriteString("\n\n")
	ratings := []string{
		"0  Forgot completely",
		"1  Hard, barely recalled",
		"2  Recalled with effort",
		"3  Easy, instant recall",
	}
	for _, line := range ratings {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n")
	}
	return b.String()
}

func (r *ReviewScreen) renderConfidence() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("How confident were you?"))
	b.WriteString("\n\n")
	for i, level := range confidenceLevels {
		line := "    " + string(level)
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == r.confidence {
			line = "  ▸ " + string(level)
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line) + "\n")
	}
	return b.String()
}

func (r *ReviewScreen) renderReveal() string {
	var b strings.Builder

	if m, ok := r.current().(item.MCQ); ok {
		b.WriteString(r.mc.View())
		b.WriteString("\n")

		verdict := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("Correct!")
		if !r.correct {
			verdict = lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Incorrect.")
		}
		b.WriteString(verdict)
		b.WriteString("\n\n")

		labels := []string{"A", "B", "C", "D"}
		for i, exp := range m.Explanations() {
			if exp == "" {
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("%s) %s", labels[i], exp)) + "\n")
		}
		b.WriteString("\n")
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.current().Prompt()))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
			Render(fmt.Sprintf("Rated %d.", r.rating)))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).
		Render("Schedule: " + formatScheduleChange(r.before, r.after)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Next review: " + r.after.NextReviewDate().Format("Mon, Jan 2 2006")))
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
