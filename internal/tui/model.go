// Package tui provides the terminal countdown display and interactive prompts.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/tomato/internal/timer"
)

type tickMsg struct{}

type finishMsg struct{}

// countdownModel implements the Bubble Tea view of one phase countdown.
type countdownModel struct {
	phase   timer.Phase
	total   uint64
	elapsed uint64
	bar     progress.Model
}

func newCountdownModel(phase timer.Phase, total uint64, width int) countdownModel {
	return countdownModel{
		phase: phase,
		total: total,
		bar:   newBar(phase, width),
	}
}

// Init implements tea.Model.
func (m countdownModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m countdownModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if m.elapsed < m.total {
			m.elapsed++
		}
		return m, nil
	case finishMsg:
		return m, tea.Quit
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m countdownModel) View() string {
	return renderCountdown(m.bar, m.phase, m.elapsed, m.total) + "\n"
}

func newBar(phase timer.Phase, width int) progress.Model {
	color := workColor
	if phase == timer.Break {
		color = breakColor
	}
	return progress.New(
		progress.WithWidth(width),
		progress.WithoutPercentage(),
		progress.WithSolidFill(color),
	)
}

func renderCountdown(bar progress.Model, phase timer.Phase, elapsed, total uint64) string {
	percent := 1.0
	if total > 0 {
		percent = float64(elapsed) / float64(total)
	}
	var remaining uint64
	if elapsed < total {
		remaining = total - elapsed
	}
	minutes, seconds := timer.Remaining(remaining)
	return fmt.Sprintf("%s %s %s",
		phaseLabel(phase),
		bar.ViewAs(percent),
		timeStyle.Render(fmt.Sprintf("%02d:%02d", minutes, seconds)),
	)
}

func phaseLabel(phase timer.Phase) string {
	switch phase {
	case timer.Working:
		return workStyle.Render("Work ")
	case timer.Break:
		return breakStyle.Render("Break")
	default:
		return hintStyle.Render(fmt.Sprintf("%-5s", phase.String()))
	}
}
