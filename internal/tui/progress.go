package tui

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/verte-zerg/tomato/internal/logging"
	"github.com/verte-zerg/tomato/internal/timer"
)

const (
	minBarWidth = 10
	// labelWidth covers the phase label, the clock and separators.
	labelWidth = 14
)

// NewProgress returns an animated countdown when out is a terminal and a
// line-per-minute countdown otherwise.
func NewProgress(out io.Writer, width int) timer.Progress {
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil {
			width = FitWidth(width, cols)
		}
		return NewTeaProgress(out, width)
	}
	return NewLineProgress(out, width)
}

// FitWidth clamps the bar width to the terminal columns.
func FitWidth(width, cols int) int {
	if cols > 0 && width > cols-labelWidth {
		width = cols - labelWidth
	}
	if width < minBarWidth {
		width = minBarWidth
	}
	return width
}

// TeaProgress drives a Bubble Tea program per phase, fed once per tick.
type TeaProgress struct {
	out     io.Writer
	width   int
	program *tea.Program
	done    chan struct{}
}

// NewTeaProgress returns a TeaProgress rendering to out.
func NewTeaProgress(out io.Writer, width int) *TeaProgress {
	return &TeaProgress{out: out, width: width}
}

// Start implements timer.Progress.
func (p *TeaProgress) Start(phase timer.Phase, total uint64) {
	p.program = tea.NewProgram(
		newCountdownModel(phase, total, p.width),
		tea.WithOutput(p.out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	p.done = make(chan struct{})
	program := p.program
	done := p.done
	go func() {
		defer close(done)
		if _, err := program.Run(); err != nil {
			log := logging.Component("tui")
			log.Warn().Err(err).Msg("countdown display stopped")
		}
	}()
}

// Advance implements timer.Progress.
func (p *TeaProgress) Advance() {
	if p.program != nil {
		p.program.Send(tickMsg{})
	}
}

// Finish implements timer.Progress.
func (p *TeaProgress) Finish() {
	if p.program == nil {
		return
	}
	p.program.Send(finishMsg{})
	<-p.done
	p.program = nil
}

// LineProgress prints the countdown once per whole minute.
type LineProgress struct {
	out     io.Writer
	width   int
	phase   timer.Phase
	total   uint64
	elapsed uint64
}

// NewLineProgress returns a LineProgress writing to out.
func NewLineProgress(out io.Writer, width int) *LineProgress {
	return &LineProgress{out: out, width: width}
}

// Start implements timer.Progress.
func (p *LineProgress) Start(phase timer.Phase, total uint64) {
	p.phase = phase
	p.total = total
	p.elapsed = 0
	p.print()
}

// Advance implements timer.Progress.
func (p *LineProgress) Advance() {
	if p.elapsed < p.total {
		p.elapsed++
	}
	if (p.total-p.elapsed)%60 == 0 {
		p.print()
	}
}

// Finish implements timer.Progress.
func (p *LineProgress) Finish() {}

func (p *LineProgress) print() {
	line := renderCountdown(newBar(p.phase, p.width), p.phase, p.elapsed, p.total)
	if _, err := fmt.Fprintln(p.out, line); err != nil {
		log := logging.Component("tui")
		log.Debug().Err(err).Msg("failed to write countdown")
	}
}
