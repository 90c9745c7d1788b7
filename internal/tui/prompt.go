package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/verte-zerg/tomato/internal/settings"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// ErrInvalidMinutes is returned for a duration that is not a positive whole number.
var ErrInvalidMinutes = errors.New("enter a whole number of minutes greater than zero")

// MenuChoice is an entry of the main menu.
type MenuChoice int

// Main menu entries, numbered as shown to the user.
const (
	ChoiceSetTimes      MenuChoice = 1
	ChoiceStart         MenuChoice = 2
	ChoiceStats         MenuChoice = 3
	ChoiceMessages      MenuChoice = 4
	ChoiceNotifications MenuChoice = 5
	ChoiceExit          MenuChoice = 9
)

// Prompter asks the user for input with huh forms.
type Prompter struct {
	in         *bufio.Reader
	out        io.Writer
	accessible bool
}

// NewPrompter returns a Prompter reading from in and drawing to out. All reads
// share one buffer so input past a line is kept for the next prompt.
// Accessible mode replaces the interactive widgets with plain line prompts.
func NewPrompter(in io.Reader, out io.Writer, accessible bool) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, accessible: accessible}
}

func (p *Prompter) run(groups ...*huh.Group) error {
	form := huh.NewForm(groups...).
		WithInput(p.in).
		WithOutput(p.out).
		WithAccessible(p.accessible)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// Menu shows the main menu with status above it.
func (p *Prompter) Menu(status string, notificationsOn bool) (MenuChoice, error) {
	toggle := "Enable notifications"
	if notificationsOn {
		toggle = "Disable notifications"
	}
	choice := ChoiceStart
	err := p.run(huh.NewGroup(
		huh.NewSelect[MenuChoice]().
			Title("Tomato").
			Description(status).
			Options(
				huh.NewOption("1. Set times", ChoiceSetTimes),
				huh.NewOption("2. Start timer", ChoiceStart),
				huh.NewOption("3. Show stats", ChoiceStats),
				huh.NewOption("4. Set notification messages", ChoiceMessages),
				huh.NewOption("5. "+toggle, ChoiceNotifications),
				huh.NewOption("9. Exit", ChoiceExit),
			).
			Value(&choice),
	))
	if err != nil {
		return ChoiceExit, err
	}
	return choice, nil
}

// Durations asks for work and break minutes, prefilled with the current values.
func (p *Prompter) Durations(work, brk uint64) (uint64, uint64, error) {
	workText := strconv.FormatUint(work, 10)
	breakText := strconv.FormatUint(brk, 10)
	err := p.run(huh.NewGroup(
		huh.NewInput().
			Title("Work time (minutes)").
			Value(&workText).
			Validate(validateMinutes),
		huh.NewInput().
			Title("Break time (minutes)").
			Value(&breakText).
			Validate(validateMinutes),
	))
	if err != nil {
		return 0, 0, err
	}
	w, err := ParseMinutes(workText)
	if err != nil {
		return 0, 0, err
	}
	b, err := ParseMinutes(breakText)
	if err != nil {
		return 0, 0, err
	}
	return w, b, nil
}

// Messages asks for the work-done and break-done notification bodies.
func (p *Prompter) Messages(n settings.Notifications) (string, string, error) {
	workMsg := n.WorkMsg
	breakMsg := n.BreakMsg
	err := p.run(huh.NewGroup(
		huh.NewInput().
			Title("Message when work ends").
			Value(&workMsg),
		huh.NewInput().
			Title("Message when break ends").
			Value(&breakMsg),
	))
	if err != nil {
		return "", "", err
	}
	return workMsg, breakMsg, nil
}

// WaitForBreak blocks until the user presses Enter or ctx ends.
func (p *Prompter) WaitForBreak(ctx context.Context) error {
	return p.waitForEnter(ctx, "Work done. Press Enter to start your break.")
}

// WaitForMenu blocks until the user presses Enter or ctx ends.
func (p *Prompter) WaitForMenu(ctx context.Context) error {
	return p.waitForEnter(ctx, "Press Enter to return to the menu.")
}

func (p *Prompter) waitForEnter(ctx context.Context, message string) error {
	if _, err := fmt.Fprintln(p.out, Hint(message)); err != nil {
		return err
	}
	read := make(chan error, 1)
	go func() {
		_, err := p.in.ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}
		read <- err
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-read:
		return err
	}
}

// ParseMinutes parses a positive whole number of minutes.
func ParseMinutes(text string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(text), 10, 32)
	if err != nil || v == 0 {
		return 0, ErrInvalidMinutes
	}
	return v, nil
}

func validateMinutes(text string) error {
	_, err := ParseMinutes(text)
	return err
}
