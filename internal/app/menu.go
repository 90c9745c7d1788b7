package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/verte-zerg/tomato/internal/settings"
	"github.com/verte-zerg/tomato/internal/stats"
	"github.com/verte-zerg/tomato/internal/tui"
)

// ErrNoPrompter is returned when the menu is started without a Prompter.
var ErrNoPrompter = errors.New("interactive menu needs a prompter")

// Prompter gathers interactive input.
type Prompter interface {
	Menu(status string, notificationsOn bool) (tui.MenuChoice, error)
	Durations(work, brk uint64) (uint64, uint64, error)
	Messages(n settings.Notifications) (string, string, error)
	WaitForBreak(ctx context.Context) error
	WaitForMenu(ctx context.Context) error
}

// Menu runs the interactive menu until the user exits or ctx ends.
func (a *App) Menu(ctx context.Context) error {
	if a.prompter == nil {
		return ErrNoPrompter
	}
	for {
		if ctx.Err() != nil {
			return nil
		}
		choice, err := a.prompter.Menu(a.status(), a.Settings.Notification.Enable)
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		a.log.Debug().Int("choice", int(choice)).Msg("menu choice")

		done, err := a.handle(ctx, choice)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (a *App) handle(ctx context.Context, choice tui.MenuChoice) (bool, error) {
	switch choice {
	case tui.ChoiceSetTimes:
		work, brk, err := a.prompter.Durations(a.Timer.WorkMinutes, a.Timer.BreakMinutes)
		if errors.Is(err, tui.ErrAborted) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if err := a.SetDefaults(work, brk); err != nil {
			return false, err
		}
		a.printf("Defaults set: work %dm, break %dm\n", work, brk)
		return false, a.backToMenu(ctx)
	case tui.ChoiceStart:
		if err := a.RunCycle(ctx); err != nil {
			return false, err
		}
		return false, a.backToMenu(ctx)
	case tui.ChoiceStats:
		a.printf("%s\n", tui.Title("Statistics"))
		if err := a.WriteStats(a.out, stats.FormatText); err != nil {
			return false, err
		}
		return false, a.backToMenu(ctx)
	case tui.ChoiceMessages:
		workMsg, breakMsg, err := a.prompter.Messages(a.Settings.Notification)
		if errors.Is(err, tui.ErrAborted) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return false, a.SetMessages(workMsg, breakMsg)
	case tui.ChoiceNotifications:
		if err := a.ToggleNotifications(); err != nil {
			return false, err
		}
		a.printf("%s\n", a.notificationLine())
		return false, nil
	case tui.ChoiceExit:
		return true, nil
	default:
		return false, fmt.Errorf("unknown menu choice %d", choice)
	}
}

// backToMenu holds the last output on screen until the user continues.
func (a *App) backToMenu(ctx context.Context) error {
	if err := a.prompter.WaitForMenu(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func (a *App) status() string {
	return a.Timer.String() + "\n" + a.notificationLine()
}

func (a *App) notificationLine() string {
	if a.Settings.Notification.Enable {
		return "Notifications: on"
	}
	return "Notifications: off"
}
