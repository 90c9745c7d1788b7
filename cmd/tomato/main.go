// Package main provides the CLI entrypoint for tomato.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tomato/internal/app"
	"github.com/verte-zerg/tomato/internal/config"
	"github.com/verte-zerg/tomato/internal/logging"
	"github.com/verte-zerg/tomato/internal/notify"
	"github.com/verte-zerg/tomato/internal/sound"
	"github.com/verte-zerg/tomato/internal/stats"
	"github.com/verte-zerg/tomato/internal/tui"
)

const defaultArchiveName = "tomato.db"

var (
	configPath string
	logLevel   string

	runWork  uint64
	runBreak uint64

	defaultsWork  uint64
	defaultsBreak uint64

	statsOutput string

	notifyEnable   bool
	notifyDisable  bool
	notifyWorkMsg  string
	notifyBreakMsg string

	exportDB string

	appCfg   config.App
	closeLog = func() {}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "tomato",
		Short:             "Terminal Pomodoro timer",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setup,
		RunE:              runMenuCmd,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newSetDefaultsCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newNotificationsCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func setup(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	resolved, err := fileCfg.Resolve()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	resolved.LogLevel = logLevel
	appCfg = resolved

	logFile, err := app.LogFile(config.UserHome, appCfg)
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(appCfg.LogLevel, logFile)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	logging.SetGlobal(logger)
	closeLog = closer
	log := logging.Component("cli")
	log.Debug().Str("command", cmd.CommandPath()).Msg("starting")
	return nil
}

func newApp() (*app.App, error) {
	out := os.Stdout
	prompter := tui.NewPrompter(os.Stdin, out, !term.IsTerminal(int(os.Stdin.Fd())))
	return app.New(app.Deps{
		Home:     config.UserHome,
		Config:   appCfg,
		Out:      out,
		Progress: tui.NewProgress(out, appCfg.ProgressWidth),
		Notifier: notify.New(appCfg.NotifyCommand),
		Player:   sound.New(appCfg.SoundEnable, appCfg.SoundCommand, out),
		Prompter: prompter,
	})
}

func runMenuCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return a.Menu(cmd.Context())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one work and break cycle",
		Args:  cobra.NoArgs,
		RunE:  runRunCmd,
	}
	cmd.Flags().Uint64Var(&runWork, "work", 0, "work minutes for this run (default: stored setting)")
	cmd.Flags().Uint64Var(&runBreak, "break", 0, "break minutes for this run (default: stored setting)")
	return cmd
}

func runRunCmd(cmd *cobra.Command, _ []string) error {
	if err := validateMinutesFlag(cmd, "work", runWork); err != nil {
		return err
	}
	if err := validateMinutesFlag(cmd, "break", runBreak); err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	work, brk := a.Timer.WorkMinutes, a.Timer.BreakMinutes
	if cmd.Flags().Changed("work") {
		work = runWork
	}
	if cmd.Flags().Changed("break") {
		brk = runBreak
	}
	a.Override(work, brk)
	return a.RunCycle(cmd.Context())
}

func newSetDefaultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-defaults",
		Short: "Set the default work and break lengths",
		Args:  cobra.NoArgs,
		RunE:  runSetDefaultsCmd,
	}
	cmd.Flags().Uint64Var(&defaultsWork, "work", 0, "work minutes")
	cmd.Flags().Uint64Var(&defaultsBreak, "break", 0, "break minutes")
	return cmd
}

func runSetDefaultsCmd(cmd *cobra.Command, _ []string) error {
	if err := validateMinutesFlag(cmd, "work", defaultsWork); err != nil {
		return err
	}
	if err := validateMinutesFlag(cmd, "break", defaultsBreak); err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}

	work, brk := a.Settings.WorkTime, a.Settings.BreakTime
	workSet, breakSet := cmd.Flags().Changed("work"), cmd.Flags().Changed("break")
	if workSet {
		work = defaultsWork
	}
	if breakSet {
		brk = defaultsBreak
	}
	if !workSet && !breakSet {
		prompter := tui.NewPrompter(os.Stdin, os.Stdout, !term.IsTerminal(int(os.Stdin.Fd())))
		work, brk, err = prompter.Durations(work, brk)
		if errors.Is(err, tui.ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
	}
	if err := a.SetDefaults(work, brk); err != nil {
		return err
	}
	fmt.Printf("Defaults set: work %dm, break %dm\n", work, brk)
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show time worked",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVarP(&statsOutput, "output", "o", stats.FormatText, "output format (text, json, yaml)")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	return a.WriteStats(os.Stdout, statsOutput)
}

func newNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show or change notification preferences",
		Args:  cobra.NoArgs,
		RunE:  runNotificationsCmd,
	}
	cmd.Flags().BoolVar(&notifyEnable, "enable", false, "enable notifications")
	cmd.Flags().BoolVar(&notifyDisable, "disable", false, "disable notifications")
	cmd.Flags().StringVar(&notifyWorkMsg, "work-msg", "", "message shown when work ends")
	cmd.Flags().StringVar(&notifyBreakMsg, "break-msg", "", "message shown when a break ends")
	cmd.MarkFlagsMutuallyExclusive("enable", "disable")
	return cmd
}

func runNotificationsCmd(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if notifyEnable || notifyDisable {
		if err := a.SetNotifications(notifyEnable); err != nil {
			return err
		}
	}
	workSet, breakSet := cmd.Flags().Changed("work-msg"), cmd.Flags().Changed("break-msg")
	if workSet || breakSet {
		workMsg, breakMsg := a.Settings.Notification.WorkMsg, a.Settings.Notification.BreakMsg
		if workSet {
			workMsg = notifyWorkMsg
		}
		if breakSet {
			breakMsg = notifyBreakMsg
		}
		if err := a.SetMessages(workMsg, breakMsg); err != nil {
			return err
		}
	}
	fmt.Println(a.NotificationStatus())
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Mirror the session log into a SQLite database",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportDB, "db", "", "database path (default: <folder>/tomato.db)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	path := exportDB
	if path == "" {
		dir, err := config.DataDir(config.UserHome, appCfg.Folder)
		if err != nil {
			return fmt.Errorf("failed to resolve data dir: %w", err)
		}
		path = filepath.Join(dir, defaultArchiveName)
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	res, err := a.Export(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("failed to export sessions: %w", err)
	}
	fmt.Printf("Exported %d sessions to %s\n", res.Sessions, path)
	if len(res.Days) == 0 {
		return nil
	}
	fmt.Println()
	return stats.RenderDays(os.Stdout, res.Days)
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(config.DefaultTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func validateMinutesFlag(cmd *cobra.Command, name string, value uint64) error {
	if cmd.Flags().Changed(name) {
		if _, err := tui.ParseMinutes(fmt.Sprint(value)); err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
