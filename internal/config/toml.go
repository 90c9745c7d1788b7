// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultLogLevel      = "info"
	defaultSoundSeconds  = 2
	defaultProgressWidth = 40
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
	Sound    SoundConfig    `toml:"sound"`
	Notify   NotifyConfig   `toml:"notify"`
	Progress ProgressConfig `toml:"progress"`
}

// StorageConfig maps storage-related settings.
type StorageConfig struct {
	Folder *string `toml:"folder"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
	File  *string `toml:"file"`
}

// SoundConfig maps completion sound settings.
type SoundConfig struct {
	Enable  *bool   `toml:"enable"`
	Command *string `toml:"command"`
	Seconds *int    `toml:"seconds"`
}

// NotifyConfig maps desktop notification settings.
type NotifyConfig struct {
	Command *string `toml:"command"`
}

// ProgressConfig maps progress bar settings.
type ProgressConfig struct {
	Width *int `toml:"width"`
}

// App holds resolved application configuration.
type App struct {
	Folder        string
	LogLevel      string
	LogFile       string
	SoundEnable   bool
	SoundCommand  string
	SoundDuration time.Duration
	NotifyCommand string
	ProgressWidth int
}

// Defaults returns the configuration used when no file is present.
func Defaults() App {
	return App{
		Folder:        DefaultFolder,
		LogLevel:      defaultLogLevel,
		SoundEnable:   true,
		SoundDuration: defaultSoundSeconds * time.Second,
		ProgressWidth: defaultProgressWidth,
	}
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Resolve overlays the values set in the file on top of Defaults.
func (c FileConfig) Resolve() (App, error) {
	app := Defaults()
	if c.Storage.Folder != nil {
		app.Folder = *c.Storage.Folder
	}
	if c.Log.Level != nil {
		app.LogLevel = *c.Log.Level
	}
	if c.Log.File != nil {
		app.LogFile = *c.Log.File
	}
	if c.Sound.Enable != nil {
		app.SoundEnable = *c.Sound.Enable
	}
	if c.Sound.Command != nil {
		app.SoundCommand = *c.Sound.Command
	}
	if c.Sound.Seconds != nil {
		app.SoundDuration = time.Duration(*c.Sound.Seconds) * time.Second
	}
	if c.Notify.Command != nil {
		app.NotifyCommand = *c.Notify.Command
	}
	if c.Progress.Width != nil {
		app.ProgressWidth = *c.Progress.Width
	}
	if err := app.Validate(); err != nil {
		return App{}, err
	}
	return app, nil
}

// Validate rejects values the rest of the program cannot work with.
func (a App) Validate() error {
	if a.Folder == "" {
		return fmt.Errorf("storage.folder must not be empty")
	}
	if a.SoundDuration < 0 {
		return fmt.Errorf("sound.seconds must be >= 0")
	}
	if a.ProgressWidth <= 0 {
		return fmt.Errorf("progress.width must be > 0")
	}
	return nil
}

// DefaultTemplate is written by `tomato config` when no file exists yet.
func DefaultTemplate() string {
	return fmt.Sprintf(`# tomato configuration
# Uncomment a value to enable it. CLI flags override config values.

[storage]
# folder = %q       # Folder under your home directory for settings and sessions

[log]
# level = %q           # debug, info, warn, error
# file = ""               # Defaults to <folder>/tomato.log

[sound]
# enable = true
# command = ""            # Called with the sound name (pomodoro_finish, break_done)
# seconds = %d

[notify]
# command = ""            # Called with summary and body; defaults to notify-send/osascript

[progress]
# width = %d
`,
		DefaultFolder,
		defaultLogLevel,
		defaultSoundSeconds,
		defaultProgressWidth,
	)
}
