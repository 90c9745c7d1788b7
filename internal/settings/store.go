package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/tomato/internal/codec"
	"github.com/verte-zerg/tomato/internal/storage"
)

var (
	// ErrCorrupt is returned when a present, non-empty settings file does not decode.
	ErrCorrupt = errors.New("settings file is corrupt")
	// ErrStaleVersion is returned when the decoded version is not CurrentVersion.
	ErrStaleVersion = errors.New("settings file has an outdated version")
)

const emptyObject = "{}"

// Store persists Settings through a storage handle.
type Store struct {
	storage *storage.Storage
}

// NewStore returns a Store backed by st.
func NewStore(st *storage.Storage) *Store {
	return &Store{storage: st}
}

// Storage returns the underlying handle.
func (s *Store) Storage() *storage.Storage {
	return s.storage
}

// Raw returns the settings file text as stored.
func (s *Store) Raw() (string, error) {
	return s.storage.Read()
}

// Load reads the settings file. A missing file is replaced with defaults, and
// an empty file or {} yields defaults. A file that does not decode is never
// repaired, to avoid discarding user customization.
func (s *Store) Load() (Settings, error) {
	contents, err := s.storage.Read()
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return Settings{}, err
		}
		settings := Default()
		if err := s.Save(settings); err != nil {
			return Settings{}, err
		}
		return settings, nil
	}

	if IsBlank(contents) {
		return Default(), nil
	}
	settings, ok := codec.Decode[Settings](contents)
	if !ok {
		return Settings{}, ErrCorrupt
	}
	if settings.Version != CurrentVersion {
		return Settings{}, fmt.Errorf("%w: %q (want %q)", ErrStaleVersion, settings.Version, CurrentVersion)
	}
	return settings, nil
}

// Save encodes and writes settings.
func (s *Store) Save(settings Settings) error {
	text, err := codec.Encode(settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.storage.Write(text); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// SetDurations updates the work and break lengths and persists them.
func (s *Store) SetDurations(settings *Settings, workTime, breakTime uint64) error {
	settings.WorkTime = workTime
	settings.BreakTime = breakTime
	return s.Save(*settings)
}

// SetMessages updates the notification texts and persists them.
func (s *Store) SetMessages(settings *Settings, workMsg, breakMsg string) error {
	settings.Notification.WorkMsg = workMsg
	settings.Notification.BreakMsg = breakMsg
	return s.Save(*settings)
}

// SetNotificationsEnabled toggles notifications and persists the change.
func (s *Store) SetNotificationsEnabled(settings *Settings, enable bool) error {
	settings.Notification.Enable = enable
	return s.Save(*settings)
}

// IsBlank reports whether contents carry no settings at all.
func IsBlank(contents string) bool {
	trimmed := strings.TrimSpace(contents)
	return trimmed == "" || trimmed == emptyObject
}
