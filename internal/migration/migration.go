// Package migration upgrades settings files written by older versions.
//
// Versions are read from the raw text rather than by decoding, because the
// decoder for the current schema cannot be trusted to understand older ones.
package migration

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/verte-zerg/tomato/internal/codec"
	"github.com/verte-zerg/tomato/internal/settings"
)

// VersionNotFound is returned by DetectVersion when the text has no version field.
const VersionNotFound = "ERR"

var (
	// ErrUnknownVersion is returned for versions with no registered migration.
	ErrUnknownVersion = errors.New("unrecognized settings version")
	// ErrMalformed is returned when a known version lacks the fields its migration needs.
	ErrMalformed = errors.New("settings could not be migrated")
)

var (
	versionRe   = regexp.MustCompile(`"version"\s*:\s*"([^"]+)"`)
	workTimeRe  = regexp.MustCompile(`"work_time"\s*:\s*(\d+)`)
	breakTimeRe = regexp.MustCompile(`"break_time"\s*:\s*(\d+)`)
)

// step upgrades a payload from one version to the next.
type step struct {
	to    string
	apply func(raw string) (settings.Settings, error)
}

// steps is keyed by the version a step upgrades from. The chain is linear;
// a new schema adds one entry here.
var steps = map[string]step{
	"0.1": {to: "0.2", apply: migrate01},
}

// DetectVersion returns the version recorded in raw, or VersionNotFound.
func DetectVersion(raw string) string {
	m := versionRe.FindStringSubmatch(raw)
	if m == nil {
		return VersionNotFound
	}
	return m[1]
}

// IsCurrent reports whether raw was written at version current.
func IsCurrent(raw, current string) bool {
	return DetectVersion(raw) == current
}

// Engine migrates settings files and persists the result.
type Engine struct {
	store   *settings.Store
	current string
}

// New returns an Engine that writes migrated settings through store.
func New(store *settings.Store) *Engine {
	return &Engine{store: store, current: settings.CurrentVersion}
}

// Migrate upgrades raw to the current schema, saves it and returns it.
func (e *Engine) Migrate(raw string) (settings.Settings, error) {
	version := DetectVersion(raw)
	if version == e.current {
		return settings.Settings{}, fmt.Errorf("settings already at version %s", version)
	}

	var result settings.Settings
	for version != e.current {
		st, ok := steps[version]
		if !ok {
			return settings.Settings{}, fmt.Errorf("%w: found version %s", ErrUnknownVersion, version)
		}
		migrated, err := st.apply(raw)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("migrate from %s: %w", version, err)
		}
		migrated.Version = st.to
		text, err := codec.Encode(migrated)
		if err != nil {
			return settings.Settings{}, fmt.Errorf("failed to encode settings: %w", err)
		}
		result, raw, version = migrated, text, st.to
	}

	if err := e.store.Save(result); err != nil {
		return settings.Settings{}, fmt.Errorf("failed to save migrated settings: %w", err)
	}
	return result, nil
}

// migrate01 reads durations out of a 0.1 payload, which had no notification field.
func migrate01(raw string) (settings.Settings, error) {
	workTime, err := extractUint(workTimeRe, raw, "work_time")
	if err != nil {
		return settings.Settings{}, err
	}
	breakTime, err := extractUint(breakTimeRe, raw, "break_time")
	if err != nil {
		return settings.Settings{}, err
	}
	return settings.New(workTime, breakTime, settings.DefaultNotifications()), nil
}

func extractUint(re *regexp.Regexp, raw, field string) (uint64, error) {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("%w: missing %s", ErrMalformed, field)
	}
	v, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrMalformed, field, err)
	}
	return v, nil
}
