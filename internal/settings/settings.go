// Package settings holds the persisted user configuration and its store.
package settings

// CurrentVersion is the schema version written by this build.
const CurrentVersion = "0.2"

// FileName is the settings file inside the data folder.
const FileName = "settings.json"

const (
	// DefaultWorkTime is the work phase length in minutes.
	DefaultWorkTime uint64 = 25
	// DefaultBreakTime is the break phase length in minutes.
	DefaultBreakTime uint64 = 5
)

// Settings is the persisted configuration record.
type Settings struct {
	// Version identifies the field layout; bumped on breaking changes so older
	// files can be migrated.
	Version      string        `json:"version"`
	WorkTime     uint64        `json:"work_time"`
	BreakTime    uint64        `json:"break_time"`
	Notification Notifications `json:"notification"`
}

// Notifications controls desktop notifications at the end of each phase.
type Notifications struct {
	Enable   bool   `json:"enable"`
	WorkMsg  string `json:"work_msg"`
	BreakMsg string `json:"break_msg"`
}

// DefaultNotifications returns notifications enabled with the stock messages.
func DefaultNotifications() Notifications {
	return Notifications{
		Enable:   true,
		WorkMsg:  "Good job your work is done. Take a break",
		BreakMsg: "Break is done. Get back to work",
	}
}

// New returns Settings at CurrentVersion.
func New(workTime, breakTime uint64, notification Notifications) Settings {
	return Settings{
		Version:      CurrentVersion,
		WorkTime:     workTime,
		BreakTime:    breakTime,
		Notification: notification,
	}
}

// Default returns the Settings used on first run.
func Default() Settings {
	return New(DefaultWorkTime, DefaultBreakTime, DefaultNotifications())
}
