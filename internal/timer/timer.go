// Package timer runs Pomodoro work/break cycles.
package timer

import "fmt"

// Phase is the state of the cycle runner.
type Phase int

const (
	// Idle means no countdown is running.
	Idle Phase = iota
	// Working is the work countdown.
	Working
	// Break is the break countdown.
	Break
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Working:
		return "work"
	case Break:
		return "break"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Timer holds the durations of the current cycle and the minutes worked so far.
type Timer struct {
	WorkMinutes        uint64
	BreakMinutes       uint64
	TotalWorkedMinutes uint64
}

// New returns a Timer for the given durations, seeded with totalWorked.
func New(workMinutes, breakMinutes, totalWorked uint64) *Timer {
	return &Timer{
		WorkMinutes:        workMinutes,
		BreakMinutes:       breakMinutes,
		TotalWorkedMinutes: totalWorked,
	}
}

// Reset clears the worked minutes.
func (t *Timer) Reset() {
	t.TotalWorkedMinutes = 0
}

// AddWorkedMinutes adds minutes to the worked total.
func (t *Timer) AddWorkedMinutes(minutes uint64) {
	t.TotalWorkedMinutes += minutes
}

// SetWorkMinutes sets the work phase length.
func (t *Timer) SetWorkMinutes(minutes uint64) {
	t.WorkMinutes = minutes
}

// SetBreakMinutes sets the break phase length.
func (t *Timer) SetBreakMinutes(minutes uint64) {
	t.BreakMinutes = minutes
}

func (t *Timer) String() string {
	return fmt.Sprintf("Work: %dm, Break: %dm, Total Worked: %dm", t.WorkMinutes, t.BreakMinutes, t.TotalWorkedMinutes)
}

// Remaining splits a second count into whole minutes and leftover seconds.
func Remaining(seconds uint64) (minutes, secs uint64) {
	return seconds / 60, seconds % 60
}
