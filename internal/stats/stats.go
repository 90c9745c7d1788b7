// Package stats contains statistics calculations and reporting.
package stats

import (
	"math"
	"strings"

	"github.com/verte-zerg/tomato/internal/model"
)

const sparkChars = " .:-=+*#%@"

const (
	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// BreakdownMinutes splits minutes into whole days, hours and minutes.
func BreakdownMinutes(minutes uint64) model.Breakdown {
	return model.Breakdown{
		Days:    minutes / minutesPerDay,
		Hours:   (minutes % minutesPerDay) / minutesPerHour,
		Minutes: minutes % minutesPerHour,
	}
}

// Encouragement returns the line shown under the worked total.
func Encouragement(minutes uint64) string {
	switch {
	case minutes == 0:
		return "It's almost better than nothing!"
	case minutes <= 25:
		return "It's better than nothing!"
	default:
		return "Good job!"
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
