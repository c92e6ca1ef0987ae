package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Draw times are fixed in Australian Eastern Standard Time (UTC+10).
// The platform does not observe daylight saving.
var drawZone = time.FixedZone("AEST", 10*60*60)

// Default cadence used when a game's frequency descriptor is unrecognized
const (
	defaultDrawWeekday = time.Saturday
	defaultDrawHour    = 20
)

// DrawFrequency is a parsed frequency descriptor: either daily at a fixed
// hour, or weekly on a named weekday at a fixed hour.
type DrawFrequency struct {
	Daily   bool
	Weekday time.Weekday
	Hour    int
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseDrawFrequency parses descriptors of the form "daily at HH" or
// "<weekday> at HH"
func ParseDrawFrequency(descriptor string) (DrawFrequency, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(descriptor)))
	if len(fields) != 3 || fields[1] != "at" {
		return DrawFrequency{}, fmt.Errorf("unrecognized draw frequency %q", descriptor)
	}

	hour, err := strconv.Atoi(fields[2])
	if err != nil || hour < 0 || hour > 23 {
		return DrawFrequency{}, fmt.Errorf("invalid draw hour in %q", descriptor)
	}

	if fields[0] == "daily" {
		return DrawFrequency{Daily: true, Hour: hour}, nil
	}
	weekday, ok := weekdayNames[fields[0]]
	if !ok {
		return DrawFrequency{}, fmt.Errorf("unrecognized draw frequency %q", descriptor)
	}
	return DrawFrequency{Weekday: weekday, Hour: hour}, nil
}

// Next returns the next occurrence of the frequency strictly after from
func (f DrawFrequency) Next(from time.Time) time.Time {
	local := from.In(drawZone)
	slot := time.Date(local.Year(), local.Month(), local.Day(), f.Hour, 0, 0, 0, drawZone)

	if f.Daily {
		if !slot.After(from) {
			slot = slot.AddDate(0, 0, 1)
		}
		return slot
	}

	daysAhead := (int(f.Weekday) - int(local.Weekday()) + 7) % 7
	slot = slot.AddDate(0, 0, daysAhead)
	if !slot.After(from) {
		slot = slot.AddDate(0, 0, 7)
	}
	return slot
}

// NextOccurrence computes the next draw time strictly after from for the
// given frequency descriptor. Unrecognized descriptors fall back to the
// default Saturday 20:00 cadence with a logged warning.
func NextOccurrence(descriptor string, from time.Time) time.Time {
	freq, err := ParseDrawFrequency(descriptor)
	if err != nil {
		log.WithError(err).WithField("descriptor", descriptor).
			Warn("Unrecognized draw frequency, using default weekly cadence")
		freq = DrawFrequency{Weekday: defaultDrawWeekday, Hour: defaultDrawHour}
	}
	return freq.Next(from)
}

// NextOccurrences returns n successive future draw times by iterative
// application of NextOccurrence
func NextOccurrences(descriptor string, from time.Time, n int) []time.Time {
	times := make([]time.Time, 0, n)
	cursor := from
	for i := 0; i < n; i++ {
		cursor = NextOccurrence(descriptor, cursor)
		times = append(times, cursor)
	}
	return times
}
