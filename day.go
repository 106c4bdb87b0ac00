package zet

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Hour of day before which "today" still means yesterday's service
// day. Feeds encode night-owl trips with hours past 24 (e.g. 25:30),
// belonging to the previous day's calendar.
const DefaultNightCutoff = 4

// A departure time that failed to parse sorts after everything real.
const sentinelMinute = 1 << 20

// ServiceDay maps an instant onto its effective service day. Before
// the night cutoff the effective day is the previous calendar day,
// and minute-of-day comparisons need a full day added to line up with
// the >24h minute values the schedule builder produces. Both the
// calendar resolver and the board composer go through here, so the
// two rollover computations cannot drift apart.
func ServiceDay(now time.Time, cutoffHour int) (day time.Time, minuteOffset int) {
	if now.Hour() < cutoffHour {
		return now.AddDate(0, 0, -1), 24 * 60
	}
	return now, 0
}

// ParseMinute converts an "HH:MM:SS" departure time into minutes
// since midnight. Hours beyond 23 are legal and yield minutes beyond
// 1439. Seconds are ignored. Anything unparseable gets the sentinel,
// which sorts last instead of failing the build.
func ParseMinute(s string) int {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return sentinelMinute
	}

	h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errH != nil || errM != nil || h < 0 || m < 0 || m > 59 {
		return sentinelMinute
	}

	return h*60 + m
}

// FormatMinute renders a minute-of-day as "HH:MM", wrapping hours
// past 24 back onto the clock face.
func FormatMinute(minute int) string {
	h := (minute / 60) % 24
	m := minute % 60
	return fmt.Sprintf("%02d:%02d", h, m)
}
