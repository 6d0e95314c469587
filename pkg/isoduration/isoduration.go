// Package isoduration converts between ISO 8601 durations and time.Duration.
package isoduration

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// Parse parses an ISO 8601 duration of the form P[nW][nD][T[nH][nM][nS]].
// Calendar units are exact: 1D = 24h, 1W = 7D. Seconds may carry a fraction.
func Parse(duration string) (time.Duration, error) {
	if duration == "" {
		return 0, fmt.Errorf("empty duration")
	}

	negative := false
	if duration[0] == '-' {
		negative = true
		duration = duration[1:]
	}

	if duration == "" || duration[0] != 'P' {
		return 0, fmt.Errorf("invalid duration format: must start with P")
	}
	duration = duration[1:]

	// Split by 'T' to separate date and time parts
	datePart := duration
	timePart := ""
	hasTime := false
	if idx := strings.IndexByte(duration, 'T'); idx >= 0 {
		datePart = duration[:idx]
		timePart = duration[idx+1:]
		hasTime = true
		if timePart == "" {
			return 0, fmt.Errorf("invalid duration format: empty time part")
		}
	}
	if datePart == "" && !hasTime {
		return 0, fmt.Errorf("invalid duration format: no components")
	}

	var total time.Duration

	dateUnits := map[byte]time.Duration{'W': week, 'D': day}
	d, err := parseComponents(datePart, "WD", dateUnits)
	if err != nil {
		return 0, err
	}
	total += d

	timeUnits := map[byte]time.Duration{'H': time.Hour, 'M': time.Minute, 'S': time.Second}
	d, err = parseComponents(timePart, "HMS", timeUnits)
	if err != nil {
		return 0, err
	}
	total += d

	if negative {
		total = -total
	}
	return total, nil
}

// parseComponents reads "<number><unit>" pairs; units must appear in the given order.
func parseComponents(part, order string, units map[byte]time.Duration) (time.Duration, error) {
	var total time.Duration
	pos := 0

	for part != "" {
		idx := strings.IndexAny(part, order)
		if idx <= 0 {
			return 0, fmt.Errorf("invalid duration component %q", part)
		}
		unit := part[idx]
		unitPos := strings.IndexByte(order, unit)
		if unitPos < pos {
			return 0, fmt.Errorf("duration unit %c out of order", unit)
		}
		pos = unitPos + 1

		number := part[:idx]
		if unit == 'S' && strings.Contains(number, ".") {
			secs, err := strconv.ParseFloat(number, 64)
			if err != nil || secs < 0 {
				return 0, fmt.Errorf("invalid seconds %q", number)
			}
			total += time.Duration(secs * float64(time.Second))
		} else {
			n, err := strconv.ParseInt(number, 10, 64)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("invalid number %q in duration", number)
			}
			total += time.Duration(n) * units[unit]
		}

		part = part[idx+1:]
	}

	return total, nil
}

// Format formats a duration as ISO 8601.
// Examples: 8h -> PT8H, 1h30m -> PT1H30M, 50h -> P2DT2H, 0 -> PT0S
func Format(d time.Duration) string {
	if d == 0 {
		return "PT0S"
	}

	var b strings.Builder
	if d < 0 {
		b.WriteByte('-')
		d = -d
	}
	b.WriteByte('P')

	days := d / day
	d -= days * day
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if d == 0 {
		return b.String()
	}

	b.WriteByte('T')
	hours := d / time.Hour
	d -= hours * time.Hour
	mins := d / time.Minute
	d -= mins * time.Minute

	if hours > 0 {
		fmt.Fprintf(&b, "%dH", hours)
	}
	if mins > 0 {
		fmt.Fprintf(&b, "%dM", mins)
	}
	if d > 0 {
		if d%time.Second == 0 {
			fmt.Fprintf(&b, "%dS", d/time.Second)
		} else {
			b.WriteString(strconv.FormatFloat(d.Seconds(), 'f', -1, 64))
			b.WriteByte('S')
		}
	}

	return b.String()
}
