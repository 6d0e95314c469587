// Package report groups instants into columns by their age in working days.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ColumnHeader selects all ages within [LowerAgeLimit, UpperAgeLimit].
// math.MinInt and math.MaxInt leave a side open.
type ColumnHeader struct {
	LowerAgeLimit int `yaml:"lower"`
	UpperAgeLimit int `yaml:"upper"`
}

// NewColumnHeader creates a header, the limits may come in any order
func NewColumnHeader(lower, upper int) ColumnHeader {
	if lower > upper {
		lower, upper = upper, lower
	}
	return ColumnHeader{LowerAgeLimit: lower, UpperAgeLimit: upper}
}

// Fits reports whether age falls into the header
func (h ColumnHeader) Fits(age int) bool {
	return age >= h.LowerAgeLimit && age <= h.UpperAgeLimit
}

// DisplayName renders the header as "<n", ">n", "n" or "a...b"
func (h ColumnHeader) DisplayName() string {
	switch {
	case h.LowerAgeLimit == math.MinInt && h.UpperAgeLimit == math.MaxInt:
		return "all"
	case h.LowerAgeLimit == math.MinInt:
		return "<" + strconv.Itoa(h.UpperAgeLimit+1)
	case h.UpperAgeLimit == math.MaxInt:
		return ">" + strconv.Itoa(h.LowerAgeLimit-1)
	case h.LowerAgeLimit == h.UpperAgeLimit:
		return strconv.Itoa(h.LowerAgeLimit)
	default:
		return fmt.Sprintf("%d...%d", h.LowerAgeLimit, h.UpperAgeLimit)
	}
}

func (h ColumnHeader) String() string {
	return h.DisplayName()
}

// ParseHeaders parses a comma separated list of headers in DisplayName form,
// e.g. "<-5,-5...-1,0,1...5,>5"
func ParseHeaders(value string) ([]ColumnHeader, error) {
	var headers []ColumnHeader
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		header, err := parseHeader(token)
		if err != nil {
			return nil, err
		}
		headers = append(headers, header)
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("no column headers in %q", value)
	}
	return headers, nil
}

func parseHeader(token string) (ColumnHeader, error) {
	switch {
	case token == "all":
		return ColumnHeader{LowerAgeLimit: math.MinInt, UpperAgeLimit: math.MaxInt}, nil
	case strings.HasPrefix(token, "<"):
		n, err := strconv.Atoi(token[1:])
		if err != nil {
			return ColumnHeader{}, fmt.Errorf("invalid column header %q: %w", token, err)
		}
		if n == math.MinInt {
			return ColumnHeader{}, fmt.Errorf("invalid column header %q: no age below %d", token, n)
		}
		return ColumnHeader{LowerAgeLimit: math.MinInt, UpperAgeLimit: n - 1}, nil
	case strings.HasPrefix(token, ">"):
		n, err := strconv.Atoi(token[1:])
		if err != nil {
			return ColumnHeader{}, fmt.Errorf("invalid column header %q: %w", token, err)
		}
		if n == math.MaxInt {
			return ColumnHeader{}, fmt.Errorf("invalid column header %q: no age above %d", token, n)
		}
		return ColumnHeader{LowerAgeLimit: n + 1, UpperAgeLimit: math.MaxInt}, nil
	}

	if lower, upper, ok := strings.Cut(token, "..."); ok {
		lo, err := strconv.Atoi(lower)
		if err != nil {
			return ColumnHeader{}, fmt.Errorf("invalid column header %q: %w", token, err)
		}
		hi, err := strconv.Atoi(upper)
		if err != nil {
			return ColumnHeader{}, fmt.Errorf("invalid column header %q: %w", token, err)
		}
		return NewColumnHeader(lo, hi), nil
	}

	n, err := strconv.Atoi(token)
	if err != nil {
		return ColumnHeader{}, fmt.Errorf("invalid column header %q: %w", token, err)
	}
	return NewColumnHeader(n, n), nil
}

// TimeInterval is the half-open instant range [Begin, End).
// A zero Begin or End leaves that side open.
type TimeInterval struct {
	Begin time.Time `yaml:"begin,omitempty"`
	End   time.Time `yaml:"end,omitempty"`
}

// Contains reports whether t lies within the interval
func (i TimeInterval) Contains(t time.Time) bool {
	if !i.Begin.IsZero() && t.Before(i.Begin) {
		return false
	}
	if !i.End.IsZero() && !t.Before(i.End) {
		return false
	}
	return true
}
