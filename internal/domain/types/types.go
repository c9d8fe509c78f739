// Package types contains common types used across the application
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLevel is returned when a level string is neither "person" nor "role".
var ErrUnknownLevel = errors.New("unknown aggregation level")

// Level selects the deduplication key of the participation table.
type Level string

const (
	// LevelPerson counts each distinct person once.
	LevelPerson Level = "person"
	// LevelRole counts each distinct (person, award) pair once.
	LevelRole Level = "role"
)

// ParseLevel accepts "person" or "role" (case-insensitive, surrounding space ignored).
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToLower(strings.TrimSpace(s))) {
	case LevelPerson:
		return LevelPerson, nil
	case LevelRole:
		return LevelRole, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// String returns the configuration spelling, used in output file names.
func (l Level) String() string { return string(l) }

// Title returns the level capitalised for chart titles, e.g. "Person".
func (l Level) Title() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// Gender buckets that are counted; every other value is excluded from the chart.
const (
	GenderMan   = "man"
	GenderWoman = "woman"
)
