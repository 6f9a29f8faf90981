package helpers

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"golang-exercisetracker/models"

	"github.com/araddon/dateparse"
)

var ErrEmptyDate = errors.New("empty date")

// layouts tried before falling back to dateparse. The first is the layout
// dates are rendered in, so a client can send back what it received.
var layouts = []string{
	models.DateLayout,
	"2006-01-02",
}

// ParseDate parses anything that reads as a date. Strings without a zone are
// taken as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ExerciseDate resolves the calendar day an exercise is logged under. An empty
// string means today.
func ExerciseDate(s string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return StartOfDay(now), nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return StartOfDay(t), nil
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(models.DateLayout)
}

// ParseMinutes coerces a duration the way a loose numeric cast would: blank is
// zero and anything non-numeric is NaN.
func ParseMinutes(s string) models.Minutes {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.Minutes(math.NaN())
	}
	return models.Minutes(f)
}

// ParseLimit returns 0 (no limit) unless s is a positive integer.
func ParseLimit(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
