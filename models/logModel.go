package models

import "time"

type ExerciseResponse struct {
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    Minutes `json:"duration"`
	Date        string  `json:"date"`
	UserID      string  `json:"id"`
}

type LogEntry struct {
	Description string  `json:"description"`
	Duration    Minutes `json:"duration"`
	Date        string  `json:"date"`
}

type Log struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	UserID   string     `json:"id"`
	Log      []LogEntry `json:"log"`
}

// LogFilter narrows a user's exercises. Nil bounds and a non-positive Limit
// leave that dimension unfiltered.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int64
}

// Includes reports whether an exercise dated t falls inside the bounds.
func (f LogFilter) Includes(t time.Time) bool {
	if f.From != nil && t.Before(*f.From) {
		return false
	}
	if f.To != nil && t.After(*f.To) {
		return false
	}
	return true
}

// Apply filters exercises, in the order given, and truncates to Limit.
func (f LogFilter) Apply(exercises []Exercise) []Exercise {
	out := make([]Exercise, 0, len(exercises))
	for _, e := range exercises {
		if !f.Includes(e.Date) {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && int64(len(out)) == f.Limit {
			break
		}
	}
	return out
}
