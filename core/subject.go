package core

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrBlankSubject = errors.New("a subject is required")

	deadlineLayouts = []string{
		"2006-01-02T15:04", // <input type="datetime-local">
		"2006-01-02T15:04:05",
		time.RFC3339,
		dateLayout,
	}
)

// CheckSubject rejects blank subjects. Any other string is a valid subject.
func CheckSubject(subject string) error {
	if IsBlank(subject) {
		return NewFieldError("subject", ErrBlankSubject)
	}
	return nil
}

// ParseDeadline parses a deadline as entered by a teacher, in local time unless it carries an offset.
// A date without a time lasts until the end of that day.
// ok is false for blank or unparsable values, which mean "no deadline".
func ParseDeadline(s string) (deadline time.Time, ok bool) {
	s = CleanString(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			if layout == dateLayout {
				t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
			}
			return t, true
		}
	}
	return time.Time{}, false
}
