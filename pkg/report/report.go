package report

import (
	"errors"
	"time"

	"github.com/spenttime/spenttime/pkg/timeentry"
)

var (
	ErrInvalidDate  = errors.New("date is not valid")
	ErrInvalidRange = errors.New("from date is after to date")
)

// Filter selects the entries a report is built over. From and To must be
// normalized dates; builders never apply defaults themselves.
type Filter struct {
	From       time.Time
	To         time.Time
	UserIds    []int
	ProjectIds []int
}

// Group is one aggregation bucket keyed by (spent_on, project, issue,
// activity) with the member entries and their hour sum.
type Group struct {
	SpentOn    time.Time
	ProjectId  int
	IssueId    int
	ActivityId int
	Hours      float64
	Entries    []timeentry.TimeEntry
}

// Report is a derived, read-only aggregation over a date range. It is
// rebuilt on every request and never mutated in place.
type Report struct {
	From       time.Time
	To         time.Time
	Groups     []Group
	TotalHours float64
}

// NormalizeRange parses raw date strings into a validated [from, to] pair.
// Unparsable input is a validation error, not a silent default, and an
// inverted range is rejected rather than swapped.
func NormalizeRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from, err := time.Parse(timeentry.DateFormat, fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, err := time.Parse(timeentry.DateFormat, toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return from, to, nil
}

// ExtendRange widens the window boundary just enough to include date.
// Interior dates leave the window untouched.
func ExtendRange(from, to, date time.Time) (time.Time, time.Time) {
	if date.After(to) {
		to = date
	} else if date.Before(from) {
		from = date
	}
	return from, to
}
