package timeentry

import (
	"errors"
	"time"
)

// Validation and mutation error kinds. All of them are recovered at the
// handler boundary and translated into a structured failure response.
var (
	ErrProjectMandatory  = errors.New("project is mandatory")
	ErrInvalidDate       = errors.New("spent_on is not a valid date")
	ErrInvalidHours      = errors.New("hours is not a valid number")
	ErrProjectNotFound   = errors.New("project does not exist")
	ErrProjectNotAllowed = errors.New("project does not allow logging time")
	ErrIssueNotFound     = errors.New("issue does not exist")
	ErrIssueNotInProject = errors.New("issue does not belong to the selected project")
	ErrForbidden         = errors.New("not allowed to edit this time entry")
	ErrEntryNotFound     = errors.New("time entry does not exist")
)

// DateFormat is the wire and storage format for spent_on dates.
const DateFormat = "2006-01-02"

// TimeEntry is a single logged unit of time against a project and
// optionally an issue. IssueId == 0 means no issue.
type TimeEntry struct {
	Id         int
	UserId     int
	ProjectId  int
	IssueId    int
	ActivityId int
	Hours      float64
	SpentOn    time.Time
	Comments   string
}

// NewEntryInput is the raw, not yet validated payload of a create request.
// Hours and SpentOn stay strings until the validator has parsed them.
type NewEntryInput struct {
	ProjectId  int
	IssueId    int
	ActivityId int
	Hours      string
	SpentOn    string
	Comments   string
}

// UpdateInput carries the editable attribute set of an entry. Nil fields are
// left unchanged. The owning user is never updatable.
type UpdateInput struct {
	Hours      *string
	Comments   *string
	ActivityId *int
	SpentOn    *string
}
