package timeentry

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"time"

	"github.com/spenttime/spenttime/pkg/issue"
	"github.com/spenttime/spenttime/pkg/project"
	"github.com/spenttime/spenttime/pkg/user"
)

// hoursPattern accepts an optional sign, digits, and an optional fractional
// part. Anything else ("abc", "1,5", "1.") is rejected.
var hoursPattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// ProjectDirectory is the slice of the project store the validator needs.
type ProjectDirectory interface {
	GetProject(ctx context.Context, id int) (project.Project, error)
	AllowsTimeLogging(ctx context.Context, p project.Project, userId int) (bool, error)
}

// IssueDirectory resolves issue references for project-consistency checks.
type IssueDirectory interface {
	GetIssue(ctx context.Context, id int) (issue.Issue, error)
}

// EditPermission decides whether a user may create or change an entry,
// evaluated against the entry's attributes.
type EditPermission interface {
	CanEdit(ctx context.Context, u user.User, entry TimeEntry) (bool, error)
}

// Validator turns a raw create payload into a fully resolved TimeEntry.
// Rules run in a fixed order and the first failure wins.
type Validator struct {
	projects ProjectDirectory
	issues   IssueDirectory
	perms    EditPermission
}

func NewValidator(projects ProjectDirectory, issues IssueDirectory, perms EditPermission) *Validator {
	return &Validator{projects: projects, issues: issues, perms: perms}
}

func (v *Validator) Validate(ctx context.Context, actor user.User, in NewEntryInput) (TimeEntry, error) {
	if in.ProjectId <= 0 {
		return TimeEntry{}, ErrProjectMandatory
	}

	spentOn, err := time.Parse(DateFormat, in.SpentOn)
	if err != nil {
		return TimeEntry{}, ErrInvalidDate
	}

	hours, err := ParseHours(in.Hours)
	if err != nil {
		return TimeEntry{}, err
	}

	p, err := v.projects.GetProject(ctx, in.ProjectId)
	if err != nil {
		if errors.Is(err, project.ErrProjectNotFound) {
			return TimeEntry{}, ErrProjectNotFound
		}
		return TimeEntry{}, err
	}
	allowed, err := v.projects.AllowsTimeLogging(ctx, p, actor.Id)
	if err != nil {
		return TimeEntry{}, err
	}
	if !allowed {
		return TimeEntry{}, ErrProjectNotAllowed
	}

	entry := TimeEntry{
		UserId:     actor.Id,
		ProjectId:  p.Id,
		ActivityId: in.ActivityId,
		Hours:      hours,
		SpentOn:    spentOn,
		Comments:   in.Comments,
	}

	if in.IssueId > 0 {
		i, err := v.issues.GetIssue(ctx, in.IssueId)
		if err != nil {
			if errors.Is(err, issue.ErrIssueNotFound) {
				return TimeEntry{}, ErrIssueNotFound
			}
			return TimeEntry{}, err
		}
		if i.ProjectId != p.Id {
			return TimeEntry{}, ErrIssueNotInProject
		}
		entry.IssueId = i.Id
	}

	canEdit, err := v.perms.CanEdit(ctx, actor, entry)
	if err != nil {
		return TimeEntry{}, err
	}
	if !canEdit {
		return TimeEntry{}, ErrForbidden
	}

	return entry, nil
}

// ParseHours validates the numeric format of an hours value and parses it.
func ParseHours(raw string) (float64, error) {
	if !hoursPattern.MatchString(raw) {
		return 0, ErrInvalidHours
	}
	hours, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ErrInvalidHours
	}
	return hours, nil
}
