package report

import (
	"context"
	"sort"
	"time"

	"github.com/spenttime/spenttime/pkg/timeentry"
)

// EntrySource is the slice of the time-entry store a builder reads from.
type EntrySource interface {
	FindForReport(ctx context.Context, from, to time.Time, userIds []int, projectIds []int) ([]timeentry.TimeEntry, error)
}

// Service builds reports. Building is a pure read: no entry is mutated and
// no permission is checked here; callers pass an already-resolved user set.
type Service interface {
	Build(ctx context.Context, filter Filter) (Report, error)
}

type ServiceImpl struct {
	entries EntrySource
}

func NewService(entries EntrySource) *ServiceImpl {
	return &ServiceImpl{entries: entries}
}

type groupKey struct {
	spentOn    string
	projectId  int
	issueId    int
	activityId int
}

func (s *ServiceImpl) Build(ctx context.Context, filter Filter) (Report, error) {
	if filter.From.IsZero() || filter.To.IsZero() {
		return Report{}, ErrInvalidDate
	}
	if filter.From.After(filter.To) {
		return Report{}, ErrInvalidRange
	}

	entries, err := s.entries.FindForReport(ctx, filter.From, filter.To, filter.UserIds, filter.ProjectIds)
	if err != nil {
		return Report{}, err
	}
	// A cancelled build never returns a partial report.
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	groupsByKey := make(map[groupKey]*Group)
	total := 0.0
	for _, entry := range entries {
		key := groupKey{
			spentOn:    entry.SpentOn.Format(timeentry.DateFormat),
			projectId:  entry.ProjectId,
			issueId:    entry.IssueId,
			activityId: entry.ActivityId,
		}
		group, ok := groupsByKey[key]
		if !ok {
			group = &Group{
				SpentOn:    entry.SpentOn,
				ProjectId:  entry.ProjectId,
				IssueId:    entry.IssueId,
				ActivityId: entry.ActivityId,
			}
			groupsByKey[key] = group
		}
		group.Hours += entry.Hours
		group.Entries = append(group.Entries, entry)
		total += entry.Hours
	}

	groups := make([]Group, 0, len(groupsByKey))
	for _, group := range groupsByKey {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if !a.SpentOn.Equal(b.SpentOn) {
			return a.SpentOn.Before(b.SpentOn)
		}
		if a.ProjectId != b.ProjectId {
			return a.ProjectId < b.ProjectId
		}
		if a.IssueId != b.IssueId {
			return a.IssueId < b.IssueId
		}
		return a.ActivityId < b.ActivityId
	})

	return Report{
		From:       filter.From,
		To:         filter.To,
		Groups:     groups,
		TotalHours: total,
	}, nil
}
