package timeentry

import (
	"context"
	"sort"
	"time"
)

type StubRepository struct {
	nextId int
	data   map[int]TimeEntry
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[int]TimeEntry{}}
}

func (s *StubRepository) Store(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	s.nextId++
	entry.Id = s.nextId
	s.data[entry.Id] = entry
	return entry, nil
}

func (s *StubRepository) FindById(ctx context.Context, id int) (TimeEntry, error) {
	entry, ok := s.data[id]
	if !ok {
		return TimeEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (s *StubRepository) Update(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	if _, ok := s.data[entry.Id]; !ok {
		return TimeEntry{}, ErrEntryNotFound
	}
	s.data[entry.Id] = entry
	return entry, nil
}

func (s *StubRepository) Delete(ctx context.Context, id int) error {
	if _, ok := s.data[id]; !ok {
		return ErrEntryNotFound
	}
	delete(s.data, id)
	return nil
}

func (s *StubRepository) FindForReport(ctx context.Context, from, to time.Time, userIds []int, projectIds []int) ([]TimeEntry, error) {
	entries := make([]TimeEntry, 0)
	for _, entry := range s.data {
		if entry.SpentOn.Before(from) || entry.SpentOn.After(to) {
			continue
		}
		if !containsId(userIds, entry.UserId) {
			continue
		}
		if len(projectIds) > 0 && !containsId(projectIds, entry.ProjectId) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.SpentOn.Equal(b.SpentOn) {
			return a.SpentOn.Before(b.SpentOn)
		}
		if a.ProjectId != b.ProjectId {
			return a.ProjectId < b.ProjectId
		}
		if a.IssueId != b.IssueId {
			return a.IssueId < b.IssueId
		}
		if a.ActivityId != b.ActivityId {
			return a.ActivityId < b.ActivityId
		}
		return a.Id < b.Id
	})
	return entries, nil
}

func containsId(ids []int, id int) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func (s *StubRepository) Cleanup() {
	s.data = map[int]TimeEntry{}
	s.nextId = 0
}
