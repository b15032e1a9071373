package issue

import (
	"context"
	"sort"
)

type StubIssueRepo struct {
	data map[int]Issue
}

func NewStubIssueRepo() *StubIssueRepo {
	return &StubIssueRepo{data: map[int]Issue{}}
}

func (s *StubIssueRepo) Add(i Issue) Issue {
	s.data[i.Id] = i
	return i
}

func (s *StubIssueRepo) GetIssue(ctx context.Context, id int) (Issue, error) {
	i, ok := s.data[id]
	if !ok {
		return Issue{}, ErrIssueNotFound
	}
	return i, nil
}

func (s *StubIssueRepo) OpenIssuesOfProject(ctx context.Context, projectId int) ([]Issue, error) {
	issues := make([]Issue, 0)
	for _, i := range s.data {
		if i.ProjectId == projectId && i.Open {
			issues = append(issues, i)
		}
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Id < issues[j].Id })
	return issues, nil
}

func (s *StubIssueRepo) Cleanup() {
	s.data = map[int]Issue{}
}
