package activity

import (
	"context"
	"sort"
)

type StubRepo struct {
	data []Activity
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: []Activity{}}
}

func (s *StubRepo) Add(a Activity) Activity {
	s.data = append(s.data, a)
	return a
}

func (s *StubRepo) GetAll(ctx context.Context) ([]Activity, error) {
	activities := make([]Activity, len(s.data))
	copy(activities, s.data)
	sort.Slice(activities, func(i, j int) bool { return activities[i].Position < activities[j].Position })
	return activities, nil
}

func (s *StubRepo) Cleanup() {
	s.data = []Activity{}
}
