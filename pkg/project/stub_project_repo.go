package project

import (
	"context"
	"sort"
)

type StubProjectRepo struct {
	nextId  int
	data    map[int]Project
	members map[int][]int
}

func NewStubProjectRepo() *StubProjectRepo {
	return &StubProjectRepo{
		data:    map[int]Project{},
		members: map[int][]int{},
	}
}

func (s *StubProjectRepo) Add(p Project, memberIds ...int) Project {
	if p.Id == 0 {
		s.nextId++
		p.Id = s.nextId
	} else if p.Id > s.nextId {
		s.nextId = p.Id
	}
	s.data[p.Id] = p
	s.members[p.Id] = append(s.members[p.Id], memberIds...)
	return p
}

func (s *StubProjectRepo) GetProject(ctx context.Context, id int) (Project, error) {
	p, ok := s.data[id]
	if !ok {
		return Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (s *StubProjectRepo) ProjectsOfUser(ctx context.Context, userId int) ([]Project, error) {
	projects := make([]Project, 0)
	for projectId, memberIds := range s.members {
		for _, id := range memberIds {
			if id == userId {
				projects = append(projects, s.data[projectId])
				break
			}
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].Name < projects[j].Name })
	return projects, nil
}

func (s *StubProjectRepo) MemberIds(ctx context.Context, projectId int) ([]int, error) {
	return s.members[projectId], nil
}

func (s *StubProjectRepo) IsMember(ctx context.Context, projectId int, userId int) (bool, error) {
	for _, id := range s.members[projectId] {
		if id == userId {
			return true, nil
		}
	}
	return false, nil
}

func (s *StubProjectRepo) Cleanup() {
	s.data = map[int]Project{}
	s.members = map[int][]int{}
	s.nextId = 0
}
