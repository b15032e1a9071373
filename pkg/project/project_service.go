package project

import (
	"context"
)

type Service interface {
	GetProject(ctx context.Context, id int) (Project, error)
	ProjectsOfUser(ctx context.Context, userId int) ([]Project, error)
	MemberIds(ctx context.Context, projectId int) ([]int, error)
	AllowsTimeLogging(ctx context.Context, p Project, userId int) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetProject(ctx context.Context, id int) (Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *ServiceImpl) ProjectsOfUser(ctx context.Context, userId int) ([]Project, error) {
	return s.repo.ProjectsOfUser(ctx, userId)
}

func (s *ServiceImpl) MemberIds(ctx context.Context, projectId int) ([]int, error) {
	return s.repo.MemberIds(ctx, projectId)
}

// AllowsTimeLogging tells whether the given user may log time on the project:
// the time-logging module must be enabled and the user must be a member.
func (s *ServiceImpl) AllowsTimeLogging(ctx context.Context, p Project, userId int) (bool, error) {
	if !p.LogTimeEnabled {
		return false, nil
	}
	return s.repo.IsMember(ctx, p.Id, userId)
}
