package permission

import (
	"context"

	"github.com/spenttime/spenttime/pkg/timeentry"
	"github.com/spenttime/spenttime/pkg/user"
)

type Service interface {
	HasCapability(ctx context.Context, userId int, capability string) (bool, error)
	CanEdit(ctx context.Context, u user.User, entry timeentry.TimeEntry) (bool, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) HasCapability(ctx context.Context, userId int, capability string) (bool, error) {
	return s.repo.HasCapability(ctx, userId, capability)
}

// CanEdit tells whether the user may create, change, or delete the entry:
// the owner always may, anyone else needs the edit_others_spent_time
// capability.
func (s *ServiceImpl) CanEdit(ctx context.Context, u user.User, entry timeentry.TimeEntry) (bool, error) {
	if entry.UserId == u.Id {
		return true, nil
	}
	return s.repo.HasCapability(ctx, u.Id, EditOthersSpentTime)
}
