package timeentry

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spenttime/spenttime/pkg/user"
)

// Service orchestrates create/update/delete of single time entries. It owns
// no report state: after a successful mutation the caller rebuilds the report
// for the affected window.
type Service interface {
	Create(ctx context.Context, input NewEntryInput) (TimeEntry, error)
	Update(ctx context.Context, id int, changes UpdateInput) (TimeEntry, error)
	Delete(ctx context.Context, id int) (TimeEntry, error)
	// Notify re-fires the post-create hook for an existing entry and returns
	// the external reference id, if the hook produced one.
	Notify(ctx context.Context, id int) (string, error)
}

type ServiceImpl struct {
	repo      Repository
	validator *Validator
	perms     EditPermission
	hooks     Hooks
}

func NewService(repo Repository, validator *Validator, perms EditPermission, hooks Hooks) *ServiceImpl {
	if hooks == nil {
		hooks = NoopHooks{}
	}
	return &ServiceImpl{repo: repo, validator: validator, perms: perms, hooks: hooks}
}

func (s *ServiceImpl) Create(ctx context.Context, input NewEntryInput) (TimeEntry, error) {
	actor, err := user.CurrentUser(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}

	entry, err := s.validator.Validate(ctx, actor, input)
	if err != nil {
		return TimeEntry{}, err
	}

	stored, err := s.repo.Store(ctx, entry)
	if err != nil {
		return TimeEntry{}, err
	}

	// Notification failures are informational only and never roll back the create.
	if externalId, err := s.hooks.OnEntryCreated(ctx, stored); err != nil {
		log.Warnf("post-create hook failed for entry %d: %v", stored.Id, err)
	} else if externalId != "" {
		log.Debugf("entry %d registered externally as %s", stored.Id, externalId)
	}

	return stored, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id int, changes UpdateInput) (TimeEntry, error) {
	actor, err := user.CurrentUser(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}

	entry, err := s.repo.FindById(ctx, id)
	if err != nil {
		return TimeEntry{}, err
	}

	canEdit, err := s.perms.CanEdit(ctx, actor, entry)
	if err != nil {
		return TimeEntry{}, err
	}
	if !canEdit {
		return TimeEntry{}, ErrForbidden
	}

	changes, err = s.hooks.OnBeforeEntryUpdate(ctx, entry, changes)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("pre-save hook rejected the update: %w", err)
	}

	entry, err = applyChanges(entry, changes)
	if err != nil {
		return TimeEntry{}, err
	}

	return s.repo.Update(ctx, entry)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (TimeEntry, error) {
	actor, err := user.CurrentUser(ctx)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("failed to get current user: %w", err)
	}

	entry, err := s.repo.FindById(ctx, id)
	if err != nil {
		return TimeEntry{}, err
	}

	canEdit, err := s.perms.CanEdit(ctx, actor, entry)
	if err != nil {
		return TimeEntry{}, err
	}
	if !canEdit {
		return TimeEntry{}, ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return TimeEntry{}, err
	}
	return entry, nil
}

func (s *ServiceImpl) Notify(ctx context.Context, id int) (string, error) {
	entry, err := s.repo.FindById(ctx, id)
	if err != nil {
		return "", err
	}
	return s.hooks.OnEntryCreated(ctx, entry)
}

// applyChanges applies the whitelisted attribute set onto an entry. The
// owning user is never touched.
func applyChanges(entry TimeEntry, changes UpdateInput) (TimeEntry, error) {
	if changes.Hours != nil {
		hours, err := ParseHours(*changes.Hours)
		if err != nil {
			return TimeEntry{}, err
		}
		entry.Hours = hours
	}
	if changes.SpentOn != nil {
		spentOn, err := time.Parse(DateFormat, *changes.SpentOn)
		if err != nil {
			return TimeEntry{}, ErrInvalidDate
		}
		entry.SpentOn = spentOn
	}
	if changes.ActivityId != nil {
		entry.ActivityId = *changes.ActivityId
	}
	if changes.Comments != nil {
		entry.Comments = *changes.Comments
	}
	return entry, nil
}
