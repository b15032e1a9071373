package timeentry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spenttime/spenttime/pkg/issue"
	"github.com/spenttime/spenttime/pkg/project"
	"github.com/spenttime/spenttime/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHooks captures hook invocations and can be told to fail or to
// mutate the incoming changes.
type recordingHooks struct {
	createdEntries []TimeEntry
	externalId     string
	createErr      error
	updateErr      error
	mutateComment  *string
}

func (h *recordingHooks) OnEntryCreated(ctx context.Context, entry TimeEntry) (string, error) {
	h.createdEntries = append(h.createdEntries, entry)
	return h.externalId, h.createErr
}

func (h *recordingHooks) OnBeforeEntryUpdate(ctx context.Context, entry TimeEntry, changes UpdateInput) (UpdateInput, error) {
	if h.updateErr != nil {
		return UpdateInput{}, h.updateErr
	}
	if h.mutateComment != nil {
		changes.Comments = h.mutateComment
	}
	return changes, nil
}

type serviceFixture struct {
	service *ServiceImpl
	repo    *StubRepository
	perms   *ownerOnlyPerms
	hooks   *recordingHooks
}

func setupService(t *testing.T) serviceFixture {
	projects := project.NewStubProjectRepo()
	projects.Add(project.Project{Id: 1, Name: "One", Identifier: "one", LogTimeEnabled: true}, actor.Id, other.Id)
	issues := issue.NewStubIssueRepo()
	issues.Add(issue.Issue{Id: 42, ProjectId: 1, Subject: "Crash on load", Open: true})

	repo := NewStubRepository()
	t.Cleanup(repo.Cleanup)
	perms := newOwnerOnlyPerms()
	hooks := &recordingHooks{}
	validator := NewValidator(project.NewService(projects), issues, perms)
	return serviceFixture{
		service: NewService(repo, validator, perms, hooks),
		repo:    repo,
		perms:   perms,
		hooks:   hooks,
	}
}

var other = user.User{Id: 20, Username: "bob", DisplayName: "Bob", Status: user.StatusActive}

func ctxAs(u user.User) context.Context {
	return user.WithUser(context.Background(), u)
}

func TestService_CreateStoresValidatedEntry(t *testing.T) {
	f := setupService(t)

	created, err := f.service.Create(ctxAs(actor), validInput(1))

	require.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.Equal(t, actor.Id, created.UserId)

	stored, err := f.repo.FindById(context.Background(), created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
	require.Len(t, f.hooks.createdEntries, 1)
	assert.Equal(t, created, f.hooks.createdEntries[0])
}

func TestService_CreateRequiresCurrentUser(t *testing.T) {
	f := setupService(t)

	_, err := f.service.Create(context.Background(), validInput(1))

	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestService_CreateSurvivesFailingHook(t *testing.T) {
	f := setupService(t)
	f.hooks.createErr = errors.New("upstream unavailable")

	created, err := f.service.Create(ctxAs(actor), validInput(1))

	require.NoError(t, err)
	_, err = f.repo.FindById(context.Background(), created.Id)
	assert.NoError(t, err)
}

func TestService_UpdateAppliesWhitelistedChanges(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)

	hours := "4"
	spentOn := "2024-03-12"
	comments := "pairing session"
	activityId := 3
	updated, err := f.service.Update(ctxAs(actor), created.Id, UpdateInput{
		Hours:      &hours,
		SpentOn:    &spentOn,
		Comments:   &comments,
		ActivityId: &activityId,
	})

	require.NoError(t, err)
	assert.Equal(t, 4.0, updated.Hours)
	assert.Equal(t, time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC), updated.SpentOn)
	assert.Equal(t, "pairing session", updated.Comments)
	assert.Equal(t, 3, updated.ActivityId)
	// the owner never changes, whatever the payload claims
	assert.Equal(t, actor.Id, updated.UserId)
}

func TestService_UpdateByNonOwnerIsForbidden(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)

	hours := "1"
	_, err = f.service.Update(ctxAs(other), created.Id, UpdateInput{Hours: &hours})

	assert.ErrorIs(t, err, ErrForbidden)
	stored, err := f.repo.FindById(context.Background(), created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestService_UpdateByPrivilegedUserSucceeds(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)
	f.perms.AllowEditingOthers(other.Id)

	hours := "2"
	updated, err := f.service.Update(ctxAs(other), created.Id, UpdateInput{Hours: &hours})

	require.NoError(t, err)
	assert.Equal(t, 2.0, updated.Hours)
	assert.Equal(t, actor.Id, updated.UserId)
}

func TestService_UpdateValidatesChangedAttributes(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)

	badHours := "abc"
	_, err = f.service.Update(ctxAs(actor), created.Id, UpdateInput{Hours: &badHours})
	assert.ErrorIs(t, err, ErrInvalidHours)

	badDate := "12/03/2024"
	_, err = f.service.Update(ctxAs(actor), created.Id, UpdateInput{SpentOn: &badDate})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_PreSaveHookCanMutateChanges(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)
	mutated := "annotated by hook"
	f.hooks.mutateComment = &mutated

	comments := "original comment"
	updated, err := f.service.Update(ctxAs(actor), created.Id, UpdateInput{Comments: &comments})

	require.NoError(t, err)
	assert.Equal(t, "annotated by hook", updated.Comments)
}

func TestService_PreSaveHookCanAbortUpdate(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)
	f.hooks.updateErr = errors.New("entry is locked")

	comments := "too late"
	_, err = f.service.Update(ctxAs(actor), created.Id, UpdateInput{Comments: &comments})

	require.Error(t, err)
	stored, err := f.repo.FindById(context.Background(), created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestService_DeleteReturnsRemovedEntry(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)

	deleted, err := f.service.Delete(ctxAs(actor), created.Id)

	require.NoError(t, err)
	assert.Equal(t, created, deleted)
	_, err = f.repo.FindById(context.Background(), created.Id)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestService_DeleteTwiceReportsMissingEntry(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)

	_, err = f.service.Delete(ctxAs(actor), created.Id)
	require.NoError(t, err)

	_, err = f.service.Delete(ctxAs(actor), created.Id)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestService_DeleteByNonOwnerIsForbidden(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)

	_, err = f.service.Delete(ctxAs(other), created.Id)

	assert.ErrorIs(t, err, ErrForbidden)
	_, err = f.repo.FindById(context.Background(), created.Id)
	assert.NoError(t, err)
}

func TestService_NotifyRefiresCreateHook(t *testing.T) {
	f := setupService(t)
	created, err := f.service.Create(ctxAs(actor), validInput(1))
	require.NoError(t, err)
	f.hooks.externalId = "EXT-7"

	externalId, err := f.service.Notify(ctxAs(actor), created.Id)

	require.NoError(t, err)
	assert.Equal(t, "EXT-7", externalId)
	assert.Len(t, f.hooks.createdEntries, 2)
}

func TestService_NotifyUnknownEntry(t *testing.T) {
	f := setupService(t)

	_, err := f.service.Notify(ctxAs(actor), 999)

	assert.ErrorIs(t, err, ErrEntryNotFound)
}
