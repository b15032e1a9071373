package timeentry

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/spenttime/spenttime/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) (*RepositoryImpl, *sql.DB) {
	db := test_utils.SetupTestDB(t)
	seed := []string{
		`INSERT INTO users (id, uid, username, display_name) VALUES
			(10, 'uid-alice', 'alice', 'Alice'),
			(20, 'uid-bob', 'bob', 'Bob')`,
		`INSERT INTO projects (id, name, identifier) VALUES
			(1, 'One', 'one'),
			(2, 'Two', 'two')`,
		`INSERT INTO issues (id, project_id, subject) VALUES (42, 1, 'Crash on load')`,
	}
	for _, stmt := range seed {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return NewRepository(db), db
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestRepository_StoreAndFindById(t *testing.T) {
	repo, _ := setupRepo(t)

	stored, err := repo.Store(context.Background(), TimeEntry{
		UserId:     10,
		ProjectId:  1,
		IssueId:    42,
		ActivityId: 1,
		Hours:      7.5,
		SpentOn:    day(11),
		Comments:   "worked on the parser",
	})

	require.NoError(t, err)
	assert.NotZero(t, stored.Id)

	found, err := repo.FindById(context.Background(), stored.Id)
	require.NoError(t, err)
	assert.Equal(t, stored, found)
}

func TestRepository_StoreWithoutIssue(t *testing.T) {
	repo, _ := setupRepo(t)

	stored, err := repo.Store(context.Background(), TimeEntry{
		UserId:     10,
		ProjectId:  1,
		ActivityId: 1,
		Hours:      1,
		SpentOn:    day(11),
	})

	require.NoError(t, err)
	found, err := repo.FindById(context.Background(), stored.Id)
	require.NoError(t, err)
	assert.Zero(t, found.IssueId)
}

func TestRepository_FindByIdUnknown(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.FindById(context.Background(), 999)

	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestRepository_Update(t *testing.T) {
	repo, _ := setupRepo(t)
	stored, err := repo.Store(context.Background(), TimeEntry{
		UserId: 10, ProjectId: 1, ActivityId: 1, Hours: 7.5, SpentOn: day(11),
	})
	require.NoError(t, err)

	stored.Hours = 4
	stored.SpentOn = day(12)
	stored.Comments = "pairing session"
	stored.ActivityId = 2
	updated, err := repo.Update(context.Background(), stored)

	require.NoError(t, err)
	found, err := repo.FindById(context.Background(), stored.Id)
	require.NoError(t, err)
	assert.Equal(t, updated, found)
	assert.Equal(t, 4.0, found.Hours)
	assert.Equal(t, day(12), found.SpentOn)
}

func TestRepository_UpdateUnknown(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Update(context.Background(), TimeEntry{Id: 999, ActivityId: 1, Hours: 1, SpentOn: day(11)})

	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, _ := setupRepo(t)
	stored, err := repo.Store(context.Background(), TimeEntry{
		UserId: 10, ProjectId: 1, ActivityId: 1, Hours: 1, SpentOn: day(11),
	})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), stored.Id))

	_, err = repo.FindById(context.Background(), stored.Id)
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), stored.Id), ErrEntryNotFound)
}

func TestRepository_FindForReport(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	store := func(userId, projectId, issueId int, spentOn time.Time, hours float64) TimeEntry {
		entry, err := repo.Store(ctx, TimeEntry{
			UserId: userId, ProjectId: projectId, IssueId: issueId, ActivityId: 1,
			Hours: hours, SpentOn: spentOn,
		})
		require.NoError(t, err)
		return entry
	}

	inWindow := store(10, 1, 42, day(11), 2)
	secondDay := store(10, 2, 0, day(12), 3)
	byBob := store(20, 1, 0, day(11), 1)
	store(10, 1, 0, day(20), 5) // outside the window

	t.Run("filters by window and users", func(t *testing.T) {
		entries, err := repo.FindForReport(ctx, day(10), day(14), []int{10}, nil)

		require.NoError(t, err)
		assert.Equal(t, []TimeEntry{inWindow, secondDay}, entries)
	})

	t.Run("includes all requested users in stable order", func(t *testing.T) {
		entries, err := repo.FindForReport(ctx, day(10), day(14), []int{10, 20}, nil)

		require.NoError(t, err)
		// same day entries order by project, then issue, then activity, then id
		assert.Equal(t, []TimeEntry{byBob, inWindow, secondDay}, entries)
	})

	t.Run("restricts to projects when given", func(t *testing.T) {
		entries, err := repo.FindForReport(ctx, day(10), day(14), []int{10, 20}, []int{2})

		require.NoError(t, err)
		assert.Equal(t, []TimeEntry{secondDay}, entries)
	})

	t.Run("no users means no entries", func(t *testing.T) {
		entries, err := repo.FindForReport(ctx, day(10), day(14), nil, nil)

		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
