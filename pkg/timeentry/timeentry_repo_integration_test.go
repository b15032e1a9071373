package timeentry

import (
	"context"
	"testing"

	"github.com/spenttime/spenttime/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRepository_Postgres runs the repository round-trip against a real
// Postgres instance. Needs Docker; skipped in short mode.
func TestRepository_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}

	container, connect := test_utils.TestWithDB()
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})
	db := connect()
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	_, err := db.Exec(`INSERT INTO users (id, uid, username, display_name) VALUES (10, 'uid-alice', 'alice', 'Alice')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO projects (id, name, identifier) VALUES (1, 'One', 'one')`)
	require.NoError(t, err)

	repo := NewRepository(db)

	stored, err := repo.Store(ctx, TimeEntry{
		UserId: 10, ProjectId: 1, ActivityId: 1, Hours: 7.5, SpentOn: day(11), Comments: "parser work",
	})
	require.NoError(t, err)
	require.NotZero(t, stored.Id)

	found, err := repo.FindById(ctx, stored.Id)
	require.NoError(t, err)
	assert.Equal(t, stored, found)

	entries, err := repo.FindForReport(ctx, day(10), day(14), []int{10}, nil)
	require.NoError(t, err)
	assert.Equal(t, []TimeEntry{stored}, entries)

	require.NoError(t, repo.Delete(ctx, stored.Id))
	_, err = repo.FindById(ctx, stored.Id)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}
