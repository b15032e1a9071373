package report

import (
	"context"
	"testing"

	"github.com/spenttime/spenttime/pkg/timeentry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupReportService(t *testing.T) (*ServiceImpl, *timeentry.StubRepository) {
	repo := timeentry.NewStubRepository()
	t.Cleanup(repo.Cleanup)
	return NewService(repo), repo
}

func storeEntry(t *testing.T, repo *timeentry.StubRepository, entry timeentry.TimeEntry) timeentry.TimeEntry {
	t.Helper()
	stored, err := repo.Store(context.Background(), entry)
	require.NoError(t, err)
	return stored
}

func TestService_BuildGroupsByDayProjectIssueActivity(t *testing.T) {
	service, repo := setupReportService(t)
	// two entries in the same bucket, one in a different one
	first := storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 1, IssueId: 42, ActivityId: 1, Hours: 2, SpentOn: date(11)})
	second := storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 1, IssueId: 42, ActivityId: 1, Hours: 3.5, SpentOn: date(11)})
	storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 1, IssueId: 42, ActivityId: 2, Hours: 1, SpentOn: date(11)})

	result, err := service.Build(context.Background(), Filter{From: date(10), To: date(14), UserIds: []int{10}})

	require.NoError(t, err)
	require.Len(t, result.Groups, 2)
	assert.Equal(t, 5.5, result.Groups[0].Hours)
	assert.Equal(t, []timeentry.TimeEntry{first, second}, result.Groups[0].Entries)
	assert.Equal(t, 1.0, result.Groups[1].Hours)
	assert.Equal(t, 6.5, result.TotalHours)
}

func TestService_BuildOrdersGroups(t *testing.T) {
	service, repo := setupReportService(t)
	storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 2, ActivityId: 1, Hours: 1, SpentOn: date(12)})
	storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 1, ActivityId: 2, Hours: 1, SpentOn: date(12)})
	storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 1, ActivityId: 1, Hours: 1, SpentOn: date(12)})
	storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 9, ActivityId: 9, Hours: 1, SpentOn: date(11)})

	result, err := service.Build(context.Background(), Filter{From: date(10), To: date(14), UserIds: []int{10}})

	require.NoError(t, err)
	require.Len(t, result.Groups, 4)
	// earliest day first, then project, then activity within the day
	assert.Equal(t, date(11), result.Groups[0].SpentOn)
	assert.Equal(t, 1, result.Groups[1].ProjectId)
	assert.Equal(t, 1, result.Groups[1].ActivityId)
	assert.Equal(t, 1, result.Groups[2].ProjectId)
	assert.Equal(t, 2, result.Groups[2].ActivityId)
	assert.Equal(t, 2, result.Groups[3].ProjectId)
}

func TestService_BuildTotalMatchesGroupSums(t *testing.T) {
	service, repo := setupReportService(t)
	hours := []float64{0.25, 1, 2.5, 4, 7.75}
	for i, h := range hours {
		storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: i%2 + 1, ActivityId: i%3 + 1, Hours: h, SpentOn: date(11 + i%3)})
	}

	result, err := service.Build(context.Background(), Filter{From: date(10), To: date(14), UserIds: []int{10}})

	require.NoError(t, err)
	groupSum := 0.0
	entryCount := 0
	for _, group := range result.Groups {
		groupSum += group.Hours
		entryCount += len(group.Entries)
	}
	assert.InDelta(t, result.TotalHours, groupSum, 1e-9)
	assert.Equal(t, len(hours), entryCount)
	assert.InDelta(t, 15.5, result.TotalHours, 1e-9)
}

func TestService_BuildIsIdempotent(t *testing.T) {
	service, repo := setupReportService(t)
	storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 1, ActivityId: 1, Hours: 2, SpentOn: date(11)})
	filter := Filter{From: date(10), To: date(14), UserIds: []int{10}}

	first, err := service.Build(context.Background(), filter)
	require.NoError(t, err)
	second, err := service.Build(context.Background(), filter)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_BuildEmptyWindow(t *testing.T) {
	service, repo := setupReportService(t)
	storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 1, ActivityId: 1, Hours: 2, SpentOn: date(20)})

	result, err := service.Build(context.Background(), Filter{From: date(10), To: date(14), UserIds: []int{10}})

	require.NoError(t, err)
	assert.Empty(t, result.Groups)
	assert.Zero(t, result.TotalHours)
	assert.Equal(t, date(10), result.From)
	assert.Equal(t, date(14), result.To)
}

func TestService_BuildRejectsBadRanges(t *testing.T) {
	service, _ := setupReportService(t)

	_, err := service.Build(context.Background(), Filter{To: date(14), UserIds: []int{10}})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = service.Build(context.Background(), Filter{From: date(14), To: date(10), UserIds: []int{10}})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_BuildCancelledContext(t *testing.T) {
	service, repo := setupReportService(t)
	storeEntry(t, repo, timeentry.TimeEntry{UserId: 10, ProjectId: 1, ActivityId: 1, Hours: 2, SpentOn: date(11)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Build(ctx, Filter{From: date(10), To: date(14), UserIds: []int{10}})

	assert.ErrorIs(t, err, context.Canceled)
}
