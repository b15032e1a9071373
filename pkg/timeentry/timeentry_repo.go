package timeentry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Store(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	FindById(ctx context.Context, id int) (TimeEntry, error)
	Update(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	Delete(ctx context.Context, id int) error
	// FindForReport returns all entries with spent_on in [from, to] logged by
	// one of userIds, optionally restricted to projectIds.
	FindForReport(ctx context.Context, from, to time.Time, userIds []int, projectIds []int) ([]TimeEntry, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Store(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	query := `INSERT INTO time_entries (user_id, project_id, issue_id, activity_id, hours, spent_on, comments)
			  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var issueId any
	if entry.IssueId > 0 {
		issueId = entry.IssueId
	}
	err := r.db.QueryRowContext(ctx, query,
		entry.UserId,
		entry.ProjectId,
		issueId,
		entry.ActivityId,
		entry.Hours,
		entry.SpentOn.Format(DateFormat),
		entry.Comments,
	).Scan(&entry.Id)
	if err != nil {
		err := fmt.Errorf("could not store time entry: %w", err)
		log.Error(err)
		return TimeEntry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) FindById(ctx context.Context, id int) (TimeEntry, error) {
	query := `SELECT id, user_id, project_id, issue_id, activity_id, hours, spent_on, comments
			  FROM time_entries WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	entry, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return TimeEntry{}, ErrEntryNotFound
	} else if err != nil {
		err := fmt.Errorf("could not find time entry %d: %w", id, err)
		log.Error(err)
		return TimeEntry{}, err
	}
	return entry, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, entry TimeEntry) (TimeEntry, error) {
	query := `UPDATE time_entries SET activity_id = $1, hours = $2, spent_on = $3, comments = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		entry.ActivityId,
		entry.Hours,
		entry.SpentOn.Format(DateFormat),
		entry.Comments,
		entry.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update time entry %d: %w", entry.Id, err)
		log.Error(err)
		return TimeEntry{}, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return TimeEntry{}, err
	}
	if rowsAffected == 0 {
		return TimeEntry{}, ErrEntryNotFound
	}
	return entry, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM time_entries WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete time entry %d: %w", id, err)
		log.Error(err)
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (r *RepositoryImpl) FindForReport(ctx context.Context, from, to time.Time, userIds []int, projectIds []int) ([]TimeEntry, error) {
	if len(userIds) == 0 {
		return []TimeEntry{}, nil
	}

	query := strings.Builder{}
	query.WriteString(`SELECT id, user_id, project_id, issue_id, activity_id, hours, spent_on, comments
		FROM time_entries WHERE spent_on >= $1 AND spent_on <= $2`)
	args := []any{from.Format(DateFormat), to.Format(DateFormat)}

	query.WriteString(" AND user_id IN (")
	for i, id := range userIds {
		if i > 0 {
			query.WriteString(", ")
		}
		args = append(args, id)
		fmt.Fprintf(&query, "$%d", len(args))
	}
	query.WriteString(")")

	if len(projectIds) > 0 {
		query.WriteString(" AND project_id IN (")
		for i, id := range projectIds {
			if i > 0 {
				query.WriteString(", ")
			}
			args = append(args, id)
			fmt.Fprintf(&query, "$%d", len(args))
		}
		query.WriteString(")")
	}
	query.WriteString(" ORDER BY spent_on, project_id, issue_id, activity_id, id")

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		err := fmt.Errorf("could not query time entries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	entries := make([]TimeEntry, 0, 50)
	for rows.Next() {
		entry, err := scanEntry(rows.Scan)
		if err != nil {
			log.Errorf("failed to scan time entry: %v", err)
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return entries, nil
}

func scanEntry(scan func(dest ...any) error) (TimeEntry, error) {
	var entry TimeEntry
	var issueId sql.NullInt64
	var spentOn string
	err := scan(
		&entry.Id,
		&entry.UserId,
		&entry.ProjectId,
		&issueId,
		&entry.ActivityId,
		&entry.Hours,
		&spentOn,
		&entry.Comments,
	)
	if err != nil {
		return TimeEntry{}, err
	}
	if issueId.Valid {
		entry.IssueId = int(issueId.Int64)
	}
	parsed, err := time.Parse(DateFormat, spentOn)
	if err != nil {
		return TimeEntry{}, fmt.Errorf("could not parse spent_on %q: %w", spentOn, err)
	}
	entry.SpentOn = parsed
	return entry, nil
}
