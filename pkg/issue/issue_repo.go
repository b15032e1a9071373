package issue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrIssueNotFound = errors.New("issue does not exist")

type Repo interface {
	GetIssue(ctx context.Context, id int) (Issue, error)
	OpenIssuesOfProject(ctx context.Context, projectId int) ([]Issue, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) GetIssue(ctx context.Context, id int) (Issue, error) {
	query := `SELECT id, project_id, subject, open FROM issues WHERE id = $1`
	var i Issue
	var open int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&i.Id, &i.ProjectId, &i.Subject, &open)
	if errors.Is(err, sql.ErrNoRows) {
		return Issue{}, ErrIssueNotFound
	} else if err != nil {
		log.Errorf("failed to get issue %d: %v", id, err)
		return Issue{}, err
	}
	i.Open = open != 0
	return i, nil
}

func (r *RepoImpl) OpenIssuesOfProject(ctx context.Context, projectId int) ([]Issue, error) {
	query := `SELECT id, project_id, subject, open FROM issues WHERE project_id = $1 AND open <> 0 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, projectId)
	if err != nil {
		log.Errorf("failed to get issues of project %d: %v", projectId, err)
		return nil, err
	}
	defer rows.Close()

	issues := make([]Issue, 0, 10)
	for rows.Next() {
		var i Issue
		var open int
		if err := rows.Scan(&i.Id, &i.ProjectId, &i.Subject, &open); err != nil {
			return nil, err
		}
		i.Open = open != 0
		issues = append(issues, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return issues, nil
}
