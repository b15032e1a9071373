package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrProjectNotFound = errors.New("project does not exist")

type Repo interface {
	GetProject(ctx context.Context, id int) (Project, error)
	ProjectsOfUser(ctx context.Context, userId int) ([]Project, error)
	MemberIds(ctx context.Context, projectId int) ([]int, error)
	IsMember(ctx context.Context, projectId int, userId int) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) GetProject(ctx context.Context, id int) (Project, error) {
	query := `SELECT id, name, identifier, log_time_enabled FROM projects WHERE id = $1`
	var p Project
	var logTimeEnabled int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.Id, &p.Name, &p.Identifier, &logTimeEnabled)
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	} else if err != nil {
		log.Errorf("failed to get project %d: %v", id, err)
		return Project{}, err
	}
	p.LogTimeEnabled = logTimeEnabled != 0
	return p, nil
}

func (r *RepoImpl) ProjectsOfUser(ctx context.Context, userId int) ([]Project, error) {
	query := `
		SELECT p.id, p.name, p.identifier, p.log_time_enabled
		FROM projects p
		JOIN project_members pm ON pm.project_id = p.id
		WHERE pm.user_id = $1
		ORDER BY p.name`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		log.Errorf("failed to get projects of user %d: %v", userId, err)
		return nil, err
	}
	defer rows.Close()

	projects := make([]Project, 0, 10)
	for rows.Next() {
		var p Project
		var logTimeEnabled int
		if err := rows.Scan(&p.Id, &p.Name, &p.Identifier, &logTimeEnabled); err != nil {
			log.Errorf("failed to scan project: %v", err)
			return nil, err
		}
		p.LogTimeEnabled = logTimeEnabled != 0
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return projects, nil
}

func (r *RepoImpl) MemberIds(ctx context.Context, projectId int) ([]int, error) {
	query := `SELECT user_id FROM project_members WHERE project_id = $1`
	rows, err := r.db.QueryContext(ctx, query, projectId)
	if err != nil {
		log.Errorf("failed to get members of project %d: %v", projectId, err)
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0, 10)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return ids, nil
}

func (r *RepoImpl) IsMember(ctx context.Context, projectId int, userId int) (bool, error) {
	query := `SELECT COUNT(*) FROM project_members WHERE project_id = $1 AND user_id = $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, projectId, userId).Scan(&count); err != nil {
		log.Errorf("failed to check membership: %v", err)
		return false, err
	}
	return count > 0, nil
}
