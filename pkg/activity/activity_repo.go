package activity

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	GetAll(ctx context.Context) ([]Activity, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) GetAll(ctx context.Context) ([]Activity, error) {
	query := `SELECT id, name, position FROM activities ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Errorf("failed to get activities: %v", err)
		return nil, err
	}
	defer rows.Close()

	activities := make([]Activity, 0, 10)
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.Id, &a.Name, &a.Position); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over rows: %w", err)
	}
	return activities, nil
}
