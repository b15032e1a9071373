package permission

import (
	"context"
	"database/sql"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	HasCapability(ctx context.Context, userId int, capability string) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) HasCapability(ctx context.Context, userId int, capability string) (bool, error) {
	query := `SELECT COUNT(*) FROM capabilities WHERE user_id = $1 AND name = $2`
	var count int
	if err := r.db.QueryRowContext(ctx, query, userId, capability).Scan(&count); err != nil {
		log.Errorf("failed to check capability %s for user %d: %v", capability, userId, err)
		return false, err
	}
	return count > 0, nil
}
