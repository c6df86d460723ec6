package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-social/app/entity"
)

type FollowRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Create(ctx context.Context, follow *entity.Follow) error {
	query := `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES (?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		follow.FollowerID,
		follow.FolloweeID,
		follow.CreatedAt,
	)
	if err != nil {
		return translateMySQLError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	follow.ID = uint64(id)
	return nil
}

func (r *FollowRepository) ListFollowers(ctx context.Context, followeeID uint64, limit, offset int) ([]*entity.Follow, error) {
	query := `
		SELECT id, follower_id, followee_id, created_at
		FROM follows WHERE followee_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?
	`
	return r.list(ctx, query, followeeID, limit, offset)
}

func (r *FollowRepository) ListFollowing(ctx context.Context, followerID uint64, limit, offset int) ([]*entity.Follow, error) {
	query := `
		SELECT id, follower_id, followee_id, created_at
		FROM follows WHERE follower_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?
	`
	return r.list(ctx, query, followerID, limit, offset)
}

func (r *FollowRepository) list(ctx context.Context, query string, id uint64, limit, offset int) ([]*entity.Follow, error) {
	rows, err := r.db.QueryContext(ctx, query, id, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var follows []*entity.Follow
	for rows.Next() {
		follow := &entity.Follow{}
		if err := rows.Scan(&follow.ID, &follow.FollowerID, &follow.FolloweeID, &follow.CreatedAt); err != nil {
			return nil, err
		}
		follows = append(follows, follow)
	}
	return follows, rows.Err()
}

func (r *FollowRepository) Delete(ctx context.Context, followerID, followeeID uint64) (int64, error) {
	query := `DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`
	result, err := r.db.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
