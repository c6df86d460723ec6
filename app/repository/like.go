package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-social/app/entity"
)

type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) Create(ctx context.Context, like *entity.Like) error {
	query := `
		INSERT INTO likes (post_id, user_id, created_at)
		VALUES (?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		like.PostID,
		like.UserID,
		like.CreatedAt,
	)
	if err != nil {
		return translateMySQLError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	like.ID = uint64(id)
	return nil
}

func (r *LikeRepository) ListByPost(ctx context.Context, postID uint64, limit, offset int) ([]*entity.Like, error) {
	query := `
		SELECT id, post_id, user_id, created_at
		FROM likes WHERE post_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []*entity.Like
	for rows.Next() {
		like := &entity.Like{}
		if err := rows.Scan(&like.ID, &like.PostID, &like.UserID, &like.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, rows.Err()
}

func (r *LikeRepository) Delete(ctx context.Context, postID, userID uint64) (int64, error) {
	query := `DELETE FROM likes WHERE post_id = ? AND user_id = ?`
	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
