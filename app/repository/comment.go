package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/entity"
)

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (post_id, user_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		comment.PostID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return translateMySQLError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	comment.ID = uint64(id)
	return nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id uint64) (*entity.Comment, error) {
	query := `
		SELECT id, post_id, user_id, content, created_at, updated_at
		FROM comments WHERE id = ?
	`
	comment := &entity.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64, limit, offset int) ([]*entity.Comment, error) {
	query := `
		SELECT id, post_id, user_id, content, created_at, updated_at
		FROM comments WHERE post_id = ? ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		comment := &entity.Comment{}
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.UserID,
			&comment.Content,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, comment *entity.Comment) error {
	query := `UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`
	comment.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, comment.Content, comment.UpdatedAt, comment.ID)
	return err
}

func (r *CommentRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM comments WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
