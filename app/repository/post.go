package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/entity"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entity.Post) error {
	query := `
		INSERT INTO posts (user_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		post.UserID,
		post.Content,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return translateMySQLError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	post.ID = uint64(id)
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*entity.Post, error) {
	query := `
		SELECT id, user_id, content, created_at, updated_at
		FROM posts WHERE id = ?
	`
	post := &entity.Post{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]*entity.Post, error) {
	query := `
		SELECT id, user_id, content, created_at, updated_at
		FROM posts ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		post := &entity.Post{}
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Content,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, post *entity.Post) error {
	query := `UPDATE posts SET content = ?, updated_at = ? WHERE id = ?`
	post.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query, post.Content, post.UpdatedAt, post.ID)
	return err
}

func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM posts WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
