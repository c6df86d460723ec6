package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/entity"
	"github.com/vibast-solutions/ms-go-social/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	insertPostQuery   = `(?s)INSERT INTO posts \(user_id, content, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?\)`
	findPostByIDQuery = `(?s)SELECT id, user_id, content, created_at, updated_at\s+FROM posts WHERE id = \?`
	listPostsQuery    = `(?s)SELECT id, user_id, content, created_at, updated_at\s+FROM posts ORDER BY created_at DESC, id DESC LIMIT \? OFFSET \?`
	updatePostQuery   = `UPDATE posts SET content = \?, updated_at = \? WHERE id = \?`
	deletePostQuery   = `DELETE FROM posts WHERE id = \?`
)

var postColumns = []string{"id", "user_id", "content", "created_at", "updated_at"}

func TestPostRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewPostRepository(db)
	now := time.Now()
	post := &entity.Post{
		UserID:    1,
		Content:   "hello world",
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(insertPostQuery).
		WithArgs(post.UserID, post.Content, post.CreatedAt, post.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(7, 1))

	if err := repo.Create(context.Background(), post); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if post.ID != 7 {
		t.Fatalf("expected ID 7, got %d", post.ID)
	}
}

func TestPostRepository_FindByID_NoRows(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewPostRepository(db)

	mock.ExpectQuery(findPostByIDQuery).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(postColumns))

	post, err := repo.FindByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if post != nil {
		t.Fatalf("expected nil post, got %+v", post)
	}
}

func TestPostRepository_List(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery(listPostsQuery).
		WithArgs(20, 20).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(uint64(2), uint64(1), "second", now, now).
			AddRow(uint64(1), uint64(1), "first", now, now))

	posts, err := repo.List(context.Background(), 20, 20)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 2 || posts[0].ID != 2 || posts[1].Content != "first" {
		t.Fatalf("unexpected posts: %+v", posts)
	}
}

func TestPostRepository_Update(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewPostRepository(db)
	post := &entity.Post{ID: 5, UserID: 1, Content: "edited"}

	mock.ExpectExec(updatePostQuery).
		WithArgs(post.Content, sqlmock.AnyArg(), post.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), post); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if post.UpdatedAt.IsZero() {
		t.Fatalf("expected updated_at to be set")
	}
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewPostRepository(db)

	mock.ExpectExec(deletePostQuery).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}
