package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/repository"
	"github.com/vibast-solutions/ms-go-social/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

const (
	insertFollowQuery  = `(?s)INSERT INTO follows \(follower_id, followee_id, created_at\)\s+VALUES \(\?, \?, \?\)`
	listFollowersQuery = `(?s)SELECT id, follower_id, followee_id, created_at\s+FROM follows WHERE followee_id = \? ORDER BY created_at DESC, id DESC LIMIT \? OFFSET \?`
	deleteFollowQuery  = `DELETE FROM follows WHERE follower_id = \? AND followee_id = \?`
)

var followColumns = []string{"id", "follower_id", "followee_id", "created_at"}

func newFollowServiceWithMock(t *testing.T) (*service.FollowService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	svc := service.NewFollowService(repository.NewFollowRepository(db), repository.NewUserRepository(db))
	return svc, mock, func() { _ = db.Close() }
}

func TestFollowService_Follow(t *testing.T) {
	svc, mock, cleanup := newFollowServiceWithMock(t)
	defer cleanup()

	mock.ExpectExec(insertFollowQuery).
		WithArgs(uint64(1), uint64(2), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := svc.Follow(context.Background(), 1, 2); err != nil {
		t.Fatalf("follow failed: %v", err)
	}
}

func TestFollowService_Follow_Self(t *testing.T) {
	svc, _, cleanup := newFollowServiceWithMock(t)
	defer cleanup()

	if err := svc.Follow(context.Background(), 1, 1); !errors.Is(err, service.ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestFollowService_Follow_Duplicate(t *testing.T) {
	svc, mock, cleanup := newFollowServiceWithMock(t)
	defer cleanup()

	mock.ExpectExec(insertFollowQuery).
		WillReturnError(&mysql.MySQLError{
			Number:  1062,
			Message: "Duplicate entry '1-2' for key 'follows.uq_follows_pair'",
		})

	if err := svc.Follow(context.Background(), 1, 2); !errors.Is(err, service.ErrAlreadyFollowing) {
		t.Fatalf("expected ErrAlreadyFollowing, got %v", err)
	}
}

func TestFollowService_Follow_FolloweeGone(t *testing.T) {
	svc, mock, cleanup := newFollowServiceWithMock(t)
	defer cleanup()

	mock.ExpectExec(insertFollowQuery).
		WillReturnError(&mysql.MySQLError{
			Number:  1452,
			Message: "Cannot add or update a child row: a foreign key constraint fails",
		})

	if err := svc.Follow(context.Background(), 1, 99); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFollowService_Unfollow_NotFollowing(t *testing.T) {
	svc, mock, cleanup := newFollowServiceWithMock(t)
	defer cleanup()

	mock.ExpectExec(deleteFollowQuery).
		WithArgs(uint64(1), uint64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.Unfollow(context.Background(), 1, 2); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFollowService_ListFollowers(t *testing.T) {
	svc, mock, cleanup := newFollowServiceWithMock(t)
	defer cleanup()

	expectCount(mock, userExistsQuery, uint64(2), 1)
	mock.ExpectQuery(listFollowersQuery).
		WithArgs(uint64(2), 20, 0).
		WillReturnRows(sqlmock.NewRows(followColumns).
			AddRow(uint64(1), uint64(5), uint64(2), time.Now()))

	follows, err := svc.ListFollowers(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(follows) != 1 || follows[0].FollowerID != 5 {
		t.Fatalf("unexpected follows: %+v", follows)
	}
}

func TestFollowService_ListFollowers_UnknownUser(t *testing.T) {
	svc, mock, cleanup := newFollowServiceWithMock(t)
	defer cleanup()

	expectCount(mock, userExistsQuery, uint64(99), 0)

	if _, err := svc.ListFollowers(context.Background(), 99, 1); !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
