package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/entity"
	"github.com/vibast-solutions/ms-go-social/app/repository"
)

var (
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrSelfFollow       = errors.New("cannot follow yourself")
)

type followRepository interface {
	Create(ctx context.Context, follow *entity.Follow) error
	ListFollowers(ctx context.Context, followeeID uint64, limit, offset int) ([]*entity.Follow, error)
	ListFollowing(ctx context.Context, followerID uint64, limit, offset int) ([]*entity.Follow, error)
	Delete(ctx context.Context, followerID, followeeID uint64) (int64, error)
}

type userExistsChecker interface {
	Exists(ctx context.Context, id uint64) (bool, error)
}

type FollowService struct {
	followRepo followRepository
	users      userExistsChecker
}

func NewFollowService(followRepo followRepository, users userExistsChecker) *FollowService {
	return &FollowService{followRepo: followRepo, users: users}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	follow := &entity.Follow{
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEntry):
			return ErrAlreadyFollowing
		case errors.Is(err, repository.ErrForeignKey):
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint64) error {
	rows, err := s.followRepo.Delete(ctx, followerID, followeeID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint64, page int) ([]*entity.Follow, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowers(ctx, userID, followPageSize, pageOffset(page, followPageSize))
}

func (s *FollowService) ListFollowing(ctx context.Context, userID uint64, page int) ([]*entity.Follow, error) {
	if err := s.ensureUserExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowing(ctx, userID, followPageSize, pageOffset(page, followPageSize))
}

func (s *FollowService) ensureUserExists(ctx context.Context, userID uint64) error {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
