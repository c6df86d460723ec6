package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/entity"
	"github.com/vibast-solutions/ms-go-social/app/repository"
)

var ErrAlreadyLiked = errors.New("post already liked")

type likeRepository interface {
	Create(ctx context.Context, like *entity.Like) error
	ListByPost(ctx context.Context, postID uint64, limit, offset int) ([]*entity.Like, error)
	Delete(ctx context.Context, postID, userID uint64) (int64, error)
}

type LikeService struct {
	likeRepo likeRepository
	postRepo postRepository
}

func NewLikeService(likeRepo likeRepository, postRepo postRepository) *LikeService {
	return &LikeService{likeRepo: likeRepo, postRepo: postRepo}
}

func (s *LikeService) Like(ctx context.Context, userID, postID uint64) error {
	like := &entity.Like{
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEntry):
			return ErrAlreadyLiked
		case errors.Is(err, repository.ErrForeignKey):
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, postID uint64) error {
	rows, err := s.likeRepo.Delete(ctx, postID, userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *LikeService) ListByPost(ctx context.Context, postID uint64, page int) ([]*entity.Like, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	return s.likeRepo.ListByPost(ctx, postID, likePageSize, pageOffset(page, likePageSize))
}
