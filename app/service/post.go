package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/entity"
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("you do not own this resource")
)

const (
	postPageSize    = 20
	commentPageSize = 20
	likePageSize    = 10
	followPageSize  = 20
)

type postRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uint64) (*entity.Post, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uint64) error
}

type PostService struct {
	postRepo postRepository
}

func NewPostService(postRepo postRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) Create(ctx context.Context, userID uint64, content string) (*entity.Post, error) {
	now := time.Now()
	post := &entity.Post{
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id uint64) (*entity.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, page int) ([]*entity.Post, error) {
	return s.postRepo.List(ctx, postPageSize, pageOffset(page, postPageSize))
}

func (s *PostService) Update(ctx context.Context, callerID, id uint64, content string) (*entity.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.UserID != callerID {
		return nil, ErrForbidden
	}

	post.Content = content
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, callerID, id uint64) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if post.UserID != callerID {
		return ErrForbidden
	}

	return s.postRepo.Delete(ctx, id)
}

func pageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
