package service

import (
	"context"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-social/app/entity"
	"github.com/vibast-solutions/ms-go-social/app/repository"
)

type commentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id uint64) (*entity.Comment, error)
	ListByPost(ctx context.Context, postID uint64, limit, offset int) ([]*entity.Comment, error)
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uint64) error
}

type CommentService struct {
	commentRepo commentRepository
	postRepo    postRepository
}

func NewCommentService(commentRepo commentRepository, postRepo postRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *CommentService) Create(ctx context.Context, userID, postID uint64, content string) (*entity.Comment, error) {
	now := time.Now()
	comment := &entity.Comment{
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		// FK violation means the post disappeared between lookup and insert.
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint64, page int) ([]*entity.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	return s.commentRepo.ListByPost(ctx, postID, commentPageSize, pageOffset(page, commentPageSize))
}

func (s *CommentService) Update(ctx context.Context, callerID, id uint64, content string) (*entity.Comment, error) {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if comment.UserID != callerID {
		return nil, ErrForbidden
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, callerID, id uint64) error {
	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	if comment.UserID != callerID {
		return ErrForbidden
	}

	return s.commentRepo.Delete(ctx, id)
}
