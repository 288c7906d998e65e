package service

import (
	"context"
	"strings"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type CommentService interface {
	Create(ctx context.Context, postID, userID, content string) (*models.Comment, error)
	Update(ctx context.Context, commentID, userID, content string) (*models.Comment, error)
	Delete(ctx context.Context, commentID, userID string) error
	ListByPost(ctx context.Context, postID, viewerID string, page models.Page) ([]models.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *commentService) Create(ctx context.Context, postID, userID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Validation("comment content is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !post.CommentsEnabled {
		return nil, apperror.Validation("comments are disabled for this post")
	}

	comment := &models.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

func (s *commentService) Update(ctx context.Context, commentID, userID, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperror.Validation("comment content is required")
	}
	return s.commentRepo.Update(ctx, commentID, userID, content)
}

func (s *commentService) Delete(ctx context.Context, commentID, userID string) error {
	return s.commentRepo.Delete(ctx, commentID, userID)
}

// ListByPost lists comments of a post the viewer can see.
func (s *commentService) ListByPost(ctx context.Context, postID, viewerID string, page models.Page) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, page)
}
