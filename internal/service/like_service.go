package service

import (
	"context"

	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type LikeService interface {
	Like(ctx context.Context, userID, postID string) error
	Unlike(ctx context.Context, userID, postID string) error
	Toggle(ctx context.Context, userID, postID string) (bool, error)
	HasLiked(ctx context.Context, userID, postID string) (bool, error)
	Likers(ctx context.Context, postID, viewerID string) ([]models.UserSummary, error)
	LikedPosts(ctx context.Context, userID string, page models.Page) ([]models.Post, error)
}

type likeService struct {
	likeRepo repository.LikeRepository
	postRepo repository.PostRepository
}

func NewLikeService(likeRepo repository.LikeRepository, postRepo repository.PostRepository) LikeService {
	return &likeService{likeRepo: likeRepo, postRepo: postRepo}
}

func (s *likeService) Like(ctx context.Context, userID, postID string) error {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return err
	}
	return s.likeRepo.Like(ctx, userID, postID)
}

func (s *likeService) Unlike(ctx context.Context, userID, postID string) error {
	_, err := s.likeRepo.Unlike(ctx, userID, postID)
	return err
}

// Toggle flips the like and reports whether the post is now liked.
func (s *likeService) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	removed, err := s.likeRepo.Unlike(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if removed {
		return false, nil
	}

	if err := s.Like(ctx, userID, postID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *likeService) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	return s.likeRepo.HasLiked(ctx, userID, postID)
}

func (s *likeService) Likers(ctx context.Context, postID, viewerID string) ([]models.UserSummary, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.likeRepo.ListLikers(ctx, postID)
}

func (s *likeService) LikedPosts(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	return s.likeRepo.ListLikedPosts(ctx, userID, page)
}
