package service

import (
	"context"
	"strings"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
	"socialnet/internal/repository"
)

// QueryService serves read-only post projections filtered by visibility.
type QueryService interface {
	GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error)
	MyPosts(ctx context.Context, ownerID string, page models.Page) ([]models.Post, error)
	MyDeletedPosts(ctx context.Context, ownerID string, page models.Page) ([]models.Post, error)
	UserPosts(ctx context.Context, userID, viewerID string, page models.Page) ([]models.Post, error)
	Feed(ctx context.Context, userID string, page models.Page) ([]models.Post, error)
	Search(ctx context.Context, query string, page models.Page) ([]models.Post, error)
	PostStats(ctx context.Context, postID, viewerID string) (*models.PostStats, error)
	RecordView(ctx context.Context, postID, viewerID string) (*models.View, error)
}

type queryService struct {
	postRepo  repository.PostRepository
	statsRepo repository.StatsRepository
}

func NewQueryService(postRepo repository.PostRepository, statsRepo repository.StatsRepository) QueryService {
	return &queryService{postRepo: postRepo, statsRepo: statsRepo}
}

func (s *queryService) GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, viewerID)
}

func (s *queryService) MyPosts(ctx context.Context, ownerID string, page models.Page) ([]models.Post, error) {
	return s.postRepo.ListByOwner(ctx, ownerID, false, page)
}

func (s *queryService) MyDeletedPosts(ctx context.Context, ownerID string, page models.Page) ([]models.Post, error) {
	return s.postRepo.ListByOwner(ctx, ownerID, true, page)
}

// UserPosts lists userID's posts. The owner sees unpublished ones too.
func (s *queryService) UserPosts(ctx context.Context, userID, viewerID string, page models.Page) ([]models.Post, error) {
	if viewerID != "" && viewerID == userID {
		return s.postRepo.ListByOwner(ctx, userID, false, page)
	}
	return s.postRepo.ListVisibleByUser(ctx, userID, page)
}

func (s *queryService) Feed(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	return s.postRepo.ListFeed(ctx, userID, page)
}

func (s *queryService) Search(ctx context.Context, query string, page models.Page) ([]models.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.Validation("search query is required")
	}
	return s.postRepo.Search(ctx, query, page)
}

func (s *queryService) PostStats(ctx context.Context, postID, viewerID string) (*models.PostStats, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.statsRepo.PostStats(ctx, postID)
}

func (s *queryService) RecordView(ctx context.Context, postID, viewerID string) (*models.View, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, viewerID); err != nil {
		return nil, err
	}
	return s.statsRepo.RecordView(ctx, viewerID, postID)
}
