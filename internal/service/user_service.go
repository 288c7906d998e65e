package service

import (
	"context"
	"strings"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type UserService interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	Following(ctx context.Context, userID string) ([]models.UserSummary, error)
	Followers(ctx context.Context, userID string) ([]models.UserSummary, error)
	FollowCounts(ctx context.Context, userID string) (*models.FollowCounts, error)
	Search(ctx context.Context, name string, page models.Page) ([]models.UserSummary, error)
	Profile(ctx context.Context, userID string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) (*models.User, error)
	AccountStats(ctx context.Context, userID string) (*models.AccountStats, error)
}

type userService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	statsRepo  repository.StatsRepository
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, statsRepo repository.StatsRepository) UserService {
	return &userService{
		userRepo:   userRepo,
		followRepo: followRepo,
		statsRepo:  statsRepo,
	}
}

// Follow is a no-op when the edge already exists.
func (s *userService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return apperror.Validation("cannot follow yourself")
	}

	if _, err := s.userRepo.GetUserByID(ctx, followingID); err != nil {
		return err
	}

	return s.followRepo.Follow(ctx, followerID, followingID)
}

func (s *userService) Unfollow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return apperror.Validation("cannot unfollow yourself")
	}

	_, err := s.followRepo.Unfollow(ctx, followerID, followingID)
	return err
}

func (s *userService) Following(ctx context.Context, userID string) ([]models.UserSummary, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}

func (s *userService) Followers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}

func (s *userService) FollowCounts(ctx context.Context, userID string) (*models.FollowCounts, error) {
	return s.followRepo.Counts(ctx, userID)
}

func (s *userService) Search(ctx context.Context, name string, page models.Page) ([]models.UserSummary, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperror.Validation("search name is required")
	}
	return s.userRepo.SearchByName(ctx, name, page)
}

func (s *userService) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.userRepo.GetProfile(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) (*models.User, error) {
	if patch.FullName == nil && patch.Email == nil {
		return nil, apperror.Validation("nothing to update")
	}

	if patch.Email != nil {
		existing, err := s.userRepo.GetUserByEmail(ctx, *patch.Email)
		switch {
		case err == nil && existing.UserID != userID:
			return nil, apperror.Conflict("email %s is already taken", *patch.Email)
		case err != nil && !isNotFound(err):
			return nil, err
		}
	}

	return s.userRepo.UpdateProfile(ctx, userID, patch)
}

func (s *userService) AccountStats(ctx context.Context, userID string) (*models.AccountStats, error) {
	return s.statsRepo.AccountStats(ctx, userID)
}
