package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"socialnet/internal/models"
	"socialnet/internal/repository"
	"socialnet/internal/storage"
)

type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) ListByOwner(ctx context.Context, ownerID string, deleted bool, page models.Page) ([]models.Post, error) {
	args := m.Called(ctx, ownerID, deleted, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListVisibleByUser(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) ListFeed(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Search(ctx context.Context, query string, page models.Page) ([]models.Post, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, postID, ownerID string, patch repository.PostPatch, now time.Time) (*repository.UpdatedPost, error) {
	args := m.Called(ctx, postID, ownerID, patch, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UpdatedPost), args.Error(1)
}

func (m *MockPostRepository) SoftDelete(ctx context.Context, postID, ownerID string) error {
	args := m.Called(ctx, postID, ownerID)
	return args.Error(0)
}

func (m *MockPostRepository) Recover(ctx context.Context, postID, ownerID string, now time.Time) (*models.Post, error) {
	args := m.Called(ctx, postID, ownerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostRepository) DeletePermanently(ctx context.Context, postID, ownerID string) (*string, error) {
	args := m.Called(ctx, postID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*string), args.Error(1)
}

func (m *MockPostRepository) PublishDue(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) Store(ctx context.Context, localPath string) (*storage.MediaRef, error) {
	args := m.Called(ctx, localPath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.MediaRef), args.Error(1)
}

func (m *MockMediaStore) Discard(ctx context.Context, mediaURL string) bool {
	args := m.Called(ctx, mediaURL)
	return args.Bool(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) userResult(args mock.Arguments) (*models.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return m.userResult(m.Called(ctx, userID))
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.userResult(m.Called(ctx, username))
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.userResult(m.Called(ctx, email))
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	return m.userResult(m.Called(ctx, username, password))
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	return m.userResult(m.Called(ctx, refreshToken))
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) (*models.User, error) {
	return m.userResult(m.Called(ctx, userID, patch))
}

func (m *MockUserRepository) SearchByName(ctx context.Context, name string, page models.Page) ([]models.UserSummary, error) {
	args := m.Called(ctx, name, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Follow(ctx context.Context, followerID, followingID string) error {
	args := m.Called(ctx, followerID, followingID)
	return args.Error(0)
}

func (m *MockFollowRepository) Unfollow(ctx context.Context, followerID, followingID string) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowRepository) ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockFollowRepository) ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockFollowRepository) Counts(ctx context.Context, userID string) (*models.FollowCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FollowCounts), args.Error(1)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) RecordView(ctx context.Context, userID, postID string) (*models.View, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.View), args.Error(1)
}

func (m *MockStatsRepository) PostStats(ctx context.Context, postID string) (*models.PostStats, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostStats), args.Error(1)
}

func (m *MockStatsRepository) AccountStats(ctx context.Context, userID string) (*models.AccountStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccountStats), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, commentID, userID, content string) (*models.Comment, error) {
	args := m.Called(ctx, commentID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID string, page models.Page) ([]models.Comment, error) {
	args := m.Called(ctx, postID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Like(ctx context.Context, userID, postID string) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockLikeRepository) Unlike(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) ListLikers(ctx context.Context, postID string) ([]models.UserSummary, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockLikeRepository) ListLikedPosts(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}
