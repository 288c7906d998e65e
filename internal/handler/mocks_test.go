package handlers

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/mock"

	"socialnet/internal/apperror"
	"socialnet/internal/auth"
	"socialnet/internal/models"
	"socialnet/internal/repository"
	"socialnet/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, "", "", args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) ParseToken(tokenString string) (*auth.Principal, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Principal), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) UpdatePost(ctx context.Context, req service.UpdatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePost(ctx context.Context, postID, ownerID string) error {
	return m.Called(ctx, postID, ownerID).Error(0)
}

func (m *MockPostService) RecoverPost(ctx context.Context, postID, ownerID string) (*models.Post, error) {
	args := m.Called(ctx, postID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) DeletePostPermanently(ctx context.Context, postID, ownerID string) error {
	return m.Called(ctx, postID, ownerID).Error(0)
}

func (m *MockPostService) SweepPublish(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type MockQueryService struct {
	mock.Mock
}

func (m *MockQueryService) posts(args mock.Arguments) ([]models.Post, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockQueryService) GetPost(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockQueryService) MyPosts(ctx context.Context, ownerID string, page models.Page) ([]models.Post, error) {
	return m.posts(m.Called(ctx, ownerID, page))
}

func (m *MockQueryService) MyDeletedPosts(ctx context.Context, ownerID string, page models.Page) ([]models.Post, error) {
	return m.posts(m.Called(ctx, ownerID, page))
}

func (m *MockQueryService) UserPosts(ctx context.Context, userID, viewerID string, page models.Page) ([]models.Post, error) {
	return m.posts(m.Called(ctx, userID, viewerID, page))
}

func (m *MockQueryService) Feed(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	return m.posts(m.Called(ctx, userID, page))
}

func (m *MockQueryService) Search(ctx context.Context, query string, page models.Page) ([]models.Post, error) {
	return m.posts(m.Called(ctx, query, page))
}

func (m *MockQueryService) PostStats(ctx context.Context, postID, viewerID string) (*models.PostStats, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PostStats), args.Error(1)
}

func (m *MockQueryService) RecordView(ctx context.Context, postID, viewerID string) (*models.View, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.View), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) users(args mock.Arguments) ([]models.UserSummary, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockUserService) Follow(ctx context.Context, followerID, followingID string) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}

func (m *MockUserService) Unfollow(ctx context.Context, followerID, followingID string) error {
	return m.Called(ctx, followerID, followingID).Error(0)
}

func (m *MockUserService) Following(ctx context.Context, userID string) ([]models.UserSummary, error) {
	return m.users(m.Called(ctx, userID))
}

func (m *MockUserService) Followers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	return m.users(m.Called(ctx, userID))
}

func (m *MockUserService) FollowCounts(ctx context.Context, userID string) (*models.FollowCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FollowCounts), args.Error(1)
}

func (m *MockUserService) Search(ctx context.Context, name string, page models.Page) ([]models.UserSummary, error) {
	return m.users(m.Called(ctx, name, page))
}

func (m *MockUserService) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, patch repository.ProfilePatch) (*models.User, error) {
	args := m.Called(ctx, userID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) AccountStats(ctx context.Context, userID string) (*models.AccountStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AccountStats), args.Error(1)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) Create(ctx context.Context, postID, userID, content string) (*models.Comment, error) {
	args := m.Called(ctx, postID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Update(ctx context.Context, commentID, userID, content string) (*models.Comment, error) {
	args := m.Called(ctx, commentID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, commentID, userID string) error {
	return m.Called(ctx, commentID, userID).Error(0)
}

func (m *MockCommentService) ListByPost(ctx context.Context, postID, viewerID string, page models.Page) ([]models.Comment, error) {
	args := m.Called(ctx, postID, viewerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

type MockLikeService struct {
	mock.Mock
}

func (m *MockLikeService) Like(ctx context.Context, userID, postID string) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *MockLikeService) Unlike(ctx context.Context, userID, postID string) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *MockLikeService) Toggle(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeService) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	args := m.Called(ctx, userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeService) Likers(ctx context.Context, postID, viewerID string) ([]models.UserSummary, error) {
	args := m.Called(ctx, postID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UserSummary), args.Error(1)
}

func (m *MockLikeService) LikedPosts(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	args := m.Called(ctx, userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

type fakeMedia struct {
	objects map[string]string
}

func (f *fakeMedia) Open(ctx context.Context, publicID string) (io.ReadCloser, minio.ObjectInfo, error) {
	body, ok := f.objects[publicID]
	if !ok {
		return nil, minio.ObjectInfo{}, apperror.ErrNotFound
	}
	return io.NopCloser(strings.NewReader(body)), minio.ObjectInfo{
		Key:         publicID,
		Size:        int64(len(body)),
		ContentType: "image/png",
	}, nil
}

type fakeHealth struct {
	err error
}

func (f fakeHealth) HealthCheck() error {
	return f.err
}
