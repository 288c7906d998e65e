package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"socialnet/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*models.User, error)
	SearchByName(ctx context.Context, name string, page models.Page) ([]models.UserSummary, error)
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID, viewerID string) (*models.Post, error)
	ListByOwner(ctx context.Context, ownerID string, deleted bool, page models.Page) ([]models.Post, error)
	ListVisibleByUser(ctx context.Context, userID string, page models.Page) ([]models.Post, error)
	ListFeed(ctx context.Context, userID string, page models.Page) ([]models.Post, error)
	Search(ctx context.Context, query string, page models.Page) ([]models.Post, error)
	Update(ctx context.Context, postID, ownerID string, patch PostPatch, now time.Time) (*UpdatedPost, error)
	SoftDelete(ctx context.Context, postID, ownerID string) error
	Recover(ctx context.Context, postID, ownerID string, now time.Time) (*models.Post, error)
	DeletePermanently(ctx context.Context, postID, ownerID string) (*string, error)
	PublishDue(ctx context.Context, now time.Time) ([]string, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, commentID, userID, content string) (*models.Comment, error)
	Delete(ctx context.Context, commentID, userID string) error
	ListByPost(ctx context.Context, postID string, page models.Page) ([]models.Comment, error)
}

type LikeRepository interface {
	Like(ctx context.Context, userID, postID string) error
	Unlike(ctx context.Context, userID, postID string) (bool, error)
	HasLiked(ctx context.Context, userID, postID string) (bool, error)
	ListLikers(ctx context.Context, postID string) ([]models.UserSummary, error)
	ListLikedPosts(ctx context.Context, userID string, page models.Page) ([]models.Post, error)
}

type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) (bool, error)
	ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error)
	ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error)
	Counts(ctx context.Context, userID string) (*models.FollowCounts, error)
}

type StatsRepository interface {
	RecordView(ctx context.Context, userID, postID string) (*models.View, error)
	PostStats(ctx context.Context, postID string) (*models.PostStats, error)
	AccountStats(ctx context.Context, userID string) (*models.AccountStats, error)
}

// Repository bundles every store over one connection pool.
type Repository struct {
	Users    UserRepository
	Posts    PostRepository
	Comments CommentRepository
	Likes    LikeRepository
	Follows  FollowRepository
	Stats    StatsRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Posts:    NewPostRepository(db),
		Comments: NewCommentRepository(db),
		Likes:    NewLikeRepository(db),
		Follows:  NewFollowRepository(db),
		Stats:    NewStatsRepository(db),
	}
}
