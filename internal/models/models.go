package models

import (
	"time"
)

type User struct {
	UserID                 string     `json:"id" db:"id"`
	Username               string     `json:"username" db:"username"`
	Email                  string     `json:"email" db:"email"`
	PasswordHash           string     `json:"-" db:"password_hash"`
	FullName               string     `json:"fullName" db:"full_name"`
	RefreshToken           *string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime *time.Time `json:"-" db:"refresh_token_expiry_time"`
	IsDeleted              bool       `json:"-" db:"is_deleted"`
	CreatedAt              time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt              *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// UserSummary is the public projection of a user used in lists.
type UserSummary struct {
	UserID   string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	FullName string `json:"fullName" db:"full_name"`
}

type UserProfile struct {
	UserID         string    `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	FullName       string    `json:"fullName" db:"full_name"`
	Email          string    `json:"email" db:"email"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	FollowerCount  int       `json:"followerCount" db:"follower_count"`
	FollowingCount int       `json:"followingCount" db:"following_count"`
}

type Post struct {
	PostID          string     `json:"id" db:"id"`
	UserID          string     `json:"userId" db:"user_id"`
	Content         string     `json:"content" db:"content"`
	MediaURL        *string    `json:"mediaUrl" db:"media_url"`
	CommentsEnabled bool       `json:"commentsEnabled" db:"comments_enabled"`
	ScheduledAt     *time.Time `json:"scheduledAt" db:"scheduled_at"`
	IsPublished     bool       `json:"isPublished" db:"is_published"`
	IsDeleted       bool       `json:"isDeleted" db:"is_deleted"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       *time.Time `json:"updatedAt" db:"updated_at"`

	// Author fields are filled by listing queries that join users.
	Username string `json:"username,omitempty" db:"username"`
	FullName string `json:"fullName,omitempty" db:"full_name"`
}

type Comment struct {
	CommentID string     `json:"id" db:"id"`
	UserID    string     `json:"userId" db:"user_id"`
	PostID    string     `json:"postId" db:"post_id"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt" db:"updated_at"`

	Username string `json:"username,omitempty" db:"username"`
	FullName string `json:"fullName,omitempty" db:"full_name"`
}

type View struct {
	ViewID    string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	PostID    string    `json:"postId" db:"post_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type FollowCounts struct {
	FollowingCount int `json:"followingCount" db:"following_count"`
	FollowerCount  int `json:"followerCount" db:"follower_count"`
}

type PostStats struct {
	TotalLikes    int `json:"totalLikes" db:"total_likes"`
	TotalViews    int `json:"totalViews" db:"total_views"`
	TotalComments int `json:"totalComments" db:"total_comments"`
}

type AccountStats struct {
	TotalPosts     int `json:"totalPosts" db:"total_posts"`
	TotalComments  int `json:"totalComments" db:"total_comments"`
	TotalLikes     int `json:"totalLikes" db:"total_likes"`
	TotalViews     int `json:"totalViews" db:"total_views"`
	TotalFollowers int `json:"totalFollowers" db:"total_followers"`
	TotalFollowing int `json:"totalFollowing" db:"total_following"`
}

// Page is a limit/offset window over a listing.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}
