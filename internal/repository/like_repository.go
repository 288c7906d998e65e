package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Like is idempotent; liking twice leaves one row.
func (r *likeRepository) Like(ctx context.Context, userID, postID string) error {
	query := `INSERT INTO likes (user_id, post_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, postID); err != nil {
		return apperror.Persistence("like post", err)
	}

	return nil
}

// Unlike reports whether a like was removed.
func (r *likeRepository) Unlike(ctx context.Context, userID, postID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, apperror.Persistence("unlike post", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperror.Persistence("unlike post", err)
	}

	return rowsAffected > 0, nil
}

func (r *likeRepository) HasLiked(ctx context.Context, userID, postID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`

	var liked bool
	if err := r.db.GetContext(ctx, &liked, query, userID, postID); err != nil {
		return false, apperror.Persistence("check like", err)
	}

	return liked, nil
}

func (r *likeRepository) ListLikers(ctx context.Context, postID string) ([]models.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.full_name
		FROM likes l
		JOIN users u ON l.user_id = u.id
		WHERE l.post_id = $1
		ORDER BY l.created_at DESC
	`

	users := []models.UserSummary{}
	if err := r.db.SelectContext(ctx, &users, query, postID); err != nil {
		return nil, apperror.Persistence("list likers", err)
	}

	return users, nil
}

// ListLikedPosts returns the visible posts a user has liked.
func (r *likeRepository) ListLikedPosts(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	query := selectPostWithAuthor + `
		JOIN likes l ON l.post_id = p.id
		WHERE l.user_id = $1 AND ` + visiblePost + `
		ORDER BY l.created_at DESC
		LIMIT $2 OFFSET $3
	`

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, userID, page.Limit, page.Offset()); err != nil {
		return nil, apperror.Persistence("list liked posts", err)
	}

	return posts, nil
}
