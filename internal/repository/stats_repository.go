package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

// RecordView stores one view event; repeated views are counted separately.
func (r *statsRepository) RecordView(ctx context.Context, userID, postID string) (*models.View, error) {
	query := `
		INSERT INTO views (id, user_id, post_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING *
	`

	var view models.View
	if err := r.db.GetContext(ctx, &view, query, uuid.New().String(), userID, postID); err != nil {
		return nil, apperror.Persistence("record view", err)
	}

	return &view, nil
}

func (r *statsRepository) PostStats(ctx context.Context, postID string) (*models.PostStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM likes WHERE post_id = $1) AS total_likes,
			(SELECT COUNT(*) FROM views WHERE post_id = $1) AS total_views,
			(SELECT COUNT(*) FROM comments WHERE post_id = $1) AS total_comments
	`

	var stats models.PostStats
	if err := r.db.GetContext(ctx, &stats, query, postID); err != nil {
		return nil, apperror.Persistence("post stats", err)
	}

	return &stats, nil
}

// AccountStats aggregates over the user's live posts and follow edges.
func (r *statsRepository) AccountStats(ctx context.Context, userID string) (*models.AccountStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE user_id = $1 AND is_deleted = FALSE) AS total_posts,
			(SELECT COUNT(*) FROM comments c JOIN posts p ON p.id = c.post_id
				WHERE p.user_id = $1 AND p.is_deleted = FALSE) AS total_comments,
			(SELECT COUNT(*) FROM likes l JOIN posts p ON p.id = l.post_id
				WHERE p.user_id = $1 AND p.is_deleted = FALSE) AS total_likes,
			(SELECT COUNT(*) FROM views v JOIN posts p ON p.id = v.post_id
				WHERE p.user_id = $1 AND p.is_deleted = FALSE) AS total_views,
			(SELECT COUNT(*) FROM follows WHERE following_id = $1) AS total_followers,
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1) AS total_following
	`

	var stats models.AccountStats
	if err := r.db.GetContext(ctx, &stats, query, userID); err != nil {
		return nil, apperror.Persistence("account stats", err)
	}

	return &stats, nil
}
