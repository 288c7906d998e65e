package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, followerID, followingID string) error {
	query := `INSERT INTO follows (follower_id, following_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, followerID, followingID); err != nil {
		return apperror.Persistence("follow user", err)
	}

	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, followerID, followingID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	if err != nil {
		return false, apperror.Persistence("unfollow user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperror.Persistence("unfollow user", err)
	}

	return rowsAffected > 0, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.full_name
		FROM follows f
		JOIN users u ON f.following_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`

	return r.listUsers(ctx, "list following", query, userID)
}

func (r *followRepository) ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.full_name
		FROM follows f
		JOIN users u ON f.follower_id = u.id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`

	return r.listUsers(ctx, "list followers", query, userID)
}

func (r *followRepository) listUsers(ctx context.Context, op, query, userID string) ([]models.UserSummary, error) {
	users := []models.UserSummary{}
	if err := r.db.SelectContext(ctx, &users, query, userID); err != nil {
		return nil, apperror.Persistence(op, err)
	}
	return users, nil
}

func (r *followRepository) Counts(ctx context.Context, userID string) (*models.FollowCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1) AS following_count,
			(SELECT COUNT(*) FROM follows WHERE following_id = $1) AS follower_count
	`

	var counts models.FollowCounts
	if err := r.db.GetContext(ctx, &counts, query, userID); err != nil {
		return nil, apperror.Persistence("count follows", err)
	}

	return &counts, nil
}
