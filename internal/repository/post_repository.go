package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
)

// visiblePost is the predicate every non-owner read path applies.
const visiblePost = `p.is_published = TRUE AND p.is_deleted = FALSE AND (p.scheduled_at IS NULL OR p.scheduled_at <= NOW())`

const selectPostWithAuthor = `SELECT p.*, u.username, u.full_name FROM posts p JOIN users u ON u.id = p.user_id`

type PostRepositoryImpl struct {
	db *sqlx.DB
}

// PostPatch carries a partial update; nil fields keep their stored value.
type PostPatch struct {
	Content         *string
	MediaURL        *string
	CommentsEnabled *bool
	ScheduledAt     *time.Time
}

// UpdatedPost is the row after an update together with the media reference
// it held before.
type UpdatedPost struct {
	models.Post
	PreviousMediaURL *string `db:"previous_media_url"`
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(id, user_id, content, media_url, comments_enabled, scheduled_at, is_published, is_deleted, created_at)
		VALUES
		(:id, :user_id, :content, :media_url, :comments_enabled, :scheduled_at, :is_published, :is_deleted, :created_at)
	`

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return apperror.Persistence("create post", err)
	}

	return nil
}

// GetByID returns a live post. The owner also sees it while unpublished.
func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID, viewerID string) (*models.Post, error) {
	query := selectPostWithAuthor + `
		WHERE p.id = $1 AND p.is_deleted = FALSE
		AND (p.user_id::text = $2 OR (p.is_published = TRUE AND (p.scheduled_at IS NULL OR p.scheduled_at <= NOW())))
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID, viewerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Persistence("get post", err)
	}

	return &post, nil
}

// ListByOwner returns the owner's posts split on the deleted flag, ignoring
// publish state.
func (r *PostRepositoryImpl) ListByOwner(ctx context.Context, ownerID string, deleted bool, page models.Page) ([]models.Post, error) {
	query := selectPostWithAuthor + `
		WHERE p.user_id = $1 AND p.is_deleted = $2
		ORDER BY p.created_at DESC
		LIMIT $3 OFFSET $4
	`

	return r.list(ctx, "list own posts", query, ownerID, deleted, page.Limit, page.Offset())
}

func (r *PostRepositoryImpl) ListVisibleByUser(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	query := selectPostWithAuthor + `
		WHERE p.user_id = $1 AND ` + visiblePost + `
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, "list user posts", query, userID, page.Limit, page.Offset())
}

func (r *PostRepositoryImpl) ListFeed(ctx context.Context, userID string, page models.Page) ([]models.Post, error) {
	query := selectPostWithAuthor + `
		JOIN follows f ON f.following_id = p.user_id
		WHERE f.follower_id = $1 AND ` + visiblePost + `
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, "list feed", query, userID, page.Limit, page.Offset())
}

func (r *PostRepositoryImpl) Search(ctx context.Context, search string, page models.Page) ([]models.Post, error) {
	query := selectPostWithAuthor + `
		WHERE p.content ILIKE '%' || $1 || '%' AND ` + visiblePost + `
		ORDER BY p.created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, "search posts", query, search, page.Limit, page.Offset())
}

func (r *PostRepositoryImpl) list(ctx context.Context, op, query string, args ...any) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, apperror.Persistence(op, err)
	}
	return posts, nil
}

// Update applies patch to a live post owned by ownerID and re-derives
// is_published from the resulting schedule. The previous media reference is
// read under the same row lock.
func (r *PostRepositoryImpl) Update(ctx context.Context, postID, ownerID string, patch PostPatch, now time.Time) (*UpdatedPost, error) {
	query := `
		UPDATE posts AS p SET
			content = COALESCE($1, p.content),
			media_url = COALESCE($2, p.media_url),
			comments_enabled = COALESCE($3, p.comments_enabled),
			scheduled_at = COALESCE($4, p.scheduled_at),
			is_published = (COALESCE($4, p.scheduled_at) IS NULL OR COALESCE($4, p.scheduled_at) <= $5),
			updated_at = $5
		FROM (
			SELECT id, media_url FROM posts
			WHERE id = $6 AND user_id = $7 AND is_deleted = FALSE
			FOR UPDATE
		) AS prev
		WHERE p.id = prev.id
		RETURNING p.*, prev.media_url AS previous_media_url
	`

	var updated UpdatedPost
	err := r.db.GetContext(ctx, &updated, query,
		patch.Content, patch.MediaURL, patch.CommentsEnabled, patch.ScheduledAt, now, postID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Persistence("update post", err)
	}

	return &updated, nil
}

func (r *PostRepositoryImpl) SoftDelete(ctx context.Context, postID, ownerID string) error {
	query := `
		UPDATE posts SET is_deleted = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND is_deleted = FALSE
	`

	result, err := r.db.ExecContext(ctx, query, postID, ownerID)
	if err != nil {
		return apperror.Persistence("soft delete post", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Persistence("soft delete post", err)
	}

	if rowsAffected == 0 {
		return apperror.ErrNotFound
	}

	return nil
}

// Recover clears the deleted flag and re-evaluates the schedule against now.
func (r *PostRepositoryImpl) Recover(ctx context.Context, postID, ownerID string, now time.Time) (*models.Post, error) {
	query := `
		UPDATE posts SET
			is_deleted = FALSE,
			is_published = (scheduled_at IS NULL OR scheduled_at <= $3),
			updated_at = $3
		WHERE id = $1 AND user_id = $2 AND is_deleted = TRUE
		RETURNING *
	`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID, ownerID, now)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Persistence("recover post", err)
	}

	return &post, nil
}

// DeletePermanently removes the row and returns the media reference it held.
func (r *PostRepositoryImpl) DeletePermanently(ctx context.Context, postID, ownerID string) (*string, error) {
	query := `DELETE FROM posts WHERE id = $1 AND user_id = $2 RETURNING media_url`

	var mediaURL sql.NullString
	err := r.db.GetContext(ctx, &mediaURL, query, postID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Persistence("delete post", err)
	}

	if !mediaURL.Valid {
		return nil, nil
	}
	return &mediaURL.String, nil
}

// PublishDue promotes every unpublished post whose schedule is at or before now.
func (r *PostRepositoryImpl) PublishDue(ctx context.Context, now time.Time) ([]string, error) {
	query := `
		UPDATE posts SET is_published = TRUE
		WHERE is_published = FALSE AND scheduled_at IS NOT NULL AND scheduled_at <= $1
		RETURNING id
	`

	ids := []string{}
	if err := r.db.SelectContext(ctx, &ids, query, now); err != nil {
		return nil, apperror.Persistence("publish due posts", err)
	}

	return ids, nil
}
