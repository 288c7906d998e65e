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

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, post_id, content, created_at)
		VALUES (:id, :user_id, :post_id, :content, :created_at)
	`

	if comment.CommentID == "" {
		comment.CommentID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return apperror.Persistence("create comment", err)
	}

	return nil
}

func (r *commentRepository) Update(ctx context.Context, commentID, userID, content string) (*models.Comment, error) {
	query := `
		UPDATE comments
		SET content = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
		RETURNING *
	`

	var comment models.Comment
	err := r.db.GetContext(ctx, &comment, query, content, commentID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Persistence("update comment", err)
	}

	return &comment, nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1 AND user_id = $2`, commentID, userID)
	if err != nil {
		return apperror.Persistence("delete comment", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Persistence("delete comment", err)
	}

	if rowsAffected == 0 {
		return apperror.ErrNotFound
	}

	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string, page models.Page) ([]models.Comment, error) {
	query := `
		SELECT c.*, u.username, u.full_name
		FROM comments c
		JOIN users u ON c.user_id = u.id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3
	`

	comments := []models.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID, page.Limit, page.Offset()); err != nil {
		return nil, apperror.Persistence("list comments", err)
	}

	return comments, nil
}
