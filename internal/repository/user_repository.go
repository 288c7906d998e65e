package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
)

type userRepository struct {
	db *sqlx.DB
}

// ProfilePatch carries a partial profile update; nil fields are kept.
type ProfilePatch struct {
	FullName *string
	Email    *string
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.UserID = uuid.New().String()
	user.PasswordHash = string(hashedPassword)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, full_name, created_at)
		VALUES (:id, :username, :email, :password_hash, :full_name, :created_at)
	`

	_, err = r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return apperror.Persistence("create user", err)
	}

	return nil
}

func (r *userRepository) getUser(ctx context.Context, op, query string, arg any) (*models.User, error) {
	var user models.User

	err := r.db.GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Persistence(op, err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	return r.getUser(ctx, "get user", `SELECT * FROM users WHERE id = $1 AND is_deleted = FALSE`, userID)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, "get user by username", `SELECT * FROM users WHERE username = $1`, username)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, "get user by email", `SELECT * FROM users WHERE email = $1`, email)
}

func (r *userRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	if user.IsDeleted {
		return nil, apperror.ErrUnauthorized
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, apperror.ErrUnauthorized
	}

	return user, nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	query := `
		UPDATE users
		SET refresh_token = $1, refresh_token_expiry_time = $2
		WHERE id = $3
	`

	_, err := r.db.ExecContext(ctx, query, refreshToken, expiryTime, userID)
	if err != nil {
		return apperror.Persistence("update refresh token", err)
	}

	return nil
}

func (r *userRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token = NULL, refresh_token_expiry_time = NULL WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return apperror.Persistence("clear refresh token", err)
	}

	return nil
}

func (r *userRepository) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	query := `
		SELECT * FROM users
		WHERE refresh_token = $1
		AND refresh_token_expiry_time > CURRENT_TIMESTAMP
		AND is_deleted = FALSE
	`

	user, err := r.getUser(ctx, "get user by refresh token", query, refreshToken)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.ErrUnauthorized
	}
	return user, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*models.User, error) {
	query := `
		UPDATE users
		SET full_name = COALESCE($1, full_name),
			email = COALESCE($2, email),
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND is_deleted = FALSE
		RETURNING *
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, patch.FullName, patch.Email, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Persistence("update profile", err)
	}

	return &user, nil
}

func (r *userRepository) SearchByName(ctx context.Context, name string, page models.Page) ([]models.UserSummary, error) {
	query := `
		SELECT id, username, full_name
		FROM users
		WHERE full_name ILIKE '%' || $1 || '%'
		AND is_deleted = FALSE
		ORDER BY full_name ASC
		LIMIT $2 OFFSET $3
	`

	users := []models.UserSummary{}
	if err := r.db.SelectContext(ctx, &users, query, name, page.Limit, page.Offset()); err != nil {
		return nil, apperror.Persistence("search users", err)
	}

	return users, nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.email, u.created_at,
			(SELECT COUNT(*) FROM follows WHERE following_id = u.id) AS follower_count,
			(SELECT COUNT(*) FROM follows WHERE follower_id = u.id) AS following_count
		FROM users u
		WHERE u.id = $1 AND u.is_deleted = FALSE
	`

	var profile models.UserProfile
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, apperror.Persistence("get profile", err)
	}

	return &profile, nil
}
