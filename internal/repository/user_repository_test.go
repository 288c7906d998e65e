package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"socialnet/internal/apperror"
	"socialnet/internal/models"
)

var userColumns = []string{
	"id", "username", "email", "password_hash", "full_name",
	"refresh_token", "refresh_token_expiry_time", "is_deleted", "created_at", "updated_at",
}

func TestUserRepository_CreateUser(t *testing.T) {
	t.Run("hashes password and inserts", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		user := &models.User{Username: "alice", Email: "alice@example.com", FullName: "Alice A"}

		mock.ExpectExec(q("INSERT INTO users (id, username, email, password_hash, full_name, created_at)")).
			WithArgs(sqlmock.AnyArg(), "alice", "alice@example.com", sqlmock.AnyArg(), "Alice A", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(context.Background(), user, "password123")

		require.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NotEqual(t, "password123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate key", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(q("INSERT INTO users")).
			WillReturnError(errors.New("duplicate key value violates unique constraint"))

		err := repo.CreateUser(context.Background(), &models.User{Username: "alice"}, "password123")

		assert.ErrorIs(t, err, apperror.ErrPersistence)
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	userID := testOwnerID

	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		rows := sqlmock.NewRows(userColumns).AddRow(
			userID, "alice", "alice@example.com", "hash", "Alice A", nil, nil, false, time.Now(), nil)
		mock.ExpectQuery(q("SELECT * FROM users WHERE id = $1 AND is_deleted = FALSE")).
			WithArgs(userID).
			WillReturnRows(rows)

		user, err := repo.GetUserByID(context.Background(), userID)

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Nil(t, user.RefreshToken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(q("SELECT * FROM users WHERE id = $1")).
			WithArgs(userID).
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByID(context.Background(), userID)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("database failure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(q("SELECT * FROM users WHERE id = $1")).
			WithArgs(userID).
			WillReturnError(errors.New("connection failed"))

		user, err := repo.GetUserByID(context.Background(), userID)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperror.ErrPersistence)
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)
	require.NoError(t, err)

	userRow := func(deleted bool) *sqlmock.Rows {
		return sqlmock.NewRows(userColumns).AddRow(
			testOwnerID, "alice", "alice@example.com", string(hashed), "Alice A", nil, nil, deleted, time.Now(), nil)
	}

	tests := []struct {
		name      string
		password  string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name:     "correct password",
			password: "correct_password",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("SELECT * FROM users WHERE username = $1")).
					WithArgs("alice").WillReturnRows(userRow(false))
			},
		},
		{
			name:     "wrong password",
			password: "wrong_password",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("SELECT * FROM users WHERE username = $1")).
					WithArgs("alice").WillReturnRows(userRow(false))
			},
			wantErr: apperror.ErrUnauthorized,
		},
		{
			name:     "deleted account",
			password: "correct_password",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("SELECT * FROM users WHERE username = $1")).
					WithArgs("alice").WillReturnRows(userRow(true))
			},
			wantErr: apperror.ErrUnauthorized,
		},
		{
			name:     "unknown user",
			password: "correct_password",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(q("SELECT * FROM users WHERE username = $1")).
					WithArgs("alice").WillReturnError(sql.ErrNoRows)
			},
			wantErr: apperror.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewUserRepository(db)
			tt.setupMock(mock)

			user, err := repo.VerifyPassword(context.Background(), "alice", tt.password)

			if tt.wantErr != nil {
				assert.Nil(t, user)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testOwnerID, user.UserID)
		})
	}
}

func TestUserRepository_RefreshToken(t *testing.T) {
	expiry := time.Now().Add(24 * time.Hour)

	t.Run("update", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(q("SET refresh_token = $1, refresh_token_expiry_time = $2")).
			WithArgs("refresh", expiry, testOwnerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateRefreshToken(context.Background(), testOwnerID, "refresh", expiry))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("clear", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectExec(q("SET refresh_token = NULL")).
			WithArgs(testOwnerID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.ClearRefreshToken(context.Background(), testOwnerID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired token is unauthorized", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(q("refresh_token_expiry_time > CURRENT_TIMESTAMP")).
			WithArgs("stale").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByRefreshToken(context.Background(), "stale")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	t.Run("partial update keeps email", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		rows := sqlmock.NewRows(userColumns).AddRow(
			testOwnerID, "alice", "alice@example.com", "hash", "Alice B", nil, nil, false, time.Now(), time.Now())
		mock.ExpectQuery(q("SET full_name = COALESCE($1, full_name)")).
			WithArgs("Alice B", nil, testOwnerID).
			WillReturnRows(rows)

		user, err := repo.UpdateProfile(context.Background(), testOwnerID, ProfilePatch{FullName: stringPtr("Alice B")})

		require.NoError(t, err)
		assert.Equal(t, "Alice B", user.FullName)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(q("UPDATE users")).WillReturnRows(sqlmock.NewRows(userColumns))

		user, err := repo.UpdateProfile(context.Background(), testOwnerID, ProfilePatch{})

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestUserRepository_SearchAndProfile(t *testing.T) {
	t.Run("search by name", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(q("WHERE full_name ILIKE '%' || $1 || '%'")).
			WithArgs("ali", 20, 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name"}).
				AddRow(testOwnerID, "alice", "Alice A"))

		users, err := repo.SearchByName(context.Background(), "ali", models.Page{Page: 2, Limit: 20})

		require.NoError(t, err)
		assert.Equal(t, []models.UserSummary{{UserID: testOwnerID, Username: "alice", FullName: "Alice A"}}, users)
	})

	t.Run("profile with counts", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(q("AS follower_count")).
			WithArgs(testOwnerID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "username", "full_name", "email", "created_at", "follower_count", "following_count",
			}).AddRow(testOwnerID, "alice", "Alice A", "alice@example.com", time.Now(), 3, 5))

		profile, err := repo.GetProfile(context.Background(), testOwnerID)

		require.NoError(t, err)
		assert.Equal(t, 3, profile.FollowerCount)
		assert.Equal(t, 5, profile.FollowingCount)
	})

	t.Run("profile of missing user", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(q("FROM users u")).WillReturnError(sql.ErrNoRows)

		profile, err := repo.GetProfile(context.Background(), testOwnerID)

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
