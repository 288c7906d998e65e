package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"socialnet/internal/apperror"
	"socialnet/internal/auth"
	"socialnet/internal/config"
	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.User, string, string, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error)
	Logout(ctx context.Context, userID string) error
	CurrentUser(ctx context.Context, userID string) (*models.User, error)
	ParseToken(tokenString string) (*auth.Principal, error)
}

type RegisterRequest struct {
	Username string
	Email    string
	Password string
	FullName string
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

// ensureFree turns a successful lookup into a conflict.
func ensureFree(user *models.User, err error, field, value string) error {
	if err == nil && user != nil {
		return apperror.Conflict("%s %s is already taken", field, value)
	}
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}
	return nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err := ensureFree(existing, err, "username", req.Username); err != nil {
		return nil, err
	}

	existing, err = s.userRepo.GetUserByEmail(ctx, req.Email)
	if err := ensureFree(existing, err, "email", req.Email); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		CreatedAt: s.now(),
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		return nil, "", "", err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*models.User, string, string, error) {
	if refreshToken == "" {
		return nil, "", "", apperror.Validation("refresh token is required")
	}

	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, "", "", err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*models.User, string, string, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, "", "", err
	}

	refreshToken, refreshTokenExpiry := s.generateRefreshToken()

	err = s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}

func (s *authService) CurrentUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"user_id":  user.UserID,
		"username": user.Username,
		"exp":      now.Add(s.cfg.AccessTokenDuration).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func (s *authService) generateRefreshToken() (string, time.Time) {
	return uuid.New().String(), s.now().Add(s.cfg.RefreshTokenDuration)
}

// ParseToken verifies an access token and returns its principal.
func (s *authService) ParseToken(tokenString string) (*auth.Principal, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, apperror.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	userID, ok1 := claims["user_id"].(string)
	username, ok2 := claims["username"].(string)
	if !ok1 || !ok2 || userID == "" {
		return nil, apperror.ErrUnauthorized
	}

	return &auth.Principal{UserID: userID, Username: username}, nil
}
