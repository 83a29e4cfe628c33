package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blogHub/internal/auth"
	"blogHub/internal/config"
	"blogHub/internal/models"
	"blogHub/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*AuthResult, error)
	Me(ctx context.Context, actor *auth.Actor) (*models.User, error)
	ValidateToken(tokenString string) (*auth.Actor, error)
}

type AuthResult struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.Tokens
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   auth.NewTokens(cfg.JWTSecretKey, cfg.AccessTokenDuration, cfg.RefreshTokenDuration),
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !usernamePattern.MatchString(username) {
		return nil, newError(ErrValidation, "username must be 3-30 letters, digits or underscores")
	}

	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, newError(ErrConflict, "user with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetUserByUsername(ctx, username); err == nil {
		return nil, newError(ErrConflict, "username is already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	refreshToken, refreshTokenExpiry := s.tokens.IssueRefresh()

	user := &models.User{
		Username:               username,
		Email:                  email,
		Role:                   models.RoleUser,
		Avatar:                 models.DefaultUserAvatar,
		IsActive:               true,
		RefreshToken:           refreshToken,
		RefreshTokenExpiryTime: refreshTokenExpiry,
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "username or email is already taken")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.VerifyPassword(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrUnauthorized, "invalid email or password")
		}
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if !user.IsActive {
		return nil, newError(ErrForbidden, "account is deactivated")
	}

	now := s.now()
	if err := s.userRepo.TouchLastLogin(ctx, user.UserID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return s.issue(ctx, user)
}

// RefreshTokens exchanges a live refresh token for a new pair; the old refresh token stops working.
func (s *authService) RefreshTokens(ctx context.Context, refreshToken string) (*AuthResult, error) {
	user, err := s.userRepo.GetUserByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrUnauthorized, "invalid or expired refresh token")
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	if !user.IsActive {
		return nil, newError(ErrForbidden, "account is deactivated")
	}

	return s.issue(ctx, user)
}

func (s *authService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	accessToken, err := s.tokens.IssueAccess(user)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshTokenExpiry := s.tokens.IssueRefresh()
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshToken, refreshTokenExpiry); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authService) Me(ctx context.Context, actor *auth.Actor) (*models.User, error) {
	if actor == nil {
		return nil, newError(ErrUnauthorized, "authentication required")
	}
	user, err := s.userRepo.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	return user, nil
}

func (s *authService) ValidateToken(tokenString string) (*auth.Actor, error) {
	actor, err := s.tokens.Parse(tokenString)
	if err != nil {
		return nil, newError(ErrUnauthorized, "invalid or expired token")
	}
	return actor, nil
}
