package service

import (
	"context"
	"errors"
	"time"

	"github.com/timetrack/timetrack-go/internal/crypto"
	"github.com/timetrack/timetrack-go/internal/model"
	"github.com/timetrack/timetrack-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUsernameRequired   = errors.New("user_name is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrEmailRequired      = errors.New("email is required")
)

// AuthService exchanges credentials for signed bearer tokens.
type AuthService struct {
	users     UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService. The secret and TTL are
// injected configuration; rotating the secret invalidates every
// outstanding token.
func NewAuthService(users UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: secret,
		tokenTTL:  ttl,
	}
}

// Login authenticates a username/password pair and returns a bearer
// token response. Unknown users and wrong passwords are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (model.TokenResponse, error) {
	if username == "" {
		return model.TokenResponse{}, ErrUsernameRequired
	}
	if password == "" {
		return model.TokenResponse{}, ErrPasswordRequired
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenResponse{}, ErrInvalidCredentials
		}
		return model.TokenResponse{}, err
	}

	match, err := crypto.VerifyPassword(password, user.Password)
	if err != nil || !match {
		return model.TokenResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.UserName, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: model.TokenUser{
			Username: user.UserName,
			Email:    user.Email,
		},
	}, nil
}
