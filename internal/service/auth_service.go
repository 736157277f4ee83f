package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hywel/accountd/internal/auth"
	"github.com/hywel/accountd/internal/domain"
	"github.com/hywel/accountd/internal/repository"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo   repository.UserRepository
	deviceRepo repository.DeviceRepository
	tokens     *auth.TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, deviceRepo repository.DeviceRepository, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		deviceRepo: deviceRepo,
		tokens:     tokens,
	}
}

type LoginInput struct {
	Email      string
	Password   string
	DeviceName string
	// Client is free-form metadata captured at login (user agent, remote
	// address), stored on the device row.
	Client map[string]string
}

type LoginResult struct {
	User  *domain.User
	Token string
}

// Login authenticates by email + password, issues a token, and records a
// device row for the session. The device insert is part of the login
// contract: if it fails, no token is handed out.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, input.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidPassword
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		return nil, err
	}

	device := &domain.Device{
		UserID: user.ID,
		Token:  token,
		Name:   input.DeviceName,
	}
	if len(input.Client) > 0 {
		meta, err := json.Marshal(input.Client)
		if err != nil {
			return nil, err
		}
		device.Client = meta
	}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Logout removes device rows for userID. A non-empty token narrows the
// delete to that session; otherwise every session goes. Zero matched rows
// is fine, logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, userID int64, token string) error {
	if token != "" {
		return s.deviceRepo.DeleteByUserIDAndToken(ctx, userID, token)
	}
	return s.deviceRepo.DeleteByUserID(ctx, userID)
}

func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *AuthService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
