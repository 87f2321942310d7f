package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/repositories"
	"dress_rental_backend/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO. Identifier is a username or an email.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      models.Principal `json:"user"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	// EnsureAdmin creates an Admin user unless one with that username or email exists.
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type authService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Login verifies the credentials and issues an access token.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.GetByIdentifier(ctx, strings.TrimSpace(req.Identifier))
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      models.Principal{UserID: user.ID, Username: user.Username, Role: user.Role},
	}, nil
}

func (s *authService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if username == "" || password == "" {
		return nil
	}
	if email == "" {
		email = username + "@localhost.local"
	}

	for _, identifier := range []string{username, email} {
		_, err := s.userRepo.GetByIdentifier(ctx, identifier)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("looking up admin user: %w", err)
		}
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}
	utils.LogInfo("Admin user created", map[string]interface{}{"username": username})
	return nil
}
