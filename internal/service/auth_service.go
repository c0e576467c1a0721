package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"contactbook-be/internal/apperrors"
	"contactbook-be/internal/entities"
	"contactbook-be/internal/models"
	"contactbook-be/internal/password"
	"contactbook-be/internal/repository"
)

// TokenIssuer issues bearer tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(userID string) (string, time.Time, error)
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context, userID string) (*models.MeResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   password.Hasher
	tokens   TokenIssuer

	// dummyHash is verified against when the email is unknown, so both
	// login failures cost one bcrypt comparison.
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, hasher password.Hasher, tokens TokenIssuer) AuthService {
	// A failed hash leaves dummyHash empty; Verify then fails fast.
	dummyHash, _ := hasher.Hash("contactbook-dummy-password")
	return &authService{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, apperrors.Validation("name, email and password are required")
	}

	// Check if user already exists. The unique constraint catches the race.
	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperrors.ErrEmailTaken
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	hashedPassword, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, name, email, hashedPassword)
	if err != nil {
		return nil, err
	}

	return &models.RegisterResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	}, nil
}

// Login authenticates a user and returns a signed token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.hasher.Verify(req.Password, s.dummyHash)
		return nil, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Me returns the public profile of the authenticated user.
func (s *authService) Me(ctx context.Context, userID string) (*models.MeResponse, error) {
	if userID == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		// The token outlived its user.
		return nil, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}

	return &models.MeResponse{User: toUserResponse(user)}, nil
}

func toUserResponse(u *entities.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
