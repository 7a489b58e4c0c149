package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"cereal-api/internal/model"
	"cereal-api/internal/repository"

	"github.com/rs/zerolog"
)

// PrivilegedUsername is the sole username permitted to self-register.
const PrivilegedUsername = "root"

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 8

// userService implements UserService. Passwords are stored as unsalted
// SHA-256 hex digests; the single-tenant policy and the missing salt are
// known weaknesses of the credential scheme.
type userService struct {
	repo   repository.UserRepository
	logger zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// Register validates the request and stores the hashed credential.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) error {
	if req.Username != PrivilegedUsername {
		s.logger.Warn().Str("username", req.Username).Msg("registration attempt by non-privileged username")
		return model.ErrForbiddenUser
	}

	if len(req.Password) < MinPasswordLength {
		return model.ErrPasswordTooShort
	}

	existing, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("failed to look up user")
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return model.ErrUserExists
	}

	digest := sha256.Sum256([]byte(req.Password))
	user := &model.User{
		Username:     req.Username,
		PasswordHash: hex.EncodeToString(digest[:]),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("failed to register user")
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Str("username", req.Username).Msg("user registered")
	return nil
}
