package service

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/wikid/internal/model"
	appErr "github.com/xxxsen/wikid/internal/pkg/errors"
	"github.com/xxxsen/wikid/internal/pkg/password"
	"github.com/xxxsen/wikid/internal/pkg/validate"
	"github.com/xxxsen/wikid/internal/repo"
)

type AuthService struct {
	users *repo.UserRepo
}

func NewAuthService(users *repo.UserRepo) *AuthService {
	return &AuthService{users: users}
}

// Join creates a user. It returns ErrInvalid for malformed input and
// ErrConflict when the username is taken.
func (s *AuthService) Join(ctx context.Context, username, plainPassword, email string) error {
	if !validate.Username(username) || !validate.Password(plainPassword) || !validate.Email(email) {
		return appErr.ErrInvalid
	}
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return appErr.ErrConflict
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.Create(ctx, &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}); err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("user joined", zap.String("username", username))
	return nil
}

// Login checks credentials. It returns ErrInvalid for malformed input,
// ErrNotFound for unknown users and ErrForbidden for a wrong password.
func (s *AuthService) Login(ctx context.Context, username, plainPassword string) error {
	if !validate.Username(username) || !validate.Password(plainPassword) {
		return appErr.ErrInvalid
	}
	user, err := s.users.Get(ctx, username)
	if err != nil {
		return err
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return appErr.ErrForbidden
	}
	return nil
}
