package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/store"
	"github.com/MKhiriev/go-shop/internal/utils"
	"github.com/MKhiriev/go-shop/models"
)

type userService struct {
	userRepository store.UserRepository
	tokens         AuthService
	passwordCost   int

	logger *logger.Logger
}

// NewUserService constructs a UserService. tokens issues the fresh token
// returned by a profile update.
func NewUserService(userRepository store.UserRepository, tokens AuthService, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		tokens:         tokens,
		passwordCost:   cfg.PasswordCost,
		logger:         logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (models.UserIdentity, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.UserIdentity{}, mapStoreError(err)
	}
	return user.Identity(), nil
}

// UpdateProfile is a read-modify-write without concurrency control: the
// last writer wins.
func (s *userService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.UserIdentity, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, req.UserID.Hex())
	if err != nil {
		return models.UserIdentity{}, mapStoreError(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password, s.passwordCost)
		if err != nil {
			return models.UserIdentity{}, fmt.Errorf("password hashing failed: %w", err)
		}
		user.Password = hash
	}

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("user_id", user.ID.Hex()).Msg("profile update failed")
		return models.UserIdentity{}, mapStoreError(err)
	}

	token, err := s.tokens.CreateToken(ctx, updated)
	if err != nil {
		return models.UserIdentity{}, err
	}

	identity := updated.Identity()
	identity.Token = token.SignedString
	return identity, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.FindAllUsers(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}

	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, mapStoreError(err)
	}

	user.Password = ""
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, req models.UpdateUserRequest) (models.UserIdentity, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, req.UserID.Hex())
	if err != nil {
		return models.UserIdentity{}, mapStoreError(err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	user.IsAdmin = req.IsAdmin

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("user_id", user.ID.Hex()).Msg("user update failed")
		return models.UserIdentity{}, mapStoreError(err)
	}

	return updated.Identity(), nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		return mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// IsAdmin treats a missing user as a non-admin.
func (s *userService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, mapStoreError(err)
	}
	return user.IsAdmin, nil
}
