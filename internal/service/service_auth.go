package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-shop/internal/config"
	"github.com/MKhiriev/go-shop/internal/logger"
	"github.com/MKhiriev/go-shop/internal/store"
	"github.com/MKhiriev/go-shop/internal/utils"
	"github.com/MKhiriev/go-shop/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// passwordCost is the bcrypt work factor for new password hashes.
	passwordCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		passwordCost:   cfg.PasswordCost,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Login authenticates an existing user by email and password.
//
// An unknown email and a wrong password are indistinguishable to the
// caller: both yield ErrInvalidEmailOrPassword.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.UserIdentity, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("email", req.Email).Msg("login for unknown email")
		return models.UserIdentity{}, fmt.Errorf("%w: %w", ErrInvalidEmailOrPassword, err)
	}
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.UserIdentity{}, fmt.Errorf("user search by email failed: %w", err)
	}

	ok, err := utils.CheckPassword(user.Password, req.Password)
	if err != nil {
		log.Err(err).Str("user_id", user.ID.Hex()).Msg("stored password hash is unusable")
		return models.UserIdentity{}, fmt.Errorf("password check failed: %w", err)
	}
	if !ok {
		log.Debug().Str("user_id", user.ID.Hex()).Msg("wrong password")
		return models.UserIdentity{}, ErrInvalidEmailOrPassword
	}

	return a.identityWithToken(ctx, user)
}

// Register creates a new non-admin account with a bcrypt-hashed password.
//
// Returns ErrUserAlreadyExists when the email is taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.UserIdentity, error) {
	log := logger.FromContext(ctx)

	if _, err := a.userRepository.FindUserByEmail(ctx, req.Email); err == nil {
		return models.UserIdentity{}, ErrUserAlreadyExists
	} else if !errors.Is(err, store.ErrUserNotFound) {
		log.Err(err).Str("email", req.Email).Msg("user search by email failed")
		return models.UserIdentity{}, fmt.Errorf("user search by email failed: %w", err)
	}

	hash, err := utils.HashPassword(req.Password, a.passwordCost)
	if err != nil {
		return models.UserIdentity{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
	})
	if err != nil {
		log.Err(err).Str("email", req.Email).Msg("user creation ended with error")
		return models.UserIdentity{}, mapStoreError(err)
	}

	return a.identityWithToken(ctx, user)
}

func (a *authService) identityWithToken(ctx context.Context, user models.User) (models.UserIdentity, error) {
	token, err := a.CreateToken(ctx, user)
	if err != nil {
		return models.UserIdentity{}, err
	}

	identity := user.Identity()
	identity.Token = token.SignedString
	return identity, nil
}

// CreateToken issues a signed JWT whose subject is the user's hex id.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID.Hex(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", user.ID.Hex()).Msg("token generation failed")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed) is normalised to
// ErrTokenIsExpiredOrInvalid so that callers do not need to inspect low-level
// JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}
