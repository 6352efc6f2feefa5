package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/config"
	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/store"
	"github.com/MKhiriev/go-mess-manager/internal/utils"
	"github.com/MKhiriev/go-mess-manager/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// passwordHashCost is the bcrypt cost factor applied at registration.
	passwordHashCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:   userRepository,
		passwordHashCost: cfg.PasswordHashCost,
		tokenSignKey:     cfg.TokenSignKey,
		tokenIssuer:      cfg.TokenIssuer,
		tokenDuration:    cfg.TokenDuration,
		logger:           logger,
	}
}

// RegisterUser creates a new user account.
//
// The password is hashed with bcrypt at the configured cost before it ever
// reaches the repository; the plaintext is never stored or logged.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - ErrInvalidDataProvided if email, password, or name is empty.
//   - ErrInvalidRole if the requested role is unknown.
//   - A wrapped storage error if the repository call fails (e.g. email already
//     taken — see store.ErrEmailAlreadyExists).
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" || request.Password == "" || request.Name == "" {
		log.Error().Str("email", request.Email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if !request.Role.Valid() {
		log.Error().Str("role", string(request.Role)).Msg("unknown role provided")
		return models.User{}, ErrInvalidRole
	}

	passwordHash, err := utils.HashPassword(request.Password, a.passwordHashCost)
	if err != nil {
		log.Err(err).Str("email", request.Email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Email:        request.Email,
		Name:         request.Name,
		Role:         request.Role,
		PasswordHash: passwordHash,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", request.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by email and compares the stored bcrypt hash with
// the supplied password.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - A wrapped storage error if the repository lookup fails (e.g. user not
//     found — see store.ErrNoUserWasFound).
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Email == "" || request.Password == "" {
		log.Error().Str("email", request.Email).Msg("invalid login data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, request.Email)
	if err != nil {
		log.Err(err).Str("email", request.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if compareErr := utils.ComparePassword(foundUser.PasswordHash, request.Password); compareErr != nil {
		log.Warn().
			Int64("id", foundUser.UserID).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim and the user's role as a custom claim, and
// expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Role, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// VerifyToken validates and parses a raw JWT string, then re-reads the
// principal from the user store.
//
// The role claim inside the token is informational only: the store read is
// what determines the effective role, so a role change or account deletion
// takes effect on the next request instead of at token expiry.
//
// Returns the current user record or:
//   - ErrTokenIsExpired if the token's expiry time has passed.
//   - ErrTokenIsExpiredOrInvalid on any other validation failure.
//   - ErrPrincipalNotFound if the account behind the token no longer exists.
func (a *authService) VerifyToken(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return models.User{}, ErrTokenIsExpired
		}
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Int64("user_id", token.UserID).Msg("token principal no longer exists")
			return models.User{}, ErrPrincipalNotFound
		}

		log.Err(err).Int64("user_id", token.UserID).Msg("principal lookup failed")
		return models.User{}, fmt.Errorf("principal lookup failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the principal's self-service change of display name
// and/or email. Unchanged fields keep their stored values.
//
// Returns the refreshed user record or:
//   - ErrInvalidDataProvided if neither field is supplied.
//   - A wrapped storage error if the repository call fails (e.g. the new
//     email is already taken — see store.ErrEmailAlreadyExists).
func (a *authService) UpdateProfile(ctx context.Context, userID int64, request models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if request.Name == "" && request.Email == "" {
		log.Warn().Int64("user_id", userID).Msg("profile update without any fields")
		return models.User{}, ErrInvalidDataProvided
	}

	current, err := a.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile lookup failed")
		return models.User{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	name := current.Name
	if request.Name != "" {
		name = request.Name
	}
	email := current.Email
	if request.Email != "" {
		email = request.Email
	}

	updated, err := a.userRepository.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile update ended with error")
		return models.User{}, fmt.Errorf("profile update ended with error: %w", err)
	}

	return updated, nil
}

// ChangePassword replaces the principal's password after re-verifying the
// current one against the stored hash.
//
// Returns nil on success or:
//   - ErrInvalidDataProvided if either password is empty.
//   - ErrWrongPassword if the current password does not match.
//   - A wrapped storage error if the lookup or update fails.
func (a *authService) ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if request.CurrentPassword == "" || request.NewPassword == "" {
		return ErrInvalidDataProvided
	}

	current, err := a.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("principal lookup failed")
		return fmt.Errorf("principal lookup failed: %w", err)
	}

	if compareErr := utils.ComparePassword(current.PasswordHash, request.CurrentPassword); compareErr != nil {
		log.Warn().Int64("user_id", userID).Msg("wrong current password")
		return ErrWrongPassword
	}

	newHash, err := utils.HashPassword(request.NewPassword, a.passwordHashCost)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdateUserPassword(ctx, userID, newHash); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password update ended with error")
		return fmt.Errorf("password update ended with error: %w", err)
	}

	log.Info().Int64("user_id", userID).Msg("password changed")
	return nil
}
