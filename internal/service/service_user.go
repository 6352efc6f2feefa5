package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/internal/store"
	"github.com/MKhiriev/go-mess-manager/models"
)

// userService is the concrete implementation of UserService, covering the
// admin-side user management surface.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService backed by the provided repository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// GetUsers lists accounts, optionally narrowed to one role. An empty role
// lists everyone; an unknown non-empty role yields ErrInvalidRole.
func (s *userService) GetUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	if role != "" && !role.Valid() {
		return nil, ErrInvalidRole
	}

	return s.userRepository.GetAllUsers(ctx, role)
}

// GetUser returns a single account by id.
func (s *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	return s.userRepository.GetUserByID(ctx, userID)
}

// UpdateUser applies an admin-side change of name and role.
func (s *userService) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.Name == "" {
		return models.User{}, ErrInvalidDataProvided
	}
	if !user.Role.Valid() {
		return models.User{}, ErrInvalidRole
	}

	updated, err := s.userRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("user update ended with error: %w", err)
	}

	return updated, nil
}

// DeleteUser removes an account. Accounts referenced by other records
// (schedules, meal logs, menu entries) surface store.ErrUserHasDependencies.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	return s.userRepository.DeleteUser(ctx, userID)
}

// GetAdminDashboard returns the aggregate role and consumption counters
// shown on the admin dashboard.
func (s *userService) GetAdminDashboard(ctx context.Context) (models.AdminDashboard, error) {
	return s.userRepository.GetAdminDashboard(ctx)
}
