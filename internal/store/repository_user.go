package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, and admin-side user management against
// the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.PasswordHash, user.Name, user.Role)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved user from db
	if err := row.Scan(&user.UserID, &user.Email, &user.PasswordHash, &user.Name, &user.Role, &user.CreatedAt, &user.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, err
	}

	return user, nil
}

// FindUserByEmail retrieves the user record whose email matches the provided
// value. Returns [ErrNoUserWasFound] on an empty result set.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByEmail, email)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: row is nil")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&foundUser.UserID, &foundUser.Email, &foundUser.PasswordHash, &foundUser.Name, &foundUser.Role, &foundUser.CreatedAt, &foundUser.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: scanning error")
		return models.User{}, err
	}

	return foundUser, nil
}

// GetUserByID retrieves the user record with the given id. Returns
// [ErrNoUserWasFound] when the account does not exist, which token
// verification treats as a revoked principal.
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, getUserByID, userID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.GetUserByID").Int64("user_id", userID).Msg("error: row is nil")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&foundUser.UserID, &foundUser.Email, &foundUser.PasswordHash, &foundUser.Name, &foundUser.Role, &foundUser.CreatedAt, &foundUser.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.GetUserByID").Int64("user_id", userID).Msg("error: scanning error")
		return models.User{}, err
	}

	return foundUser, nil
}

// GetAllUsers lists user accounts, optionally narrowed to a single role.
func (r *userRepository) GetAllUsers(ctx context.Context, role models.Role) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUsersQuery(ctx, role)
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.GetAllUsers").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.GetAllUsers").
			Str("role", string(role)).
			Msg("failed to execute query for listing users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)

	for rows.Next() {
		var user models.User

		scanErr := rows.Scan(
			&user.UserID,
			&user.Email,
			&user.PasswordHash,
			&user.Name,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "userRepository.GetAllUsers").
				Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "userRepository.GetAllUsers").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// UpdateUser applies an admin-side update of name and role and returns the
// canonical database representation of the account.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var updated models.User
	row := r.db.QueryRowContext(ctx, updateUser, user.UserID, user.Name, user.Role)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", user.UserID).Msg("failed to execute update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&updated.UserID, &updated.Email, &updated.PasswordHash, &updated.Name, &updated.Role, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", user.UserID).Msg("error: scanning error")
		return models.User{}, err
	}

	return updated, nil
}

// DeleteUser removes a user account.
//
// Deletion is refused with [ErrUserHasDependencies] when other records still
// reference the account (authored holiday schedules, consumption or waste
// logs, menu plan entries). A foreign key violation raised by a concurrent
// insert maps to the same sentinel.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	var dependencies int64
	if err := r.db.QueryRowContext(ctx, countUserDependencies, userID).Scan(&dependencies); err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("failed to count dependent records")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if dependencies > 0 {
		log.Warn().
			Str("func", "*userRepository.DeleteUser").
			Int64("user_id", userID).
			Int64("dependencies", dependencies).
			Msg("refusing to delete user with dependent records")
		return ErrUserHasDependencies
	}

	result, err := r.db.ExecContext(ctx, deleteUser, userID)
	if err != nil {
		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrUserHasDependencies
		}

		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// UpdateProfile applies the principal's self-service change of name and
// email. The new email must stay unique; a collision maps to
// [ErrEmailAlreadyExists]. An unknown id yields [ErrNoUserWasFound].
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, name, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var updated models.User
	row := r.db.QueryRowContext(ctx, updateUserProfile, userID, name, email)

	if err := row.Err(); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("failed to execute profile update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&updated.UserID, &updated.Email, &updated.PasswordHash, &updated.Name, &updated.Role, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}

		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("error: scanning error")
		return models.User{}, err
	}

	return updated, nil
}

// UpdateUserPassword replaces the stored password hash. An unknown id yields
// [ErrNoUserWasFound].
func (r *userRepository) UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserPassword, userID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUserPassword").Int64("user_id", userID).Msg("failed to execute password update query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// GetAdminDashboard aggregates the per-role account counts and the overall
// number of consumption records in a single round trip.
func (r *userRepository) GetAdminDashboard(ctx context.Context) (models.AdminDashboard, error) {
	log := logger.FromContext(ctx)

	var dashboard models.AdminDashboard
	err := r.db.QueryRowContext(ctx, adminDashboardStats).
		Scan(&dashboard.AdminCount, &dashboard.StaffCount, &dashboard.StudentCount, &dashboard.TotalConsumption)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetAdminDashboard").Msg("failed to scan dashboard stats")
		return models.AdminDashboard{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return dashboard, nil
}
