package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same email already exists in the database.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrUserHasDependencies is returned when a user deletion is refused
	// because other records (holiday schedules, consumption or waste logs)
	// still reference the account.
	ErrUserHasDependencies = errors.New("user has dependent records")

	// ErrFoodItemNotFound is returned when a food item lookup by id produces
	// no rows.
	ErrFoodItemNotFound = errors.New("food item was not found")

	// ErrNotFoundMenuEntry is returned when a menu plan entry deletion targets
	// an id that does not exist.
	ErrNotFoundMenuEntry = errors.New("menu plan entry was not found")

	// ErrSuggestionNotFound is returned when a suggestion lookup or transition
	// targets an id that does not exist in the database.
	ErrSuggestionNotFound = errors.New("menu suggestion was not found")

	// ErrSuggestionNotPending is returned when an accept or reject transition
	// targets a suggestion whose status is no longer PENDING. Exactly one of
	// several concurrent transitions observes PENDING under the row lock; the
	// rest receive this error.
	ErrSuggestionNotPending = errors.New("menu suggestion is not pending")

	// ErrHolidayNotFound is returned when a holiday schedule deletion targets
	// an id that does not exist.
	ErrHolidayNotFound = errors.New("holiday schedule was not found")

	// ErrCredentialNotFound is returned by the client credential slot when no
	// credential row is persisted locally.
	ErrCredentialNotFound = errors.New("no stored credential was found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared (e.g. syntax error or connection issue).
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
