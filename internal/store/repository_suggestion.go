package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mess-manager/internal/logger"
	"github.com/MKhiriev/go-mess-manager/models"
)

// suggestionRepository is the PostgreSQL-backed implementation of
// [SuggestionRepository]. It owns the "menu_suggestions" and
// "menu_suggestion_items" tables and the transactional materialization of an
// accepted suggestion into the "menu_plan" table.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (suggestion_id, acting user, iteration index, etc.).
type suggestionRepository struct {
	*DB
	logger *logger.Logger
}

// NewSuggestionRepository constructs a [SuggestionRepository] backed by the
// provided database connection and logger.
func NewSuggestionRepository(db *DB, logger *logger.Logger) SuggestionRepository {
	return &suggestionRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateSuggestion persists a new PENDING suggestion together with its items
// inside a single transaction.
//
// The suggestion header is inserted first to obtain the server-assigned id,
// then every item is inserted through a prepared statement with its position
// preserved. The transaction is rolled back automatically (via defer) if any
// insert fails; the commit is attempted only after all items succeed.
func (r *suggestionRepository) CreateSuggestion(ctx context.Context, suggestion models.MenuSuggestion) (models.MenuSuggestion, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "suggestionRepository.CreateSuggestion").
			Int("items_count", len(suggestion.Items)).
			Msg("failed to begin transaction")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	suggestion.Status = models.SuggestionPending

	if err = tx.QueryRowContext(ctx, createSuggestion, suggestion.StartDate, suggestion.EndDate, suggestion.Status).
		Scan(&suggestion.SuggestionID, &suggestion.SuggestedAt); err != nil {
		log.Err(err).
			Str("func", "suggestionRepository.CreateSuggestion").
			Msg("failed to insert suggestion header")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	stmt, err := tx.PrepareContext(ctx, createSuggestionItem)
	if err != nil {
		log.Err(err).
			Str("func", "suggestionRepository.CreateSuggestion").
			Int64("suggestion_id", suggestion.SuggestionID).
			Msg("failed to prepare statement")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for idx := range suggestion.Items {
		item := &suggestion.Items[idx]
		item.SuggestionID = suggestion.SuggestionID
		item.Position = idx

		log.Debug().
			Str("func", "suggestionRepository.CreateSuggestion").
			Int("iteration", idx+1).
			Int("total", len(suggestion.Items)).
			Int64("suggestion_id", suggestion.SuggestionID).
			Msg("saving suggestion item in transaction")

		queryErr := stmt.QueryRowContext(ctx,
			item.SuggestionID,
			item.Date,
			item.MealType,
			item.FoodItemID,
			item.PlannedQuantity,
			item.Position,
		).Scan(&item.ItemID)

		if queryErr != nil {
			log.Err(queryErr).
				Str("func", "suggestionRepository.CreateSuggestion").
				Int("iteration", idx+1).
				Int64("suggestion_id", suggestion.SuggestionID).
				Msg("failed to execute prepared statement")
			return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrExecutingStatement, queryErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "suggestionRepository.CreateSuggestion").
			Int64("suggestion_id", suggestion.SuggestionID).
			Msg("failed to commit transaction")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return suggestion, nil
}

// GetSuggestion retrieves one suggestion together with its ordered items.
// Returns [ErrSuggestionNotFound] when the id does not exist.
func (r *suggestionRepository) GetSuggestion(ctx context.Context, suggestionID int64) (models.MenuSuggestion, error) {
	log := logger.FromContext(ctx)

	var suggestion models.MenuSuggestion
	row := r.DB.QueryRowContext(ctx, getSuggestionByID, suggestionID)

	if err := row.Scan(&suggestion.SuggestionID, &suggestion.StartDate, &suggestion.EndDate, &suggestion.Status, &suggestion.SuggestedAt, &suggestion.AcceptedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.MenuSuggestion{}, ErrSuggestionNotFound
		}

		log.Err(err).
			Str("func", "suggestionRepository.GetSuggestion").
			Int64("suggestion_id", suggestionID).
			Msg("failed to scan suggestion row")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	items, err := r.getItems(ctx, suggestionID)
	if err != nil {
		return models.MenuSuggestion{}, err
	}
	suggestion.Items = items

	return suggestion, nil
}

// GetSuggestions lists suggestions, optionally narrowed by status.
//
// When notExpiredOn is non-zero, PENDING suggestions whose end date already
// passed are silently dropped from the result; they stay PENDING in the
// database.
func (r *suggestionRepository) GetSuggestions(ctx context.Context, status models.SuggestionStatus, notExpiredOn time.Time) ([]models.MenuSuggestion, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectSuggestionsQuery(ctx, status, notExpiredOn)
	if err != nil {
		log.Err(err).
			Str("func", "suggestionRepository.GetSuggestions").
			Msg("failed to create query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "suggestionRepository.GetSuggestions").
			Str("status", string(status)).
			Msg("failed to execute query for listing suggestions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	suggestions := make([]models.MenuSuggestion, 0, 50)

	for rows.Next() {
		var suggestion models.MenuSuggestion

		scanErr := rows.Scan(
			&suggestion.SuggestionID,
			&suggestion.StartDate,
			&suggestion.EndDate,
			&suggestion.Status,
			&suggestion.SuggestedAt,
			&suggestion.AcceptedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "suggestionRepository.GetSuggestions").
				Msg("failed to scan suggestion row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		suggestions = append(suggestions, suggestion)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "suggestionRepository.GetSuggestions").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return suggestions, nil
}

// acceptRetryAttempts bounds the transparent retries of the accept
// transaction on transient driver failures (serialization failures,
// deadlocks, dropped connections).
const acceptRetryAttempts = 3

// AcceptSuggestion transitions a PENDING suggestion to ACCEPTED and inserts
// one menu plan entry per suggestion item, all inside a single transaction.
//
// The suggestion row is locked with SELECT ... FOR UPDATE, so concurrent
// accept attempts on the same id serialize: exactly one observes PENDING and
// commits, the rest receive [ErrSuggestionNotPending]. If any entry insert
// fails mid-loop the deferred rollback reverts everything, including entries
// already inserted, and the suggestion stays PENDING.
//
// Transient failures (class 08 connection losses, class 40 rollbacks such as
// deadlocks) are retried up to [acceptRetryAttempts] times; each attempt is
// a fresh transaction, so a retried accept re-checks the PENDING status
// under a new lock. Business outcomes are never retried.
//
// Error handling:
//   - unknown id → [ErrSuggestionNotFound]
//   - status is not PENDING → [ErrSuggestionNotPending]
//   - any insert/commit failure → wrapped low-level error, nothing persisted
func (r *suggestionRepository) AcceptSuggestion(ctx context.Context, suggestionID int64, actingUserID int64) (models.MenuSuggestion, error) {
	log := logger.FromContext(ctx)

	var suggestion models.MenuSuggestion
	var err error
	for attempt := 1; attempt <= acceptRetryAttempts; attempt++ {
		suggestion, err = r.acceptSuggestionOnce(ctx, suggestionID, actingUserID)
		if err == nil || r.DB.errorClassificator.Classify(err) == NonRetryable {
			return suggestion, err
		}

		log.Warn().
			Err(err).
			Str("func", "suggestionRepository.AcceptSuggestion").
			Int64("suggestion_id", suggestionID).
			Int("attempt", attempt).
			Msg("retrying accept transaction after transient failure")
	}

	return suggestion, err
}

// acceptSuggestionOnce runs a single attempt of the accept transaction.
func (r *suggestionRepository) acceptSuggestionOnce(ctx context.Context, suggestionID int64, actingUserID int64) (models.MenuSuggestion, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "suggestionRepository.acceptSuggestionOnce").
			Int64("suggestion_id", suggestionID).
			Msg("failed to begin transaction")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var suggestion models.MenuSuggestion
	lockErr := tx.QueryRowContext(ctx, selectSuggestionForUpdate, suggestionID).
		Scan(&suggestion.SuggestionID, &suggestion.StartDate, &suggestion.EndDate, &suggestion.Status, &suggestion.SuggestedAt, &suggestion.AcceptedAt)
	if lockErr != nil {
		if errors.Is(lockErr, sql.ErrNoRows) {
			return models.MenuSuggestion{}, ErrSuggestionNotFound
		}

		log.Err(lockErr).
			Str("func", "suggestionRepository.acceptSuggestionOnce").
			Int64("suggestion_id", suggestionID).
			Msg("failed to lock suggestion row")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrExecutingQuery, lockErr)
	}

	if suggestion.Status != models.SuggestionPending {
		log.Warn().
			Str("func", "suggestionRepository.acceptSuggestionOnce").
			Int64("suggestion_id", suggestionID).
			Str("status", string(suggestion.Status)).
			Msg("suggestion already decided")
		return models.MenuSuggestion{}, ErrSuggestionNotPending
	}

	items, itemsErr := r.getItemsTx(ctx, tx, suggestionID)
	if itemsErr != nil {
		return models.MenuSuggestion{}, itemsErr
	}
	suggestion.Items = items

	stmt, err := tx.PrepareContext(ctx, insertMenuPlanEntry)
	if err != nil {
		log.Err(err).
			Str("func", "suggestionRepository.acceptSuggestionOnce").
			Int64("suggestion_id", suggestionID).
			Msg("failed to prepare statement")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrPreparingStatement, err)
	}
	defer stmt.Close()

	for idx, item := range items {
		log.Debug().
			Str("func", "suggestionRepository.acceptSuggestionOnce").
			Int("iteration", idx+1).
			Int("total", len(items)).
			Int64("suggestion_id", suggestionID).
			Msg("inserting menu plan entry in transaction")

		var entry models.MenuPlanEntry
		queryErr := stmt.QueryRowContext(ctx,
			item.Date,
			item.MealType,
			item.FoodItemID,
			item.PlannedQuantity,
			actingUserID,
		).Scan(&entry.EntryID, &entry.CreatedAt)

		if queryErr != nil {
			log.Err(queryErr).
				Str("func", "suggestionRepository.acceptSuggestionOnce").
				Int("iteration", idx+1).
				Int64("suggestion_id", suggestionID).
				Msg("failed to execute prepared statement")
			return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrExecutingStatement, queryErr)
		}
	}

	if err = tx.QueryRowContext(ctx, acceptSuggestion, suggestionID).Scan(&suggestion.AcceptedAt); err != nil {
		// the guarded UPDATE matched no row even under the lock
		if errors.Is(err, sql.ErrNoRows) {
			return models.MenuSuggestion{}, ErrSuggestionNotPending
		}

		log.Err(err).
			Str("func", "suggestionRepository.acceptSuggestionOnce").
			Int64("suggestion_id", suggestionID).
			Msg("failed to update suggestion status")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	suggestion.Status = models.SuggestionAccepted

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "suggestionRepository.acceptSuggestionOnce").
			Int64("suggestion_id", suggestionID).
			Msg("failed to commit transaction")
		return models.MenuSuggestion{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "suggestionRepository.acceptSuggestionOnce").
		Int64("suggestion_id", suggestionID).
		Int64("acting_user_id", actingUserID).
		Int("entries_count", len(items)).
		Msg("successfully accepted suggestion")

	return suggestion, nil
}

// RejectSuggestion transitions a PENDING suggestion to REJECTED.
//
// The UPDATE is guarded by status, so rejecting an already decided suggestion
// affects zero rows and yields [ErrSuggestionNotPending]; an unknown id
// yields [ErrSuggestionNotFound].
func (r *suggestionRepository) RejectSuggestion(ctx context.Context, suggestionID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, rejectSuggestion, suggestionID)
	if err != nil {
		log.Err(err).
			Str("func", "suggestionRepository.RejectSuggestion").
			Int64("suggestion_id", suggestionID).
			Msg("failed to execute reject query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		var status models.SuggestionStatus
		scanErr := r.DB.QueryRowContext(ctx, getSuggestionByID, suggestionID).
			Scan(new(int64), new(time.Time), new(time.Time), &status, new(time.Time), new(*time.Time))
		if errors.Is(scanErr, sql.ErrNoRows) {
			return ErrSuggestionNotFound
		}
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "suggestionRepository.RejectSuggestion").
				Int64("suggestion_id", suggestionID).
				Msg("failed to inspect suggestion after no-op reject")
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		return ErrSuggestionNotPending
	}

	return nil
}

// getItems loads the ordered item collection for a suggestion using the
// shared connection pool.
func (r *suggestionRepository) getItems(ctx context.Context, suggestionID int64) ([]models.SuggestionItem, error) {
	rows, err := r.DB.QueryContext(ctx, getSuggestionItems, suggestionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanSuggestionItems(rows)
}

// getItemsTx loads the ordered item collection inside an open transaction so
// the read happens under the same snapshot as the row lock.
func (r *suggestionRepository) getItemsTx(ctx context.Context, tx *sql.Tx, suggestionID int64) ([]models.SuggestionItem, error) {
	rows, err := tx.QueryContext(ctx, getSuggestionItems, suggestionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return scanSuggestionItems(rows)
}

func scanSuggestionItems(rows *sql.Rows) ([]models.SuggestionItem, error) {
	items := make([]models.SuggestionItem, 0, 21)

	for rows.Next() {
		var item models.SuggestionItem

		scanErr := rows.Scan(
			&item.ItemID,
			&item.SuggestionID,
			&item.Date,
			&item.MealType,
			&item.FoodItemID,
			&item.PlannedQuantity,
			&item.Position,
		)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}
