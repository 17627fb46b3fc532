package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/petify/reservation-slots-service/internal/config"
	"github.com/petify/reservation-slots-service/internal/core/domain"
	"github.com/petify/reservation-slots-service/internal/core/ports/out"
)

const uniqueViolationCode = "23505"

const schemaQuery = `
CREATE TABLE IF NOT EXISTS reservation_slots (
	id          UUID PRIMARY KEY,
	pet_id      BIGINT NOT NULL,
	start_time  TIMESTAMPTZ NOT NULL,
	end_time    TIMESTAMPTZ NOT NULL,
	status      TEXT NOT NULL,
	reserved_by TEXT,
	CONSTRAINT reservation_slots_pet_window_key UNIQUE (pet_id, start_time, end_time)
)`

const slotColumns = `id, pet_id, start_time, end_time, status, reserved_by`

type SlotStoreAdapter struct {
	db     *sqlx.DB
	logger out.LoggerPort
}

func NewSlotStoreAdapter(cfg *config.Config, logger out.LoggerPort) (*SlotStoreAdapter, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(schemaQuery); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply reservation_slots schema: %w", err)
	}

	logger.Info("postgres.connected", out.LogFields{
		"host":   cfg.Postgres.Host,
		"dbName": cfg.Postgres.DBName,
	})

	return &SlotStoreAdapter{
		db:     db,
		logger: logger.WithModule("SlotStoreAdapter"),
	}, nil
}

func (a *SlotStoreAdapter) Close() error {
	return a.db.Close()
}

func (a *SlotStoreAdapter) Insert(ctx context.Context, slot domain.ReservationSlot) error {
	const query = `
		INSERT INTO reservation_slots (id, pet_id, start_time, end_time, status, reserved_by)
		VALUES (:id, :pet_id, :start_time, :end_time, :status, :reserved_by)`

	if _, err := a.db.NamedExecContext(ctx, query, slot); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
			return domain.NewError(domain.ErrSlotAlreadyExists,
				"slot already exists for pet %d at %s - %s",
				slot.PetID,
				slot.StartTime.Format(time.RFC3339),
				slot.EndTime.Format(time.RFC3339))
		}
		return fmt.Errorf("failed to insert slot: %w", err)
	}

	return nil
}

// InsertBatch writes all candidates in one transaction. Candidates whose
// (pet_id, start_time, end_time) key is already taken are skipped via
// ON CONFLICT DO NOTHING rather than failing the batch.
func (a *SlotStoreAdapter) InsertBatch(ctx context.Context, slots []domain.ReservationSlot) ([]domain.ReservationSlot, error) {
	const query = `
		INSERT INTO reservation_slots (id, pet_id, start_time, end_time, status, reserved_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT reservation_slots_pet_window_key DO NOTHING`

	created := make([]domain.ReservationSlot, 0, len(slots))

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, slot := range slots {
		// PERF: a single multi-row insert would be faster for large batches
		result, err := tx.ExecContext(ctx, query,
			slot.ID, slot.PetID, slot.StartTime, slot.EndTime, slot.Status, slot.ReservedBy)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				a.logger.Error("postgres.insert_batch.rollback_failed", out.LogFields{
					"error": rbErr.Error(),
				})
			}
			return nil, fmt.Errorf("failed to insert slot batch: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				a.logger.Error("postgres.insert_batch.rollback_failed", out.LogFields{
					"error": rbErr.Error(),
				})
			}
			return nil, fmt.Errorf("failed to read rows affected: %w", err)
		}
		if rows > 0 {
			created = append(created, slot)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit slot batch: %w", err)
	}

	return created, nil
}

func (a *SlotStoreAdapter) GetByID(ctx context.Context, slotID uuid.UUID) (*domain.ReservationSlot, error) {
	const query = `SELECT ` + slotColumns + ` FROM reservation_slots WHERE id = $1`

	var slot domain.ReservationSlot
	err := a.db.GetContext(ctx, &slot, query, slotID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewError(domain.ErrSlotNotFound, "slot with id %s not found", slotID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slot: %w", err)
	}

	return &slot, nil
}

func (a *SlotStoreAdapter) List(ctx context.Context) ([]domain.ReservationSlot, error) {
	const query = `SELECT ` + slotColumns + ` FROM reservation_slots ORDER BY start_time ASC, pet_id ASC`
	return a.selectSlots(ctx, query)
}

func (a *SlotStoreAdapter) ListByStatus(ctx context.Context, status domain.SlotStatus) ([]domain.ReservationSlot, error) {
	const query = `SELECT ` + slotColumns + ` FROM reservation_slots WHERE status = $1 ORDER BY start_time ASC, pet_id ASC`
	return a.selectSlots(ctx, query, status)
}

func (a *SlotStoreAdapter) ListByPetID(ctx context.Context, petID int64) ([]domain.ReservationSlot, error) {
	const query = `SELECT ` + slotColumns + ` FROM reservation_slots WHERE pet_id = $1 ORDER BY start_time ASC`
	return a.selectSlots(ctx, query, petID)
}

func (a *SlotStoreAdapter) ListByReservedBy(ctx context.Context, username string) ([]domain.ReservationSlot, error) {
	const query = `SELECT ` + slotColumns + ` FROM reservation_slots WHERE reserved_by = $1 ORDER BY start_time ASC`
	return a.selectSlots(ctx, query, username)
}

func (a *SlotStoreAdapter) selectSlots(ctx context.Context, query string, args ...interface{}) ([]domain.ReservationSlot, error) {
	slots := make([]domain.ReservationSlot, 0)
	if err := a.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

func (a *SlotStoreAdapter) Delete(ctx context.Context, slotID uuid.UUID) error {
	const query = `DELETE FROM reservation_slots WHERE id = $1`

	result, err := a.db.ExecContext(ctx, query, slotID)
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewError(domain.ErrSlotNotFound, "slot with id %s not found", slotID)
	}

	return nil
}

func (a *SlotStoreAdapter) DeleteAll(ctx context.Context) (int64, error) {
	result, err := a.db.ExecContext(ctx, `DELETE FROM reservation_slots`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete slots: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	return rows, nil
}

// Reserve is the single-statement compare-and-set that guarantees
// at-most-one winner when callers race for the same slot: the status
// predicate and the update commit atomically on one row.
func (a *SlotStoreAdapter) Reserve(ctx context.Context, slotID uuid.UUID, username string) (*domain.ReservationSlot, error) {
	const query = `
		UPDATE reservation_slots
		SET status = $2, reserved_by = $3
		WHERE id = $1 AND status = $4
		RETURNING ` + slotColumns

	return a.compareAndSet(ctx, slotID, "slot is not available for reservation",
		query, slotID, domain.SlotStatusReserved, username, domain.SlotStatusAvailable)
}

// Cancel keeps reserved_by so the cancelled reservation stays attributable.
// The ownership predicate sits in the same statement as the status check so
// a concurrent cancel/reactivate/reserve cycle cannot outdate a caller's
// authorization between a read and the update.
func (a *SlotStoreAdapter) Cancel(ctx context.Context, slotID uuid.UUID, allowedOwner *string) (*domain.ReservationSlot, error) {
	const query = `
		UPDATE reservation_slots
		SET status = $2
		WHERE id = $1 AND status = $3 AND ($4::text IS NULL OR reserved_by = $4)
		RETURNING ` + slotColumns

	var slot domain.ReservationSlot
	err := a.db.GetContext(ctx, &slot, query,
		slotID, domain.SlotStatusCancelled, domain.SlotStatusReserved, allowedOwner)
	if errors.Is(err, sql.ErrNoRows) {
		// No row matched: the slot is gone, in another state, or held by
		// someone else.
		existing, getErr := a.GetByID(ctx, slotID)
		if getErr != nil {
			return nil, getErr
		}
		if existing.Status != domain.SlotStatusReserved {
			return nil, domain.NewError(domain.ErrSlotNotAvailable, "slot is not currently reserved")
		}
		return nil, domain.NewError(domain.ErrUnauthorizedOperation,
			"you are not authorized to cancel this reservation")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update slot status: %w", err)
	}

	return &slot, nil
}

func (a *SlotStoreAdapter) Reactivate(ctx context.Context, slotID uuid.UUID) (*domain.ReservationSlot, error) {
	const query = `
		UPDATE reservation_slots
		SET status = $2, reserved_by = NULL
		WHERE id = $1 AND status = $3
		RETURNING ` + slotColumns

	return a.compareAndSet(ctx, slotID, "slot is not cancelled",
		query, slotID, domain.SlotStatusAvailable, domain.SlotStatusCancelled)
}

func (a *SlotStoreAdapter) compareAndSet(ctx context.Context, slotID uuid.UUID, notAvailableMsg, query string, args ...interface{}) (*domain.ReservationSlot, error) {
	var slot domain.ReservationSlot
	err := a.db.GetContext(ctx, &slot, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		// No row matched: either the slot is gone or it is in another state.
		exists, existsErr := a.slotExists(ctx, slotID)
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, domain.NewError(domain.ErrSlotNotFound, "slot with id %s not found", slotID)
		}
		return nil, domain.NewError(domain.ErrSlotNotAvailable, "%s", notAvailableMsg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update slot status: %w", err)
	}

	return &slot, nil
}

func (a *SlotStoreAdapter) slotExists(ctx context.Context, slotID uuid.UUID) (bool, error) {
	var exists bool
	err := a.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM reservation_slots WHERE id = $1)`, slotID)
	if err != nil {
		return false, fmt.Errorf("failed to check slot existence: %w", err)
	}
	return exists, nil
}
