package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MarketplaceService/pkg/types"
)

var slotColumns = []string{
	"id",
	"worker_id",
	"date",
	"start_time",
	"end_time",
	"kind",
	"booking_id",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами недоступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает слот недоступности
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns(
			"worker_id",
			"date",
			"start_time",
			"end_time",
			"kind",
			"booking_id",
			"note",
		).
		Values(
			slot.WorkerID,
			slot.Date,
			slot.StartTime,
			slot.EndTime,
			slot.Kind,
			slot.BookingID,
			slot.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// ListByWorkerAndDate получает все слоты мастера на дату
// Внутри транзакции блокирует строки (FOR UPDATE) - защита reserve-then-commit
func (r *Repository) ListByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("availability_slots").
		Where(squirrel.Eq{"worker_id": workerID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorkerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorkerAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListByWorkerAndDateRange получает слоты мастера за период
func (r *Repository) ListByWorkerAndDateRange(ctx context.Context, workerID int64, from, to time.Time) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("availability_slots").
		Where(squirrel.Eq{"worker_id": workerID}).
		Where(squirrel.GtOrEq{"date": from}).
		Where(squirrel.LtOrEq{"date": to}).
		OrderBy("date ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorkerAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorkerAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ExistsExact проверяет наличие слота с точно таким же интервалом
// Используется как idempotency guard при ручной блокировке
func (r *Repository) ExistsExact(ctx context.Context, workerID int64, date time.Time, start, end types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("availability_slots").
		Where(squirrel.Eq{"worker_id": workerID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"start_time": start}).
		Where(squirrel.Eq{"end_time": end}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsExact - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsExact - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// DeleteBlocked удаляет ручную блокировку мастера
// Возвращает ErrSlotNotFound, если слот не существует, принадлежит другому
// мастеру или имеет kind = booked (такие слоты снимаются только отменой бронирования)
func (r *Repository) DeleteBlocked(ctx context.Context, workerID, slotID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"id": slotID}).
		Where(squirrel.Eq{"worker_id": workerID}).
		Where(squirrel.Eq{"kind": domain.SlotBlocked}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlocked - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteByBookingID удаляет booked-слот, принадлежащий бронированию
// Идемпотентна: отсутствие слота не является ошибкой
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_slots").
		Where(squirrel.Eq{"booking_id": bookingID}).
		Where(squirrel.Eq{"kind": domain.SlotBooked}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func scanSlots(rows *sql.Rows) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)

	for rows.Next() {
		var slot domain.AvailabilitySlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.WorkerID,
			&slot.Date,
			&slot.StartTime,
			&slot.EndTime,
			&slot.Kind,
			&slot.BookingID,
			&slot.Note,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
