package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MarketplaceService/internal/domain"
	"github.com/m04kA/SMC-MarketplaceService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MarketplaceService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"customer_id",
	"worker_id",
	"service_type",
	"job_description",
	"scheduled_date",
	"scheduled_time",
	"estimated_duration",
	"status",
	"estimated_cost",
	"final_cost",
	"tip",
	"payment_status",
	"payment_method",
	"paid_at",
	"completion_photos",
	"worker_notes",
	"accepted_at",
	"rejected_at",
	"rejection_reason",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"work_finished_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование в статусе pending
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"worker_id",
			"service_type",
			"job_description",
			"scheduled_date",
			"scheduled_time",
			"estimated_duration",
			"status",
			"estimated_cost",
			"payment_status",
		).
		Values(
			b.CustomerID,
			b.WorkerID,
			b.ServiceType,
			b.JobDescription,
			b.ScheduledDate,
			b.ScheduledTime,
			b.EstimatedDuration,
			b.Status,
			b.EstimatedCost,
			b.PaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции блокирует строку (FOR UPDATE), чтобы смена статуса
// и резервирование слота выполнялись на свежем состоянии
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByUser получает бронирования пользователя в указанной роли
// Опционально фильтрует по статусу, сортировка - сначала новые
func (r *Repository) ListByUser(ctx context.Context, userID int64, role domain.BookingRole, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	partyColumn := "customer_id"
	if role == domain.RoleWorker {
		partyColumn = "worker_id"
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{partyColumn: userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveByWorkerAndDate получает активные бронирования мастера на дату
// Используется в проверках пересечений интервалов; внутри транзакции
// блокирует строки (FOR UPDATE), защищая reserve-then-commit от гонок
func (r *Repository) ListActiveByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statusStrings[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"worker_id": workerID}).
		Where(squirrel.Eq{"scheduled_date": date}).
		Where(squirrel.Eq{"status": statusStrings}).
		OrderBy("scheduled_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByWorkerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByWorkerAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveByWorkerAndDateRange получает активные бронирования мастера за период
func (r *Repository) ListActiveByWorkerAndDateRange(ctx context.Context, workerID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statusStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"worker_id": workerID}).
		Where(squirrel.GtOrEq{"scheduled_date": from}).
		Where(squirrel.LtOrEq{"scheduled_date": to}).
		Where(squirrel.Eq{"status": statusStrings}).
		OrderBy("scheduled_date ASC, scheduled_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByWorkerAndDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByWorkerAndDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ApplyTransition записывает новый статус и связанные с ребром поля
// Заполненные поля BookingUpdate попадают в SET, nil-поля не изменяются
func (r *Repository) ApplyTransition(ctx context.Context, id int64, upd domain.BookingUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", upd.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.AcceptedAt != nil {
		updateBuilder = updateBuilder.Set("accepted_at", *upd.AcceptedAt)
	}
	if upd.RejectedAt != nil {
		updateBuilder = updateBuilder.Set("rejected_at", *upd.RejectedAt)
	}
	if upd.CancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *upd.CancelledAt)
	}
	if upd.WorkFinishedAt != nil {
		updateBuilder = updateBuilder.Set("work_finished_at", *upd.WorkFinishedAt)
	}
	if upd.CompletedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *upd.CompletedAt)
	}
	if upd.PaidAt != nil {
		updateBuilder = updateBuilder.Set("paid_at", *upd.PaidAt)
	}
	if upd.RejectionReason != nil {
		updateBuilder = updateBuilder.Set("rejection_reason", *upd.RejectionReason)
	}
	if upd.CancellationReason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *upd.CancellationReason)
	}
	if upd.CancelledBy != nil {
		updateBuilder = updateBuilder.Set("cancelled_by", *upd.CancelledBy)
	}
	if upd.WorkerNotes != nil {
		updateBuilder = updateBuilder.Set("worker_notes", *upd.WorkerNotes)
	}
	if upd.FinalCost != nil {
		updateBuilder = updateBuilder.Set("final_cost", *upd.FinalCost)
	}
	if upd.Tip != nil {
		updateBuilder = updateBuilder.Set("tip", *upd.Tip)
	}
	if upd.CompletionPhotos != nil {
		updateBuilder = updateBuilder.Set("completion_photos", pq.Array(upd.CompletionPhotos))
	}
	if upd.PaymentStatus != nil {
		updateBuilder = updateBuilder.Set("payment_status", *upd.PaymentStatus)
	}
	if upd.PaymentMethod != nil {
		updateBuilder = updateBuilder.Set("payment_method", *upd.PaymentMethod)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ApplyTransition - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ApplyTransition - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ApplyTransition - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime
	var paymentMethod sql.NullString

	err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.WorkerID,
		&b.ServiceType,
		&b.JobDescription,
		&b.ScheduledDate,
		&b.ScheduledTime,
		&b.EstimatedDuration,
		&b.Status,
		&b.EstimatedCost,
		&b.FinalCost,
		&b.Tip,
		&b.PaymentStatus,
		&paymentMethod,
		&b.PaidAt,
		pq.Array(&b.CompletionPhotos),
		&b.WorkerNotes,
		&b.AcceptedAt,
		&b.RejectedAt,
		&b.RejectionReason,
		&b.CancelledBy,
		&b.CancellationReason,
		&b.CancelledAt,
		&b.WorkFinishedAt,
		&b.CompletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentMethod.Valid {
		method := domain.PaymentMethod(paymentMethod.String)
		b.PaymentMethod = &method
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
