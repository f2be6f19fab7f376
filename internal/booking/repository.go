package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)

	// ListActive returns the non-cancelled bookings for the resource whose
	// occupied interval intersects [start, end), for the conflict checker.
	ListActive(ctx context.Context, resourceID string, start, end time.Time) ([]*Booking, error)

	// ListByRequester returns the requester's non-cancelled bookings ordered
	// by (date ASC, start ASC).
	ListByRequester(ctx context.Context, email string) ([]*Booking, error)

	// List returns all bookings (admin view) ordered by created_at DESC.
	List(ctx context.Context, filter Filter) ([]*Booking, error)

	// UpdateStatus performs a compare-and-set: the row is updated only when
	// its current status equals expected. Returns ErrNotFound if the id does
	// not exist, ErrStatusConflict if the precondition failed.
	UpdateStatus(ctx context.Context, id string, expected, next Status, fields StatusFields) error

	// CountByStatus groups bookings by status; an empty email counts the
	// whole table, otherwise only that requester's bookings.
	CountByStatus(ctx context.Context, requesterEmail string) (map[Status]int, error)

	// CountByResourceStatus is the per-venue rollup for admin statistics.
	CountByResourceStatus(ctx context.Context) ([]ResourceBreakdown, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"id", "resource_id", "requester_email", "date", "start_at", "end_at",
	"check_in", "check_out", "status", "attributes", "admin_notes",
	"decided_by", "decided_at", "created_at", "updated_at", "cancelled_at",
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	if err := row.Scan(
		&b.ID, &b.ResourceID, &b.RequesterEmail, &b.Date, &b.StartAt, &b.EndAt,
		&b.CheckIn, &b.CheckOut, &b.Status, &b.Attributes, &b.AdminNotes,
		&b.DecidedBy, &b.DecidedAt, &b.CreatedAt, &b.UpdatedAt, &b.CancelledAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns(
			"resource_id", "requester_email", "date", "start_at", "end_at",
			"check_in", "check_out", "status", "attributes",
		).
		Values(
			b.ResourceID, b.RequesterEmail, b.Date, b.StartAt, b.EndAt,
			b.CheckIn, b.CheckOut, b.Status, b.Attributes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return ErrStorage.WithCause(err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, ErrStorage.WithCause(err)
	}
	return b, nil
}

func (r *pgxRepository) ListActive(ctx context.Context, resourceID string, start, end time.Time) ([]*Booking, error) {
	// Uses the (resource_id, date, status) index; the interval comparison is
	// the half-open overlap test, so adjacent slots do not match.
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) ListByRequester(ctx context.Context, email string) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings").
		Where(squirrel.Eq{"requester_email": email}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		OrderBy("date ASC", "start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list by requester query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Select(bookingColumns...).
		From("public.bookings").
		OrderBy("created_at DESC")

	if filter.ResourceID != "" {
		q = q.Where(squirrel.Eq{"resource_id": filter.ResourceID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}
	return r.queryBookings(ctx, query, args)
}

func (r *pgxRepository) queryBookings(ctx context.Context, query string, args []any) ([]*Booking, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, expected, next Status, fields StatusFields) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Update("public.bookings").
		Set("status", next).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": expected})

	if fields.AdminNotes != nil {
		q = q.Set("admin_notes", *fields.AdminNotes)
	}
	if fields.DecidedBy != nil {
		q = q.Set("decided_by", *fields.DecidedBy)
	}
	if fields.DecidedAt != nil {
		q = q.Set("decided_at", *fields.DecidedAt)
	}
	if fields.CancelledAt != nil {
		q = q.Set("cancelled_at", *fields.CancelledAt)
	}
	if fields.ClearCancelledAt {
		q = q.Set("cancelled_at", nil)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return ErrStorage.WithCause(err)
	}
	if ct.RowsAffected() == 0 {
		// Zero rows means either the id is gone or the precondition failed;
		// the caller needs to tell those apart.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusConflict
	}
	return nil
}

func (r *pgxRepository) CountByStatus(ctx context.Context, requesterEmail string) (map[Status]int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	q := psql.Select("status", "count(*)").
		From("public.bookings").
		GroupBy("status")
	if requesterEmail != "" {
		q = q.Where(squirrel.Eq{"requester_email": requesterEmail})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count by status query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var s Status
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, fmt.Errorf("scan status count failed: %w", err)
		}
		counts[s] = n
	}
	return counts, rows.Err()
}

func (r *pgxRepository) CountByResourceStatus(ctx context.Context) ([]ResourceBreakdown, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("resource_id", "status", "count(*)").
		From("public.bookings").
		GroupBy("resource_id", "status").
		OrderBy("resource_id", "status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count by resource query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, ErrStorage.WithCause(err)
	}
	defer rows.Close()

	var breakdown []ResourceBreakdown
	for rows.Next() {
		var row ResourceBreakdown
		if err := rows.Scan(&row.ResourceID, &row.Status, &row.Count); err != nil {
			return nil, fmt.Errorf("scan resource count failed: %w", err)
		}
		breakdown = append(breakdown, row)
	}
	return breakdown, rows.Err()
}
