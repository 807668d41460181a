package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	"github.com/eventhub/event-management-backend/internal/domain/repository"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `id, event_id, user_id, number_of_tickets, total_amount, status, booking_date, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO bookings (event_id, user_id, number_of_tickets, total_amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, booking_date, updated_at
	`, b.EventID, b.UserID, b.NumberOfTickets, b.TotalAmount, b.Status)

	return row.Scan(&b.ID, &b.BookingDate, &b.UpdatedAt)
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*entity.Booking, error) {
	b := &entity.Booking{}
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	if err := scanBooking(row, b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *entity.Booking) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE bookings SET status = $1, updated_at = now() WHERE id = $2
	`, b.Status, b.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) List(ctx context.Context, pr repository.PageRequest) ([]entity.Booking, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM bookings`).Scan(&total); err != nil {
		return nil, 0, err
	}
	size, offset := limitOffset(pr)
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings ORDER BY booking_date DESC LIMIT $1 OFFSET $2
	`, size, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	bookings, err := collectBookings(rows)
	return bookings, total, err
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE user_id = $1 ORDER BY booking_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *BookingRepository) ListByEvent(ctx context.Context, eventID int64) ([]entity.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+` FROM bookings WHERE event_id = $1 ORDER BY booking_date DESC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func scanBooking(row pgx.Row, b *entity.Booking) error {
	return row.Scan(&b.ID, &b.EventID, &b.UserID, &b.NumberOfTickets,
		&b.TotalAmount, &b.Status, &b.BookingDate, &b.UpdatedAt)
}

func collectBookings(rows pgx.Rows) ([]entity.Booking, error) {
	bookings := make([]entity.Booking, 0)
	for rows.Next() {
		var b entity.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ repository.BookingRepository = (*BookingRepository)(nil)
