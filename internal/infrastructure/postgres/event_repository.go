package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventhub/event-management-backend/internal/domain/entity"
	"github.com/eventhub/event-management-backend/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, title, description, start_datetime, end_datetime, location,
	max_attendees, ticket_price, image_url, status, category_id, organizer_id, created_at, updated_at`

// sortColumns whitelists API sort keys against real columns.
var sortColumns = map[string]string{
	"startDateTime": "start_datetime",
	"endDateTime":   "end_datetime",
	"createdAt":     "created_at",
	"title":         "title",
	"ticketPrice":   "ticket_price",
}

func orderClause(pr repository.PageRequest, def string) string {
	col, ok := sortColumns[pr.SortBy]
	if !ok {
		col = def
	}
	dir := "ASC"
	if strings.EqualFold(pr.SortDir, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", col, dir)
}

func limitOffset(pr repository.PageRequest) (int, int) {
	size := pr.Size
	if size <= 0 {
		size = 10
	}
	page := pr.Page
	if page < 0 {
		page = 0
	}
	return size, page * size
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, description, start_datetime, end_datetime, location,
			max_attendees, ticket_price, image_url, status, category_id, organizer_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`, e.Title, e.Description, e.StartDateTime, e.EndDateTime, e.Location,
		e.MaxAttendees, e.TicketPrice, e.ImageURL, e.Status, e.CategoryID, e.OrganizerID)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*entity.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET title = $1, description = $2, start_datetime = $3, end_datetime = $4, location = $5,
			max_attendees = $6, ticket_price = $7, image_url = $8, status = $9, category_id = $10,
			updated_at = now()
		WHERE id = $11
	`, e.Title, e.Description, e.StartDateTime, e.EndDateTime, e.Location,
		e.MaxAttendees, e.TicketPrice, e.ImageURL, e.Status, e.CategoryID, e.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) ListByStatus(ctx context.Context, status entity.EventStatus, pr repository.PageRequest) ([]entity.Event, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM events WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	size, offset := limitOffset(pr)
	q := `SELECT ` + eventColumns + ` FROM events WHERE status = $1 ` + orderClause(pr, "start_datetime") + ` LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, q, status, size, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events, err := collectEvents(rows)
	return events, total, err
}

func (r *EventRepository) ListUpcoming(ctx context.Context, pr repository.PageRequest) ([]entity.Event, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM events WHERE status = $1 AND start_datetime > now()`,
		entity.EventPublished).Scan(&total); err != nil {
		return nil, 0, err
	}
	size, offset := limitOffset(pr)
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE status = $1 AND start_datetime > now()
		ORDER BY start_datetime ASC LIMIT $2 OFFSET $3
	`, entity.EventPublished, size, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events, err := collectEvents(rows)
	return events, total, err
}

// Search is the SQL fallback used when Elasticsearch is not configured.
func (r *EventRepository) Search(ctx context.Context, keyword string, pr repository.PageRequest) ([]entity.Event, int64, error) {
	pattern := "%" + keyword + "%"
	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM events
		WHERE status = $1 AND (title ILIKE $2 OR description ILIKE $2 OR location ILIKE $2)
	`, entity.EventPublished, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}
	size, offset := limitOffset(pr)
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE status = $1 AND (title ILIKE $2 OR description ILIKE $2 OR location ILIKE $2)
		ORDER BY start_datetime ASC LIMIT $3 OFFSET $4
	`, entity.EventPublished, pattern, size, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	events, err := collectEvents(rows)
	return events, total, err
}

func (r *EventRepository) ListByOrganizer(ctx context.Context, organizerID int64) ([]entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events WHERE organizer_id = $1 ORDER BY created_at DESC
	`, organizerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.StartDateTime, &e.EndDateTime,
		&e.Location, &e.MaxAttendees, &e.TicketPrice, &e.ImageURL, &e.Status,
		&e.CategoryID, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func collectEvents(rows pgx.Rows) ([]entity.Event, error) {
	events := make([]entity.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

var _ repository.EventRepository = (*EventRepository)(nil)
