package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go-booking-core/internal/model"
	apperrors "go-booking-core/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	List(ctx context.Context) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error)

	// Transaction methods
	FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Event, error)
}

type EventRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &EventRepositoryImpl{
		pool: pool,
	}
}

const eventColumns = `id, organizer_id, title, description, price, capacity, starts_at, created_at, updated_at`

func scanEvent(row pgx.Row) (*model.Event, error) {
	var event model.Event
	err := row.Scan(
		&event.ID,
		&event.OrganizerID,
		&event.Title,
		&event.Description,
		&event.Price,
		&event.Capacity,
		&event.StartsAt,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	query := `
		INSERT INTO events (id, organizer_id, title, description, price, capacity, starts_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + eventColumns

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	created, err := scanEvent(r.pool.QueryRow(ctx, query,
		event.ID, event.OrganizerID, event.Title, event.Description,
		event.Price, event.Capacity, event.StartsAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return created, nil
}

func (r *EventRepositoryImpl) List(ctx context.Context) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY starts_at ASC
	`
	return r.queryEvents(ctx, query)
}

func (r *EventRepositoryImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE organizer_id = $1
		ORDER BY starts_at ASC
	`
	return r.queryEvents(ctx, query, organizerID)
}

func (r *EventRepositoryImpl) queryEvents(ctx context.Context, query string, args ...interface{}) ([]*model.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)

	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) FindByIDWithLock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
		FOR UPDATE
	`

	event, err := scanEvent(tx.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}

func (r *EventRepositoryImpl) Update(ctx context.Context, id uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	sets := []string{}
	args := []interface{}{}
	argPos := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}

	if params.Title != nil {
		addSet("title", *params.Title)
	}
	if params.Description != nil {
		addSet("description", *params.Description)
	}
	if params.Price != nil {
		addSet("price", *params.Price)
	}
	if params.Capacity != nil {
		addSet("capacity", *params.Capacity)
	}
	if params.StartsAt != nil {
		addSet("starts_at", *params.StartsAt)
	}

	if len(sets) == 0 {
		return nil, apperrors.ErrInvalidInput
	}

	addSet("updated_at", time.Now().UTC())
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE events
		SET %s
		WHERE id = $%d
		RETURNING `+eventColumns,
		strings.Join(sets, ", "), argPos)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}

	return event, nil
}
