package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Event struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	OrganizerID uuid.UUID       `json:"organizer_id" db:"organizer_id"`
	Title       string          `json:"title" db:"title"`
	Description *string         `json:"description,omitempty" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Capacity    int             `json:"capacity" db:"capacity"`
	StartsAt    time.Time       `json:"starts_at" db:"starts_at"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

type CreateEventRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Capacity    int             `json:"capacity" binding:"required,min=1"`
	StartsAt    time.Time       `json:"starts_at" binding:"required"`
}

type UpdateEventParams struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Capacity    *int             `json:"capacity"`
	StartsAt    *time.Time       `json:"starts_at"`
}
