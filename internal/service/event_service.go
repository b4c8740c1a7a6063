package service

import (
	"context"

	"go-booking-core/internal/model"
	"go-booking-core/internal/repository"
	apperrors "go-booking-core/pkg/app_errors"

	"github.com/google/uuid"
)

type EventService interface {
	List(ctx context.Context) ([]*model.Event, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error)
	Create(ctx context.Context, organizerID uuid.UUID, req model.CreateEventRequest) (*model.Event, error)
	Update(ctx context.Context, id uuid.UUID, organizerID uuid.UUID, params model.UpdateEventParams) (*model.Event, error)
}

type EventServiceImpl struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo}
}

func (s *EventServiceImpl) List(ctx context.Context) ([]*model.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventServiceImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.Event, error) {
	return s.repo.ListByOrganizer(ctx, organizerID)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EventServiceImpl) Create(ctx context.Context, organizerID uuid.UUID, req model.CreateEventRequest) (*model.Event, error) {
	if req.Price.IsNegative() || req.Capacity < 1 {
		return nil, apperrors.ErrInvalidInput
	}

	return s.repo.Create(ctx, &model.Event{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Capacity:    req.Capacity,
		StartsAt:    req.StartsAt,
	})
}

func (s *EventServiceImpl) Update(ctx context.Context, id uuid.UUID, organizerID uuid.UUID, params model.UpdateEventParams) (*model.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != organizerID {
		return nil, apperrors.ErrNotAuthorized
	}
	if params.Price != nil && params.Price.IsNegative() {
		return nil, apperrors.ErrInvalidInput
	}

	return s.repo.Update(ctx, id, params)
}
