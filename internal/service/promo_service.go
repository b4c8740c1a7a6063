package service

import (
	"context"

	"go-booking-core/internal/model"
	"go-booking-core/internal/repository"
	apperrors "go-booking-core/pkg/app_errors"

	"github.com/google/uuid"
)

type PromoService interface {
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.PromoCode, error)
	GetByID(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) (*model.PromoCode, error)
	Create(ctx context.Context, organizerID uuid.UUID, req model.CreatePromoCodeRequest) (*model.PromoCode, error)
	Update(ctx context.Context, id uuid.UUID, organizerID uuid.UUID, params model.UpdatePromoCodeParams) (*model.PromoCode, error)
	Deactivate(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) (*model.PromoCode, error)
}

type PromoServiceImpl struct {
	repo repository.PromoRepository
}

func NewPromoService(repo repository.PromoRepository) PromoService {
	return &PromoServiceImpl{repo: repo}
}

func (s *PromoServiceImpl) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*model.PromoCode, error) {
	return s.repo.ListByOrganizer(ctx, organizerID)
}

func (s *PromoServiceImpl) GetByID(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) (*model.PromoCode, error) {
	promo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promo.OrganizerID != organizerID {
		return nil, apperrors.ErrPromoNotFound
	}

	return promo, nil
}

func (s *PromoServiceImpl) Create(ctx context.Context, organizerID uuid.UUID, req model.CreatePromoCodeRequest) (*model.PromoCode, error) {
	if !req.DiscountType.IsValid() || req.DiscountValue.IsNegative() {
		return nil, apperrors.ErrInvalidInput
	}
	if req.ValidUntil.Before(req.ValidFrom) || req.UsageLimit < 0 {
		return nil, apperrors.ErrInvalidInput
	}
	// max_discount 只對 percentage 有意義
	if req.MaxDiscount != nil && req.DiscountType != model.DiscountTypePercentage {
		return nil, apperrors.ErrInvalidInput
	}

	return s.repo.Create(ctx, &model.PromoCode{
		ID:            uuid.New(),
		OrganizerID:   organizerID,
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		MinPurchase:   req.MinPurchase,
		MaxDiscount:   req.MaxDiscount,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
		UsageLimit:    req.UsageLimit,
		EventID:       req.EventID,
		IsActive:      true,
	})
}

func (s *PromoServiceImpl) Update(ctx context.Context, id uuid.UUID, organizerID uuid.UUID, params model.UpdatePromoCodeParams) (*model.PromoCode, error) {
	if _, err := s.GetByID(ctx, id, organizerID); err != nil {
		return nil, err
	}
	if params.DiscountValue != nil && params.DiscountValue.IsNegative() {
		return nil, apperrors.ErrInvalidInput
	}

	return s.repo.Update(ctx, id, params)
}

func (s *PromoServiceImpl) Deactivate(ctx context.Context, id uuid.UUID, organizerID uuid.UUID) (*model.PromoCode, error) {
	if _, err := s.GetByID(ctx, id, organizerID); err != nil {
		return nil, err
	}

	inactive := false
	return s.repo.Update(ctx, id, model.UpdatePromoCodeParams{IsActive: &inactive})
}
