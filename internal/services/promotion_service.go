package services

import (
	"context"
	"fmt"
	"strings"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/repositories"

	"github.com/google/uuid"
)

// --- Promotion DTOs ---
type CreatePromotionRequest struct {
	Title       string `json:"title" binding:"required,min=3"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Description string `json:"description" binding:"required,min=10"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Inactive Finished"`
}

type UpdatePromotionRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=3"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description" binding:"omitempty,min=10"`
	Status      *string `json:"status" binding:"omitempty,oneof=Active Inactive Finished"`
}

// --- PromotionService Interface ---
type PromotionService interface {
	CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*models.Promotion, error)
	GetPromotionByID(ctx context.Context, id string) (*models.Promotion, error)
	GetPromotions(ctx context.Context) ([]models.Promotion, error)
	UpdatePromotion(ctx context.Context, id string, req UpdatePromotionRequest) (*models.Promotion, error)
	DeletePromotion(ctx context.Context, id string) error
}

type promotionService struct {
	promotionRepo repositories.PromotionRepository
}

// NewPromotionService creates a new instance of PromotionService.
func NewPromotionService(repo repositories.PromotionRepository) PromotionService {
	return &promotionService{promotionRepo: repo}
}

func validatePromotion(p *models.Promotion) error {
	if len(strings.TrimSpace(p.Title)) < 3 {
		return fmt.Errorf("%w: title must be at least 3 characters", ErrValidation)
	}
	if len(strings.TrimSpace(p.Description)) < 10 {
		return fmt.Errorf("%w: description must be at least 10 characters", ErrValidation)
	}
	if p.StartDate.After(p.EndDate) {
		return ErrDateOrder
	}
	if !models.IsValidPromotionStatus(string(p.Status)) {
		return ErrInvalidStatus
	}
	return nil
}

func (s *promotionService) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*models.Promotion, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	promotion := &models.Promotion{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		StartDate:   start,
		EndDate:     end,
		Description: strings.TrimSpace(req.Description),
		Status:      models.PromotionStatusActive,
	}
	if req.Status != "" {
		promotion.Status = models.PromotionStatus(req.Status)
	}
	if err := validatePromotion(promotion); err != nil {
		return nil, err
	}

	if err := s.promotionRepo.Create(ctx, promotion); err != nil {
		return nil, err
	}
	return promotion, nil
}

func (s *promotionService) GetPromotionByID(ctx context.Context, id string) (*models.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrPromotionNotFound)
	}
	return promotion, nil
}

func (s *promotionService) GetPromotions(ctx context.Context) ([]models.Promotion, error) {
	return s.promotionRepo.List(ctx)
}

func (s *promotionService) UpdatePromotion(ctx context.Context, id string, req UpdatePromotionRequest) (*models.Promotion, error) {
	promotion, err := s.promotionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrPromotionNotFound)
	}

	if req.Title != nil {
		promotion.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		promotion.Description = strings.TrimSpace(*req.Description)
	}
	if req.StartDate != nil {
		if promotion.StartDate, err = parseDate(*req.StartDate); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if promotion.EndDate, err = parseDate(*req.EndDate); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		promotion.Status = models.PromotionStatus(*req.Status)
	}
	if err := validatePromotion(promotion); err != nil {
		return nil, err
	}

	if err := s.promotionRepo.Update(ctx, promotion); err != nil {
		return nil, notFoundAs(err, ErrPromotionNotFound)
	}
	return promotion, nil
}

func (s *promotionService) DeletePromotion(ctx context.Context, id string) error {
	if err := s.promotionRepo.Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrPromotionNotFound)
	}
	return nil
}
