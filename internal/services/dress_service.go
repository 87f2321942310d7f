package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/repositories"
	"dress_rental_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Dress DTOs ---
type CreateDressRequest struct {
	Name          string  `json:"name" binding:"required,min=2"`
	Size          string  `json:"size" binding:"required,dress_size"`
	Color         string  `json:"color"`
	Brand         string  `json:"brand"`
	Collection    string  `json:"collection"`
	PurchasePrice float64 `json:"purchase_price" binding:"gte=0"`
	SalePrice     float64 `json:"sale_price" binding:"gte=0"`
	RentalPrice   float64 `json:"rental_price" binding:"gte=0"`
	Supplier      string  `json:"supplier"`
}

// UpdateDressRequest has no availability field; only the rental lifecycle changes it.
type UpdateDressRequest struct {
	Name          *string  `json:"name" binding:"omitempty,min=2"`
	Size          *string  `json:"size" binding:"omitempty,dress_size"`
	Color         *string  `json:"color"`
	Brand         *string  `json:"brand"`
	Collection    *string  `json:"collection"`
	PurchasePrice *float64 `json:"purchase_price" binding:"omitempty,gte=0"`
	SalePrice     *float64 `json:"sale_price" binding:"omitempty,gte=0"`
	RentalPrice   *float64 `json:"rental_price" binding:"omitempty,gte=0"`
	Supplier      *string  `json:"supplier"`
}

// DressQuery holds the raw filter query parameters. Empty values impose no constraint.
type DressQuery struct {
	Size       string `form:"size"`
	Brand      string `form:"brand"`
	Collection string `form:"collection"`
	Supplier   string `form:"supplier"`
	Available  string `form:"available"`
}

// --- DressService Interface ---
type DressService interface {
	CreateDress(ctx context.Context, req CreateDressRequest) (*models.Dress, error)
	GetDressByID(ctx context.Context, id string) (*models.Dress, error)
	GetDresses(ctx context.Context, query DressQuery) ([]models.Dress, error)
	UpdateDress(ctx context.Context, id string, req UpdateDressRequest) (*models.Dress, error)
	DeleteDress(ctx context.Context, id string) error
}

type dressService struct {
	dressRepo repositories.DressRepository
}

// NewDressService creates a new instance of DressService.
func NewDressService(dressRepo repositories.DressRepository) DressService {
	return &dressService{dressRepo: dressRepo}
}

// ParseDressQuery turns query parameters into a filter.
// available must be the literal "true" or "false".
func ParseDressQuery(query DressQuery) (models.DressFilter, error) {
	var filter models.DressFilter
	optional := func(value string) *string {
		value = strings.TrimSpace(value)
		if value == "" {
			return nil
		}
		return &value
	}

	filter.Size = optional(query.Size)
	filter.Brand = optional(query.Brand)
	filter.Collection = optional(query.Collection)
	filter.Supplier = optional(query.Supplier)

	if filter.Size != nil && !models.IsValidDressSize(*filter.Size) {
		return filter, ErrInvalidSize
	}
	if available := optional(query.Available); available != nil {
		value, err := utils.ParseBoolLiteral(*available)
		if err != nil {
			return filter, fmt.Errorf("%w: available: %v", ErrInvalidFilter, err)
		}
		filter.Available = &value
	}
	return filter, nil
}

func validatePrices(prices ...float64) error {
	for _, price := range prices {
		if price < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

func (s *dressService) CreateDress(ctx context.Context, req CreateDressRequest) (*models.Dress, error) {
	if !models.IsValidDressSize(req.Size) {
		return nil, ErrInvalidSize
	}
	if err := validatePrices(req.PurchasePrice, req.SalePrice, req.RentalPrice); err != nil {
		return nil, err
	}

	dress := &models.Dress{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Size:          models.DressSize(req.Size),
		Color:         strings.TrimSpace(req.Color),
		Brand:         strings.TrimSpace(req.Brand),
		Collection:    strings.TrimSpace(req.Collection),
		PurchasePrice: utils.RoundMoney(req.PurchasePrice),
		SalePrice:     utils.RoundMoney(req.SalePrice),
		RentalPrice:   utils.RoundMoney(req.RentalPrice),
		Supplier:      strings.TrimSpace(req.Supplier),
		Available:     true,
	}
	if err := s.dressRepo.Create(ctx, dress); err != nil {
		return nil, err
	}
	return dress, nil
}

func (s *dressService) GetDressByID(ctx context.Context, id string) (*models.Dress, error) {
	dress, err := s.dressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrDressNotFound)
	}
	return dress, nil
}

func (s *dressService) GetDresses(ctx context.Context, query DressQuery) ([]models.Dress, error) {
	filter, err := ParseDressQuery(query)
	if err != nil {
		return nil, err
	}
	return s.dressRepo.List(ctx, filter)
}

func (s *dressService) UpdateDress(ctx context.Context, id string, req UpdateDressRequest) (*models.Dress, error) {
	dress, err := s.dressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrDressNotFound)
	}

	if req.Name != nil {
		dress.Name = strings.TrimSpace(*req.Name)
	}
	if req.Size != nil {
		if !models.IsValidDressSize(*req.Size) {
			return nil, ErrInvalidSize
		}
		dress.Size = models.DressSize(*req.Size)
	}
	if req.Color != nil {
		dress.Color = strings.TrimSpace(*req.Color)
	}
	if req.Brand != nil {
		dress.Brand = strings.TrimSpace(*req.Brand)
	}
	if req.Collection != nil {
		dress.Collection = strings.TrimSpace(*req.Collection)
	}
	if req.PurchasePrice != nil {
		dress.PurchasePrice = utils.RoundMoney(*req.PurchasePrice)
	}
	if req.SalePrice != nil {
		dress.SalePrice = utils.RoundMoney(*req.SalePrice)
	}
	if req.RentalPrice != nil {
		dress.RentalPrice = utils.RoundMoney(*req.RentalPrice)
	}
	if req.Supplier != nil {
		dress.Supplier = strings.TrimSpace(*req.Supplier)
	}
	if err := validatePrices(dress.PurchasePrice, dress.SalePrice, dress.RentalPrice); err != nil {
		return nil, err
	}

	if err := s.dressRepo.Update(ctx, dress); err != nil {
		return nil, notFoundAs(err, ErrDressNotFound)
	}
	return dress, nil
}

// DeleteDress refuses while the dress is rented or still referenced by rental history.
func (s *dressService) DeleteDress(ctx context.Context, id string) error {
	dress, err := s.dressRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, ErrDressNotFound)
	}
	if !dress.Available {
		return ErrDressInUse
	}
	if err := s.dressRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrReferenced) {
			return ErrDressInUse
		}
		return notFoundAs(err, ErrDressNotFound)
	}
	return nil
}
