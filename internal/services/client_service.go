package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/repositories"
	"dress_rental_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Client DTOs ---
type CreateClientRequest struct {
	FullName   string `json:"full_name" binding:"required,min=3"`
	Phone      string `json:"phone" binding:"required,len=10,numeric"`
	Email      string `json:"email" binding:"required,email"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"omitempty,len=5,numeric"`
}

type UpdateClientRequest struct {
	FullName   *string `json:"full_name" binding:"omitempty,min=3"`
	Phone      *string `json:"phone" binding:"omitempty,len=10,numeric"`
	Email      *string `json:"email" binding:"omitempty,email"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postal_code" binding:"omitempty,len=5,numeric"`
}

// --- ClientService Interface ---
type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error)
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	GetClients(ctx context.Context, searchTerm *string) ([]models.Client, error)
	UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, id string) error
}

type clientService struct {
	clientRepo repositories.ClientRepository
}

// NewClientService creates a new instance of ClientService.
func NewClientService(repo repositories.ClientRepository) ClientService {
	return &clientService{clientRepo: repo}
}

var (
	phoneRegex      = regexp.MustCompile(`^[0-9]{10}$`)
	postalCodeRegex = regexp.MustCompile(`^[0-9]{5}$`)
)

func validateClient(client *models.Client) error {
	if len(strings.TrimSpace(client.FullName)) < 3 {
		return fmt.Errorf("%w: full name must be at least 3 characters", ErrValidation)
	}
	if !phoneRegex.MatchString(client.Phone) {
		return fmt.Errorf("%w: phone must be 10 digits", ErrValidation)
	}
	if !utils.IsValidEmail(client.Email) {
		return fmt.Errorf("%w: email format is invalid", ErrValidation)
	}
	if client.PostalCode != "" && !postalCodeRegex.MatchString(client.PostalCode) {
		return fmt.Errorf("%w: postal code must be 5 digits", ErrValidation)
	}
	return nil
}

// ensureEmailFree checks uniqueness ahead of the store constraint to return a clean conflict.
func (s *clientService) ensureEmailFree(ctx context.Context, email, clientID string) error {
	existing, err := s.clientRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing.ID != clientID {
		return ErrEmailExists
	}
	return nil
}

func mapDuplicate(err error, conflict error) error {
	if errors.Is(err, repositories.ErrDuplicateKey) {
		return conflict
	}
	return err
}

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (*models.Client, error) {
	client := &models.Client{
		ID:         uuid.NewString(),
		FullName:   strings.TrimSpace(req.FullName),
		Phone:      strings.TrimSpace(req.Phone),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Address:    strings.TrimSpace(req.Address),
		City:       strings.TrimSpace(req.City),
		State:      strings.TrimSpace(req.State),
		PostalCode: strings.TrimSpace(req.PostalCode),
	}
	if err := validateClient(client); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, client.Email, client.ID); err != nil {
		return nil, err
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, mapDuplicate(err, ErrEmailExists)
	}
	return client, nil
}

func (s *clientService) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrClientNotFound)
	}
	return client, nil
}

func (s *clientService) GetClients(ctx context.Context, searchTerm *string) ([]models.Client, error) {
	return s.clientRepo.List(ctx, searchTerm)
}

// UpdateClient edits the live record. Existing rentals keep the snapshot taken at creation.
func (s *clientService) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrClientNotFound)
	}

	if req.FullName != nil {
		client.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	emailChanged := false
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		emailChanged = email != client.Email
		client.Email = email
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.City != nil {
		client.City = strings.TrimSpace(*req.City)
	}
	if req.State != nil {
		client.State = strings.TrimSpace(*req.State)
	}
	if req.PostalCode != nil {
		client.PostalCode = strings.TrimSpace(*req.PostalCode)
	}

	if err := validateClient(client); err != nil {
		return nil, err
	}
	if emailChanged {
		if err := s.ensureEmailFree(ctx, client.Email, client.ID); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, mapDuplicate(err, ErrEmailExists)
	}
	return client, nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrClientNotFound)
	}
	return nil
}
