package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/repositories"
	"dress_rental_backend/pkg/utils"

	"github.com/google/uuid"
)

// --- Rental DTOs ---

// CreateRentalRequest carries the fields of a new rental. Presence is checked by the
// service so the missing-fields error comes before any lookup.
type CreateRentalRequest struct {
	ClientID   string   `json:"client_id"`
	DressID    string   `json:"dress_id"`
	StartDate  string   `json:"start_date"` // YYYY-MM-DD or RFC3339
	EndDate    string   `json:"end_date"`
	TotalPrice *float64 `json:"total_price"` // Overrides the computed price
}

// UpdateRentalRequest is a partial update. Nil fields are left unchanged.
type UpdateRentalRequest struct {
	StartDate  *string  `json:"start_date"`
	EndDate    *string  `json:"end_date"`
	Status     *string  `json:"status"`
	DressID    *string  `json:"dress_id"`
	TotalPrice *float64 `json:"total_price"`
}

// DamageReportRequest closes a rental as damaged or lost.
type DamageReportRequest struct {
	RepairCost      *float64 `json:"repair_cost"`
	ReplacementCost *float64 `json:"replacement_cost"`
	Notes           *string  `json:"notes"`
	Status          *string  `json:"status"` // damaged (default) or lost
}

// --- RentalService Interface ---
type RentalService interface {
	CreateRental(ctx context.Context, req CreateRentalRequest) (*models.Rental, error)
	GetRentalByID(ctx context.Context, id string) (*models.Rental, error)
	GetRentals(ctx context.Context) ([]models.Rental, error)
	UpdateRental(ctx context.Context, id string, req UpdateRentalRequest) (*models.Rental, error)
	ReportDamage(ctx context.Context, id string, req DamageReportRequest) (*models.Rental, error)
	DeleteRental(ctx context.Context, id string) error
}

// --- rentalService Implementation ---
type rentalService struct {
	store  *repositories.Store
	pricer Pricer
	now    Clock
}

// NewRentalService creates the rental lifecycle manager. A nil clock means time.Now.
func NewRentalService(store *repositories.Store, pricer Pricer, now Clock) RentalService {
	if pricer == nil {
		pricer = PerDayPrice
	}
	if now == nil {
		now = time.Now
	}
	return &rentalService{store: store, pricer: pricer, now: now}
}

// dressAction is what a status transition does to the dress the rental holds.
type dressAction int

const (
	keepDress dressAction = iota
	releaseDress
)

// transition validates a status change and reports its effect on the held dress.
// Only an active rental holds its dress, so only leaving active releases it.
func transition(from, to models.RentalStatus) (dressAction, error) {
	if !models.IsValidRentalStatus(string(to)) {
		return keepDress, ErrInvalidStatus
	}
	if from.IsTerminal() {
		if to == models.RentalStatusActive {
			return keepDress, ErrRentalClosed
		}
		return keepDress, nil
	}
	if to.IsTerminal() {
		return releaseDress, nil
	}
	return keepDress, nil
}

func notFoundAs(err error, target error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return target
	}
	return err
}

func (s *rentalService) CreateRental(ctx context.Context, req CreateRentalRequest) (*models.Rental, error) {
	if utils.IsEmpty(req.ClientID) || utils.IsEmpty(req.DressID) ||
		utils.IsEmpty(req.StartDate) || utils.IsEmpty(req.EndDate) {
		return nil, ErrMissingFields
	}

	var created *models.Rental
	err := s.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		client, err := s.store.Clients.GetByID(ctx, req.ClientID)
		if err != nil {
			return notFoundAs(err, ErrClientNotFound)
		}
		dress, err := s.store.Dresses.GetByID(ctx, req.DressID)
		if err != nil {
			return notFoundAs(err, ErrDressNotFound)
		}
		if !dress.Available {
			return ErrDressUnavailable
		}

		start, err := parseDate(req.StartDate)
		if err != nil {
			return err
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return err
		}
		if err := validateRange(start, end, s.now()); err != nil {
			return err
		}

		price := s.pricer(dress, start, end)
		if req.TotalPrice != nil {
			if *req.TotalPrice < 0 {
				return ErrNegativeAmount
			}
			price = utils.RoundMoney(*req.TotalPrice)
		}

		// The availability check above is advisory; this conditional update decides the race.
		if err := s.store.Dresses.Lock(ctx, dress.ID); err != nil {
			if errors.Is(err, repositories.ErrDressUnavailable) {
				return ErrDressUnavailable
			}
			return notFoundAs(err, ErrDressNotFound)
		}
		dress.Available = false
		repositories.OnRollback(ctx, func(ctx context.Context) error {
			return s.store.Dresses.Release(ctx, dress.ID)
		})

		rental := &models.Rental{
			ID:          uuid.NewString(),
			ClientID:    client.ID,
			ClientName:  client.FullName,
			ClientEmail: client.Email,
			ClientPhone: client.Phone,
			DressID:     dress.ID,
			StartDate:   start,
			EndDate:     end,
			TotalPrice:  price,
			Status:      models.RentalStatusActive,
		}
		if err := s.store.Rentals.Create(ctx, rental); err != nil {
			return err
		}
		rental.Dress = dress
		created = rental
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Rental created", map[string]interface{}{"rental_id": created.ID, "dress_id": created.DressID, "total_price": created.TotalPrice})
	return created, nil
}

func (s *rentalService) GetRentalByID(ctx context.Context, id string) (*models.Rental, error) {
	rental, err := s.store.Rentals.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrRentalNotFound)
	}
	return rental, nil
}

func (s *rentalService) GetRentals(ctx context.Context) ([]models.Rental, error) {
	return s.store.Rentals.List(ctx)
}

func (s *rentalService) UpdateRental(ctx context.Context, id string, req UpdateRentalRequest) (*models.Rental, error) {
	var updated *models.Rental
	err := s.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		rental, err := s.store.Rentals.GetByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrRentalNotFound)
		}

		start, end := rental.StartDate, rental.EndDate
		datesChanged := false
		if !utils.IsEmpty(utils.DerefString(req.StartDate)) {
			if start, err = parseDate(*req.StartDate); err != nil {
				return err
			}
			datesChanged = true
		}
		if !utils.IsEmpty(utils.DerefString(req.EndDate)) {
			if end, err = parseDate(*req.EndDate); err != nil {
				return err
			}
			datesChanged = true
		}
		if err := validateRange(start, end, s.now()); err != nil {
			return err
		}

		nextStatus := rental.Status
		if !utils.IsEmpty(utils.DerefString(req.Status)) {
			nextStatus = models.RentalStatus(strings.TrimSpace(*req.Status))
		}
		action, err := transition(rental.Status, nextStatus)
		if err != nil {
			return err
		}

		dress, err := s.heldDress(ctx, rental)
		if err != nil {
			return err
		}

		dressChanged := false
		if req.DressID != nil && *req.DressID != "" && *req.DressID != rental.DressID {
			if rental.Status.IsTerminal() {
				return ErrRentalClosed
			}
			if dress, err = s.handOff(ctx, rental.DressID, *req.DressID); err != nil {
				return err
			}
			rental.DressID = dress.ID
			dressChanged = true
		}

		if req.TotalPrice != nil {
			if *req.TotalPrice < 0 {
				return ErrNegativeAmount
			}
			rental.TotalPrice = utils.RoundMoney(*req.TotalPrice)
		} else if datesChanged || dressChanged {
			rental.TotalPrice = s.pricer(dress, start, end)
		}

		rental.StartDate = start
		rental.EndDate = end
		rental.Status = nextStatus

		if action == releaseDress {
			if err := s.release(ctx, rental.DressID); err != nil {
				return err
			}
			dress.Available = true
		}

		if err := s.store.Rentals.Update(ctx, rental); err != nil {
			return rentalWriteError(err)
		}
		rental.Dress = dress
		updated = rental
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *rentalService) ReportDamage(ctx context.Context, id string, req DamageReportRequest) (*models.Rental, error) {
	status := models.RentalStatusDamaged
	if !utils.IsEmpty(utils.DerefString(req.Status)) {
		status = models.RentalStatus(strings.TrimSpace(*req.Status))
		if !status.IsDamageStatus() {
			return nil, ErrInvalidStatus
		}
	}

	var repairCost, replacementCost float64
	if req.RepairCost != nil {
		repairCost = *req.RepairCost
	}
	if req.ReplacementCost != nil {
		replacementCost = *req.ReplacementCost
	}
	if repairCost < 0 || replacementCost < 0 {
		return nil, ErrNegativeAmount
	}

	var reported *models.Rental
	err := s.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		rental, err := s.store.Rentals.GetByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrRentalNotFound)
		}
		if rental.Status != models.RentalStatusActive && rental.Status != models.RentalStatusCompleted {
			return ErrDamageNotAllowed
		}

		action, err := transition(rental.Status, status)
		if err != nil {
			return err
		}
		dress, err := s.heldDress(ctx, rental)
		if err != nil {
			return err
		}

		rental.Status = status
		rental.IsDamaged = true
		rental.RepairCost = utils.RoundMoney(repairCost)
		rental.ReplacementCost = utils.RoundMoney(replacementCost)
		if req.Notes != nil {
			rental.DamageNotes = strings.TrimSpace(*req.Notes)
		}

		if action == releaseDress {
			if err := s.release(ctx, rental.DressID); err != nil {
				return err
			}
			dress.Available = true
		}

		if err := s.store.Rentals.Update(ctx, rental); err != nil {
			return rentalWriteError(err)
		}
		rental.Dress = dress
		reported = rental
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Damage reported", map[string]interface{}{"rental_id": reported.ID, "status": reported.Status})
	return reported, nil
}

// DeleteRental removes the rental. An active rental frees its dress first.
func (s *rentalService) DeleteRental(ctx context.Context, id string) error {
	return s.store.Tx.RunInTx(ctx, func(ctx context.Context) error {
		rental, err := s.store.Rentals.GetByIDForUpdate(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrRentalNotFound)
		}
		if rental.Status == models.RentalStatusActive {
			if err := s.release(ctx, rental.DressID); err != nil {
				return err
			}
		}
		if err := s.store.Rentals.Delete(ctx, id); err != nil {
			return notFoundAs(err, ErrRentalNotFound)
		}
		return nil
	})
}

// rentalWriteError maps a failed rental write to the service error the caller sees.
func rentalWriteError(err error) error {
	if errors.Is(err, repositories.ErrStaleRecord) {
		return ErrRentalChanged
	}
	return notFoundAs(err, ErrRentalNotFound)
}

// heldDress returns the dress attached on read, loading it when the store did not join it.
func (s *rentalService) heldDress(ctx context.Context, rental *models.Rental) (*models.Dress, error) {
	if rental.Dress != nil {
		return rental.Dress, nil
	}
	dress, err := s.store.Dresses.GetByID(ctx, rental.DressID)
	if err != nil {
		return nil, notFoundAs(err, ErrDressNotFound)
	}
	return dress, nil
}

// handOff frees the current dress and locks the new one.
func (s *rentalService) handOff(ctx context.Context, currentID, nextID string) (*models.Dress, error) {
	next, err := s.store.Dresses.GetByID(ctx, nextID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNewDressNotUsable
		}
		return nil, err
	}
	if !next.Available {
		return nil, ErrNewDressNotUsable
	}

	if err := s.release(ctx, currentID); err != nil {
		return nil, err
	}
	if err := s.store.Dresses.Lock(ctx, next.ID); err != nil {
		if errors.Is(err, repositories.ErrDressUnavailable) || errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNewDressNotUsable
		}
		return nil, err
	}
	repositories.OnRollback(ctx, func(ctx context.Context) error {
		return s.store.Dresses.Release(ctx, next.ID)
	})
	next.Available = false
	return next, nil
}

// release frees a dress. A dress that is already available or no longer exists is not an error.
// If the unit of work fails later, the dress is locked again.
func (s *rentalService) release(ctx context.Context, dressID string) error {
	err := s.store.Dresses.Release(ctx, dressID)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.LogWarn("Released dress no longer exists", map[string]interface{}{"dress_id": dressID})
		return nil
	}
	if err != nil {
		return err
	}
	repositories.OnRollback(ctx, func(ctx context.Context) error {
		return s.store.Dresses.Lock(ctx, dressID)
	})
	return nil
}
