package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dress_rental_backend/internal/models"
)

// RentalRepository defines the interface for rental-related database operations.
type RentalRepository interface {
	Create(ctx context.Context, rental *models.Rental) error
	GetByID(ctx context.Context, id string) (*models.Rental, error) // Joins the dress
	// GetByIDForUpdate is GetByID that also holds the rental row until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (*models.Rental, error)
	List(ctx context.Context) ([]models.Rental, error)              // Joins the dress, newest first
	Update(ctx context.Context, rental *models.Rental) error
	Delete(ctx context.Context, id string) error
}

type rentalRepository struct {
	db *sql.DB
}

// NewRentalRepository creates a new instance of RentalRepository.
func NewRentalRepository(db *sql.DB) RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `r.id, r.client_id, r.client_name, r.client_email, r.client_phone, r.dress_id,
	r.start_date, r.end_date, r.total_price, r.status, r.is_damaged, r.repair_cost, r.replacement_cost,
	r.damage_notes, r.created_at, r.updated_at`

const joinedDressColumns = `d.id, d.name, d.size, d.color, d.brand, d.collection, d.purchase_price,
	d.sale_price, d.rental_price, d.supplier, d.available, d.created_at, d.updated_at`

const rentalSelect = `SELECT ` + rentalColumns + `, ` + joinedDressColumns + `
	FROM rentals r JOIN dresses d ON d.id = r.dress_id`

// scanRentalRow scans a rental row together with its joined dress.
func scanRentalRow(row scanner) (*models.Rental, error) {
	var rental models.Rental
	var dress models.Dress
	var status, size string

	err := row.Scan(
		&rental.ID, &rental.ClientID, &rental.ClientName, &rental.ClientEmail, &rental.ClientPhone, &rental.DressID,
		&rental.StartDate, &rental.EndDate, &rental.TotalPrice, &status, &rental.IsDamaged, &rental.RepairCost,
		&rental.ReplacementCost, &rental.DamageNotes, &rental.CreatedAt, &rental.UpdatedAt,
		&dress.ID, &dress.Name, &size, &dress.Color, &dress.Brand, &dress.Collection, &dress.PurchasePrice,
		&dress.SalePrice, &dress.RentalPrice, &dress.Supplier, &dress.Available, &dress.CreatedAt, &dress.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rental.Status = models.RentalStatus(status)
	dress.Size = models.DressSize(size)
	rental.Dress = &dress
	return &rental, nil
}

// Create inserts a new rental.
func (r *rentalRepository) Create(ctx context.Context, rental *models.Rental) error {
	query := `INSERT INTO rentals (id, client_id, client_name, client_email, client_phone, dress_id,
	            start_date, end_date, total_price, status, is_damaged, repair_cost, replacement_cost,
	            damage_notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	currentTime := time.Now()
	if rental.CreatedAt.IsZero() {
		rental.CreatedAt = currentTime
	}
	rental.UpdatedAt = currentTime

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		rental.ID, rental.ClientID, rental.ClientName, rental.ClientEmail, rental.ClientPhone, rental.DressID,
		rental.StartDate, rental.EndDate, rental.TotalPrice, string(rental.Status), rental.IsDamaged,
		rental.RepairCost, rental.ReplacementCost, rental.DamageNotes, rental.CreatedAt, rental.UpdatedAt,
	)
	if err != nil {
		return mapPQError(err, "creating rental")
	}
	return nil
}

// GetByID retrieves a rental by its ID.
func (r *rentalRepository) GetByID(ctx context.Context, id string) (*models.Rental, error) {
	rental, err := scanRentalRow(executorFrom(ctx, r.db).QueryRowContext(ctx, rentalSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting rental by ID %s: %v", ErrDatabaseError, id, err)
	}
	return rental, nil
}

// GetByIDForUpdate locks the rental row so concurrent lifecycle changes on it serialize.
// The dress row is not locked; Lock and Release guard it on their own.
func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Rental, error) {
	rental, err := scanRentalRow(executorFrom(ctx, r.db).QueryRowContext(ctx, rentalSelect+` WHERE r.id = $1 FOR UPDATE OF r`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: locking rental %s: %v", ErrDatabaseError, id, err)
	}
	return rental, nil
}

// List retrieves all rentals.
func (r *rentalRepository) List(ctx context.Context) ([]models.Rental, error) {
	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, rentalSelect+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying rentals: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	rentals := []models.Rental{}
	for rows.Next() {
		rental, err := scanRentalRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning rental: %v", ErrDatabaseError, err)
		}
		rentals = append(rentals, *rental)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rental rows: %v", ErrDatabaseError, err)
	}
	return rentals, nil
}

// Update writes every mutable field of the rental. The client snapshot is left untouched.
func (r *rentalRepository) Update(ctx context.Context, rental *models.Rental) error {
	query := `UPDATE rentals SET
	            dress_id = $1, start_date = $2, end_date = $3, total_price = $4, status = $5,
	            is_damaged = $6, repair_cost = $7, replacement_cost = $8, damage_notes = $9, updated_at = $10
	          WHERE id = $11`

	rental.UpdatedAt = time.Now()
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		rental.DressID, rental.StartDate, rental.EndDate, rental.TotalPrice, string(rental.Status),
		rental.IsDamaged, rental.RepairCost, rental.ReplacementCost, rental.DamageNotes, rental.UpdatedAt,
		rental.ID,
	)
	if err != nil {
		return mapPQError(err, "updating rental "+rental.ID)
	}
	return checkAffected(result, "updating rental "+rental.ID)
}

// Delete removes a rental.
func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return mapPQError(err, "deleting rental "+id)
	}
	return checkAffected(result, "deleting rental "+id)
}
