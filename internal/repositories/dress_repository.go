package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"dress_rental_backend/internal/models"
)

// DressRepository defines the interface for dress-related database operations.
type DressRepository interface {
	GetByID(ctx context.Context, id string) (*models.Dress, error)
	List(ctx context.Context, filter models.DressFilter) ([]models.Dress, error)
	Create(ctx context.Context, dress *models.Dress) error
	// Update writes the descriptive fields. Available is never written here.
	Update(ctx context.Context, dress *models.Dress) error
	Delete(ctx context.Context, id string) error
	// Lock flips available to false only if it is currently true.
	// Returns ErrDressUnavailable if another rental holds the dress, ErrNotFound if it does not exist.
	Lock(ctx context.Context, id string) error
	// Release flips available to true. Releasing an available dress is a no-op.
	Release(ctx context.Context, id string) error
}

type dressRepository struct {
	db *sql.DB
}

// NewDressRepository creates a new instance of DressRepository.
func NewDressRepository(db *sql.DB) DressRepository {
	return &dressRepository{db: db}
}

const dressColumns = `id, name, size, color, brand, collection, purchase_price, sale_price, rental_price, supplier, available, created_at, updated_at`

func scanDress(row scanner) (*models.Dress, error) {
	var d models.Dress
	var size string
	err := row.Scan(&d.ID, &d.Name, &size, &d.Color, &d.Brand, &d.Collection,
		&d.PurchasePrice, &d.SalePrice, &d.RentalPrice, &d.Supplier, &d.Available,
		&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.Size = models.DressSize(size)
	return &d, nil
}

// GetByID retrieves a dress by its ID.
func (r *dressRepository) GetByID(ctx context.Context, id string) (*models.Dress, error) {
	query := `SELECT ` + dressColumns + ` FROM dresses WHERE id = $1`
	dress, err := scanDress(executorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting dress by ID %s: %v", ErrDatabaseError, id, err)
	}
	return dress, nil
}

// List retrieves the dresses matching every supplied filter.
func (r *dressRepository) List(ctx context.Context, filter models.DressFilter) ([]models.Dress, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + dressColumns + ` FROM dresses`)

	var conditions []string
	var args []interface{}
	addCondition := func(column string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if filter.Size != nil {
		addCondition("size", *filter.Size)
	}
	if filter.Brand != nil {
		addCondition("brand", *filter.Brand)
	}
	if filter.Collection != nil {
		addCondition("collection", *filter.Collection)
	}
	if filter.Supplier != nil {
		addCondition("supplier", *filter.Supplier)
	}
	if filter.Available != nil {
		addCondition("available", *filter.Available)
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name ASC")

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying dresses: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	dresses := []models.Dress{}
	for rows.Next() {
		dress, err := scanDress(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning dress: %v", ErrDatabaseError, err)
		}
		dresses = append(dresses, *dress)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating dress rows: %v", ErrDatabaseError, err)
	}
	return dresses, nil
}

// Create inserts a new dress.
func (r *dressRepository) Create(ctx context.Context, dress *models.Dress) error {
	query := `INSERT INTO dresses (` + dressColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	currentTime := time.Now()
	if dress.CreatedAt.IsZero() {
		dress.CreatedAt = currentTime
	}
	dress.UpdatedAt = currentTime

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		dress.ID, dress.Name, string(dress.Size), dress.Color, dress.Brand, dress.Collection,
		dress.PurchasePrice, dress.SalePrice, dress.RentalPrice, dress.Supplier, dress.Available,
		dress.CreatedAt, dress.UpdatedAt,
	)
	if err != nil {
		return mapPQError(err, "creating dress")
	}
	return nil
}

// Update updates the descriptive fields of an existing dress.
func (r *dressRepository) Update(ctx context.Context, dress *models.Dress) error {
	query := `UPDATE dresses SET
	            name = $1, size = $2, color = $3, brand = $4, collection = $5,
	            purchase_price = $6, sale_price = $7, rental_price = $8, supplier = $9, updated_at = $10
	          WHERE id = $11`

	dress.UpdatedAt = time.Now()
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		dress.Name, string(dress.Size), dress.Color, dress.Brand, dress.Collection,
		dress.PurchasePrice, dress.SalePrice, dress.RentalPrice, dress.Supplier, dress.UpdatedAt,
		dress.ID,
	)
	if err != nil {
		return mapPQError(err, "updating dress "+dress.ID)
	}
	return checkAffected(result, "updating dress "+dress.ID)
}

// Delete removes a dress.
func (r *dressRepository) Delete(ctx context.Context, id string) error {
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, `DELETE FROM dresses WHERE id = $1`, id)
	if err != nil {
		return mapPQError(err, "deleting dress "+id)
	}
	return checkAffected(result, "deleting dress "+id)
}

// Lock is the concurrency gate for renting a dress.
func (r *dressRepository) Lock(ctx context.Context, id string) error {
	query := `UPDATE dresses SET available = FALSE, updated_at = $2 WHERE id = $1 AND available = TRUE`
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("%w: locking dress %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for locking dress %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 1 {
		return nil
	}

	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrDressUnavailable
}

// Release marks the dress available again.
func (r *dressRepository) Release(ctx context.Context, id string) error {
	query := `UPDATE dresses SET available = TRUE, updated_at = $2 WHERE id = $1 AND available = FALSE`
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("%w: releasing dress %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for releasing dress %s: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 1 {
		return nil
	}

	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return nil
}

func (r *dressRepository) exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := executorFrom(ctx, r.db).QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM dresses WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%w: checking dress %s: %v", ErrDatabaseError, id, err)
	}
	return exists, nil
}
