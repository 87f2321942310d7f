package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"dress_rental_backend/internal/models"
)

// PromotionRepository defines the interface for promotion-related database operations.
type PromotionRepository interface {
	Create(ctx context.Context, promotion *models.Promotion) error
	GetByID(ctx context.Context, id string) (*models.Promotion, error)
	List(ctx context.Context) ([]models.Promotion, error)
	Update(ctx context.Context, promotion *models.Promotion) error
	Delete(ctx context.Context, id string) error
}

type promotionRepository struct {
	db *sql.DB
}

// NewPromotionRepository creates a new instance of PromotionRepository.
func NewPromotionRepository(db *sql.DB) PromotionRepository {
	return &promotionRepository{db: db}
}

const promotionColumns = `id, title, start_date, end_date, description, status, created_at, updated_at`

func scanPromotion(row scanner) (*models.Promotion, error) {
	var p models.Promotion
	var status string
	if err := row.Scan(&p.ID, &p.Title, &p.StartDate, &p.EndDate, &p.Description, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = models.PromotionStatus(status)
	return &p, nil
}

func (r *promotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	query := `INSERT INTO promotions (` + promotionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	currentTime := time.Now()
	if promotion.CreatedAt.IsZero() {
		promotion.CreatedAt = currentTime
	}
	promotion.UpdatedAt = currentTime

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		promotion.ID, promotion.Title, promotion.StartDate, promotion.EndDate, promotion.Description,
		string(promotion.Status), promotion.CreatedAt, promotion.UpdatedAt,
	)
	if err != nil {
		return mapPQError(err, "creating promotion")
	}
	return nil
}

func (r *promotionRepository) GetByID(ctx context.Context, id string) (*models.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions WHERE id = $1`
	promotion, err := scanPromotion(executorFrom(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting promotion by ID %s: %v", ErrDatabaseError, id, err)
	}
	return promotion, nil
}

func (r *promotionRepository) List(ctx context.Context) ([]models.Promotion, error) {
	query := `SELECT ` + promotionColumns + ` FROM promotions ORDER BY start_date DESC`
	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying promotions: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	promotions := []models.Promotion{}
	for rows.Next() {
		promotion, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning promotion: %v", ErrDatabaseError, err)
		}
		promotions = append(promotions, *promotion)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating promotion rows: %v", ErrDatabaseError, err)
	}
	return promotions, nil
}

func (r *promotionRepository) Update(ctx context.Context, promotion *models.Promotion) error {
	query := `UPDATE promotions SET
	            title = $1, start_date = $2, end_date = $3, description = $4, status = $5, updated_at = $6
	          WHERE id = $7`

	promotion.UpdatedAt = time.Now()
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		promotion.Title, promotion.StartDate, promotion.EndDate, promotion.Description,
		string(promotion.Status), promotion.UpdatedAt, promotion.ID,
	)
	if err != nil {
		return mapPQError(err, "updating promotion "+promotion.ID)
	}
	return checkAffected(result, "updating promotion "+promotion.ID)
}

func (r *promotionRepository) Delete(ctx context.Context, id string) error {
	result, err := executorFrom(ctx, r.db).ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return mapPQError(err, "deleting promotion "+id)
	}
	return checkAffected(result, "deleting promotion "+id)
}
