package mongostore

import (
	"context"
	"time"

	"dress_rental_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type promotionRepository struct {
	coll *mongo.Collection
}

func (r *promotionRepository) Create(ctx context.Context, promotion *models.Promotion) error {
	currentTime := time.Now()
	if promotion.CreatedAt.IsZero() {
		promotion.CreatedAt = currentTime
	}
	promotion.UpdatedAt = currentTime
	return insertOne(ctx, r.coll, promotion, "creating promotion")
}

func (r *promotionRepository) GetByID(ctx context.Context, id string) (*models.Promotion, error) {
	return findOne[models.Promotion](ctx, r.coll, bson.M{"_id": id}, "getting promotion "+id)
}

func (r *promotionRepository) List(ctx context.Context) ([]models.Promotion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	return findAll[models.Promotion](ctx, r.coll, bson.M{}, opts, "listing promotions")
}

func (r *promotionRepository) Update(ctx context.Context, promotion *models.Promotion) error {
	promotion.UpdatedAt = time.Now()
	return updateByID(ctx, r.coll, promotion.ID, bson.M{
		"title":       promotion.Title,
		"start_date":  promotion.StartDate,
		"end_date":    promotion.EndDate,
		"description": promotion.Description,
		"status":      promotion.Status,
		"updated_at":  promotion.UpdatedAt,
	}, "updating promotion "+promotion.ID)
}

func (r *promotionRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, "deleting promotion "+id)
}
