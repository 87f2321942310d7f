package mongostore

import (
	"context"
	"errors"
	"time"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type dressRepository struct {
	coll    *mongo.Collection
	rentals *mongo.Collection
}

func (r *dressRepository) GetByID(ctx context.Context, id string) (*models.Dress, error) {
	return findOne[models.Dress](ctx, r.coll, bson.M{"_id": id}, "getting dress "+id)
}

func (r *dressRepository) List(ctx context.Context, filter models.DressFilter) ([]models.Dress, error) {
	query := bson.M{}
	if filter.Size != nil {
		query["size"] = *filter.Size
	}
	if filter.Brand != nil {
		query["brand"] = *filter.Brand
	}
	if filter.Collection != nil {
		query["collection"] = *filter.Collection
	}
	if filter.Supplier != nil {
		query["supplier"] = *filter.Supplier
	}
	if filter.Available != nil {
		query["available"] = *filter.Available
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findAll[models.Dress](ctx, r.coll, query, opts, "listing dresses")
}

func (r *dressRepository) Create(ctx context.Context, dress *models.Dress) error {
	currentTime := time.Now()
	if dress.CreatedAt.IsZero() {
		dress.CreatedAt = currentTime
	}
	dress.UpdatedAt = currentTime
	return insertOne(ctx, r.coll, dress, "creating dress")
}

func (r *dressRepository) Update(ctx context.Context, dress *models.Dress) error {
	dress.UpdatedAt = time.Now()
	return updateByID(ctx, r.coll, dress.ID, bson.M{
		"name":           dress.Name,
		"size":           dress.Size,
		"color":          dress.Color,
		"brand":          dress.Brand,
		"collection":     dress.Collection,
		"purchase_price": dress.PurchasePrice,
		"sale_price":     dress.SalePrice,
		"rental_price":   dress.RentalPrice,
		"supplier":       dress.Supplier,
		"updated_at":     dress.UpdatedAt,
	}, "updating dress "+dress.ID)
}

// Delete refuses to remove a dress that any rental still references.
func (r *dressRepository) Delete(ctx context.Context, id string) error {
	err := r.rentals.FindOne(ctx, bson.M{"dress_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	switch {
	case err == nil:
		return repositories.ErrReferenced
	case !errors.Is(err, mongo.ErrNoDocuments):
		return mapMongoError(err, "checking rentals of dress "+id)
	}
	return deleteByID(ctx, r.coll, id, "deleting dress "+id)
}

// Lock matches only an available dress, so two concurrent lockers cannot both succeed.
func (r *dressRepository) Lock(ctx context.Context, id string) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id, "available": true},
		bson.M{"$set": bson.M{"available": false, "updated_at": time.Now()}},
	)
	if err != nil {
		return mapMongoError(err, "locking dress "+id)
	}
	if result.MatchedCount == 1 {
		return nil
	}

	exists, err := r.exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return repositories.ErrNotFound
	}
	return repositories.ErrDressUnavailable
}

func (r *dressRepository) Release(ctx context.Context, id string) error {
	return updateByID(ctx, r.coll, id, bson.M{"available": true, "updated_at": time.Now()}, "releasing dress "+id)
}

func (r *dressRepository) exists(ctx context.Context, id string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, mapMongoError(err, "checking dress "+id)
	}
	return true, nil
}
