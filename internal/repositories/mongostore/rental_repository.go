package mongostore

import (
	"context"
	"time"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type rentalRepository struct {
	coll    *mongo.Collection
	dresses *mongo.Collection
}

func (r *rentalRepository) Create(ctx context.Context, rental *models.Rental) error {
	currentTime := time.Now().Truncate(time.Millisecond)
	if rental.CreatedAt.IsZero() {
		rental.CreatedAt = currentTime
	}
	rental.UpdatedAt = currentTime
	return insertOne(ctx, r.coll, rental, "creating rental")
}

func (r *rentalRepository) GetByID(ctx context.Context, id string) (*models.Rental, error) {
	rental, err := findOne[models.Rental](ctx, r.coll, bson.M{"_id": id}, "getting rental "+id)
	if err != nil {
		return nil, err
	}
	dress, err := findOne[models.Dress](ctx, r.dresses, bson.M{"_id": rental.DressID}, "getting dress of rental "+id)
	if err != nil {
		return nil, err
	}
	rental.Dress = dress
	return rental, nil
}

// GetByIDForUpdate reads like GetByID. Concurrent writers are caught by the
// updated_at guard in Update, and by write conflicts inside session transactions.
func (r *rentalRepository) GetByIDForUpdate(ctx context.Context, id string) (*models.Rental, error) {
	return r.GetByID(ctx, id)
}

// List returns rentals newest first with their dresses attached.
func (r *rentalRepository) List(ctx context.Context) ([]models.Rental, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	rentals, err := findAll[models.Rental](ctx, r.coll, bson.M{}, opts, "listing rentals")
	if err != nil || len(rentals) == 0 {
		return rentals, err
	}

	ids := make([]string, 0, len(rentals))
	for _, rental := range rentals {
		ids = append(ids, rental.DressID)
	}
	dresses, err := findAll[models.Dress](ctx, r.dresses, bson.M{"_id": bson.M{"$in": ids}}, nil, "listing rental dresses")
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Dress, len(dresses))
	for i := range dresses {
		byID[dresses[i].ID] = &dresses[i]
	}
	for i := range rentals {
		rentals[i].Dress = byID[rentals[i].DressID]
	}
	return rentals, nil
}

// Update writes the rental only if updated_at still holds the value it was read with.
// Returns repositories.ErrStaleRecord when another writer got there first.
func (r *rentalRepository) Update(ctx context.Context, rental *models.Rental) error {
	filter := bson.M{"_id": rental.ID}
	if !rental.UpdatedAt.IsZero() {
		filter["updated_at"] = rental.UpdatedAt
	}
	set := bson.M{
		"dress_id":         rental.DressID,
		"start_date":       rental.StartDate,
		"end_date":         rental.EndDate,
		"total_price":      rental.TotalPrice,
		"status":           rental.Status,
		"is_damaged":       rental.IsDamaged,
		"repair_cost":      rental.RepairCost,
		"replacement_cost": rental.ReplacementCost,
		"damage_notes":     rental.DamageNotes,
		"updated_at":       time.Now().Truncate(time.Millisecond),
	}

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return mapMongoError(err, "updating rental "+rental.ID)
	}
	if result.MatchedCount == 1 {
		rental.UpdatedAt = set["updated_at"].(time.Time)
		return nil
	}

	count, err := r.coll.CountDocuments(ctx, bson.M{"_id": rental.ID}, options.Count().SetLimit(1))
	if err != nil {
		return mapMongoError(err, "checking rental "+rental.ID)
	}
	if count == 0 {
		return repositories.ErrNotFound
	}
	return repositories.ErrStaleRecord
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, "deleting rental "+id)
}
