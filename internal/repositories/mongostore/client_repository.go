package mongostore

import (
	"context"
	"regexp"
	"strings"
	"time"

	"dress_rental_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type clientRepository struct {
	coll *mongo.Collection
}

func exactInsensitive(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	currentTime := time.Now()
	if client.CreatedAt.IsZero() {
		client.CreatedAt = currentTime
	}
	client.UpdatedAt = currentTime
	return insertOne(ctx, r.coll, client, "creating client")
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	return findOne[models.Client](ctx, r.coll, bson.M{"_id": id}, "getting client "+id)
}

func (r *clientRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	return findOne[models.Client](ctx, r.coll, bson.M{"email": exactInsensitive(email)}, "getting client by email "+email)
}

func (r *clientRepository) List(ctx context.Context, searchTerm *string) ([]models.Client, error) {
	filter := bson.M{}
	if searchTerm != nil && strings.TrimSpace(*searchTerm) != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(strings.TrimSpace(*searchTerm)), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"full_name": pattern},
			bson.M{"phone": pattern},
			bson.M{"email": pattern},
		}
	}
	opts := options.Find().SetSort(bson.D{{Key: "full_name", Value: 1}})
	return findAll[models.Client](ctx, r.coll, filter, opts, "listing clients")
}

func (r *clientRepository) Update(ctx context.Context, client *models.Client) error {
	client.UpdatedAt = time.Now()
	return updateByID(ctx, r.coll, client.ID, bson.M{
		"full_name":   client.FullName,
		"phone":       client.Phone,
		"email":       client.Email,
		"address":     client.Address,
		"city":        client.City,
		"state":       client.State,
		"postal_code": client.PostalCode,
		"updated_at":  client.UpdatedAt,
	}, "updating client "+client.ID)
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, "deleting client "+id)
}
