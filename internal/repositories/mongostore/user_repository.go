package mongostore

import (
	"context"
	"time"

	"dress_rental_backend/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userRepository struct {
	coll *mongo.Collection
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	currentTime := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = currentTime
	}
	user.UpdatedAt = currentTime
	return insertOne(ctx, r.coll, user, "creating user")
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return findOne[models.User](ctx, r.coll, bson.M{"_id": id}, "getting user "+id)
}

func (r *userRepository) GetByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": exactInsensitive(identifier)},
	}}
	return findOne[models.User](ctx, r.coll, filter, "getting user by identifier "+identifier)
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	return findAll[models.User](ctx, r.coll, bson.M{}, opts, "listing users")
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	return updateByID(ctx, r.coll, user.ID, bson.M{
		"username":      user.Username,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"role":          user.Role,
		"updated_at":    user.UpdatedAt,
	}, "updating user "+user.ID)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, "deleting user "+id)
}
