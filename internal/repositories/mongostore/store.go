// Package mongostore implements the repository interfaces on a MongoDB database.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"dress_rental_backend/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	ColClients    = "clients"
	ColDresses    = "dresses"
	ColRentals    = "rentals"
	ColPromotions = "promotions"
	ColUsers      = "users"
)

// NewStore wires every repository to db. When transactions is true, RunInTx opens
// a session transaction on client (replica set or sharded cluster required).
func NewStore(client *mongo.Client, db *mongo.Database, transactions bool) *repositories.Store {
	return &repositories.Store{
		Clients:    &clientRepository{coll: db.Collection(ColClients)},
		Dresses:    &dressRepository{coll: db.Collection(ColDresses), rentals: db.Collection(ColRentals)},
		Rentals:    &rentalRepository{coll: db.Collection(ColRentals), dresses: db.Collection(ColDresses)},
		Promotions: &promotionRepository{coll: db.Collection(ColPromotions)},
		Users:      &userRepository{coll: db.Collection(ColUsers)},
		Tx:         &transactor{client: client, enabled: transactions},
	}
}

type transactor struct {
	client  *mongo.Client
	enabled bool
}

// RunInTx runs fn in a session transaction. With transactions disabled, fn runs directly
// and the writes it registered with repositories.OnRollback are undone if it fails.
// A nested call joins the session already bound to ctx.
func (t *transactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if !t.enabled {
		return repositories.RunCompensated(ctx, fn)
	}
	if mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}

	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("%w: starting session: %v", repositories.ErrDatabaseError, err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// mapMongoError turns driver errors into repository errors.
func mapMongoError(err error, action string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %s: %v", repositories.ErrDuplicateKey, action, err)
	default:
		return fmt.Errorf("%w: %s: %v", repositories.ErrDatabaseError, action, err)
	}
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, action string) (*T, error) {
	var result T
	if err := coll.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, mapMongoError(err, action)
	}
	return &result, nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts *options.FindOptions, action string) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapMongoError(err, action)
	}
	defer cursor.Close(ctx)

	results := []T{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, mapMongoError(err, action)
	}
	return results, nil
}

func insertOne(ctx context.Context, coll *mongo.Collection, document interface{}, action string) error {
	if _, err := coll.InsertOne(ctx, document); err != nil {
		return mapMongoError(err, action)
	}
	return nil
}

func updateByID(ctx context.Context, coll *mongo.Collection, id string, set bson.M, action string) error {
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return mapMongoError(err, action)
	}
	if result.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id string, action string) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapMongoError(err, action)
	}
	if result.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}
