package mongostore

import (
	"context"
	"testing"
	"time"

	"dress_rental_backend/internal/models"
	"dress_rental_backend/internal/repositories"
	"dress_rental_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func dressDoc(id string, available bool) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Aurora"},
		{Key: "size", Value: "M"},
		{Key: "rental_price", Value: 80.0},
		{Key: "available", Value: available},
		{Key: "created_at", Value: time.Now()},
	}
}

func TestDressRepository_Lock(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Success", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1},
		))

		assert.NoError(mt, store.Dresses.Lock(ctx, "d1"))
	})

	mt.Run("AlreadyHeld", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "rental.dresses", mtest.FirstBatch, bson.D{{Key: "_id", Value: "d1"}}),
		)

		err := store.Dresses.Lock(ctx, "d1")
		assert.ErrorIs(mt, err, repositories.ErrDressUnavailable)
	})

	mt.Run("Missing", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "rental.dresses", mtest.FirstBatch),
		)

		err := store.Dresses.Lock(ctx, "d404")
		assert.ErrorIs(mt, err, repositories.ErrNotFound)
	})
}

func TestDressRepository_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Success", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "rental.dresses", mtest.FirstBatch, dressDoc("d1", true)))

		dress, err := store.Dresses.GetByID(ctx, "d1")
		require.NoError(mt, err)
		assert.Equal(mt, "Aurora", dress.Name)
		assert.Equal(mt, models.DressSizeM, dress.Size)
		assert.True(mt, dress.Available)
	})

	mt.Run("NotFound", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "rental.dresses", mtest.FirstBatch))

		_, err := store.Dresses.GetByID(ctx, "d404")
		assert.ErrorIs(mt, err, repositories.ErrNotFound)
	})
}

func TestDressRepository_Delete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Referenced", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "rental.rentals", mtest.FirstBatch, bson.D{{Key: "_id", Value: "r1"}}))

		err := store.Dresses.Delete(ctx, "d1")
		assert.ErrorIs(mt, err, repositories.ErrReferenced)
	})

	mt.Run("Success", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "rental.rentals", mtest.FirstBatch),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
		)

		assert.NoError(mt, store.Dresses.Delete(ctx, "d1"))
	})
}

func TestClientRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("DuplicateEmail", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := store.Clients.Create(ctx, &models.Client{ID: "c1", FullName: "Ann Lee", Email: "ann@example.com"})
		assert.ErrorIs(mt, err, repositories.ErrDuplicateKey)
	})
}

func TestRentalRepository_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("AttachesDress", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "rental.rentals", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "r1"},
				{Key: "client_id", Value: "c1"},
				{Key: "dress_id", Value: "d1"},
				{Key: "status", Value: "active"},
				{Key: "total_price", Value: 160.0},
			}),
			mtest.CreateCursorResponse(0, "rental.dresses", mtest.FirstBatch, dressDoc("d1", false)),
		)

		rental, err := store.Rentals.GetByID(ctx, "r1")
		require.NoError(mt, err)
		assert.Equal(mt, models.RentalStatusActive, rental.Status)
		require.NotNil(mt, rental.Dress)
		assert.False(mt, rental.Dress.Available)
	})
}

func TestTransactor_Disabled(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("RunsDirectly", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		called := false
		err := store.Tx.RunInTx(context.Background(), func(ctx context.Context) error {
			called = true
			return nil
		})
		assert.NoError(mt, err)
		assert.True(mt, called)
	})
}

func TestRentalRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	readAt := time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC)

	mt.Run("Success", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}))

		rental := &models.Rental{ID: "r1", DressID: "d1", Status: models.RentalStatusCompleted, UpdatedAt: readAt}
		require.NoError(mt, store.Rentals.Update(ctx, rental))
		assert.True(mt, rental.UpdatedAt.After(readAt))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		guard, err := started.Command.LookupErr("updates", "0", "q", "updated_at")
		require.NoError(mt, err)
		assert.True(mt, guard.Time().Equal(readAt))
	})

	mt.Run("ChangedSinceRead", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "rental.rentals", mtest.FirstBatch, bson.D{{Key: "n", Value: 1}}),
		)

		err := store.Rentals.Update(ctx, &models.Rental{ID: "r1", UpdatedAt: readAt})
		assert.ErrorIs(mt, err, repositories.ErrStaleRecord)
	})

	mt.Run("Missing", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}),
			mtest.CreateCursorResponse(0, "rental.rentals", mtest.FirstBatch),
		)

		err := store.Rentals.Update(ctx, &models.Rental{ID: "r404", UpdatedAt: readAt})
		assert.ErrorIs(mt, err, repositories.ErrNotFound)
	})
}

func TestCreateRental_WithoutTransactions(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("FailedInsertReleasesDress", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB, false)
		now := func() time.Time { return time.Date(2030, time.May, 10, 9, 0, 0, 0, time.Local) }
		rentals := services.NewRentalService(store, services.PerDayPrice, now)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "rental.clients", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: "c1"},
				{Key: "full_name", Value: "Ann Lee"},
				{Key: "email", Value: "ann@example.com"},
			}),
			mtest.CreateCursorResponse(0, "rental.dresses", mtest.FirstBatch, dressDoc("d1", true)),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 11601, Name: "Interrupted", Message: "interrupted"}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		_, err := rentals.CreateRental(context.Background(), services.CreateRentalRequest{
			ClientID: "c1", DressID: "d1", StartDate: "2030-06-01", EndDate: "2030-06-03",
		})
		require.Error(mt, err)

		var commands []string
		for _, evt := range mt.GetAllStartedEvents() {
			commands = append(commands, evt.CommandName)
		}
		require.Equal(mt, []string{"find", "find", "update", "insert", "update"}, commands)

		release := mt.GetAllStartedEvents()[4].Command
		assert.Equal(mt, ColDresses, release.Lookup("update").StringValue())
		available, err := release.LookupErr("updates", "0", "u", "$set", "available")
		require.NoError(mt, err)
		assert.True(mt, available.Boolean())
	})
}
