package services

import (
	"context"
	"testing"

	"dress_rental_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotionService(t *testing.T) {
	ctx := context.Background()
	req := CreatePromotionRequest{
		Title:       "Spring sale",
		StartDate:   "2030-03-01",
		EndDate:     "2030-03-31",
		Description: "Twenty percent off evening gowns",
	}

	t.Run("CreateDefaultsActive", func(t *testing.T) {
		service := NewPromotionService(newMemStore().store().Promotions)
		promotion, err := service.CreatePromotion(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, models.PromotionStatusActive, promotion.Status)
	})

	t.Run("EndBeforeStart", func(t *testing.T) {
		service := NewPromotionService(newMemStore().store().Promotions)
		bad := req
		bad.EndDate = "2030-02-01"
		_, err := service.CreatePromotion(ctx, bad)
		assert.ErrorIs(t, err, ErrDateOrder)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		service := NewPromotionService(newMemStore().store().Promotions)
		promotion, err := service.CreatePromotion(ctx, req)
		require.NoError(t, err)

		updated, err := service.UpdatePromotion(ctx, promotion.ID, UpdatePromotionRequest{Status: strPtr("Finished")})
		require.NoError(t, err)
		assert.Equal(t, models.PromotionStatusFinished, updated.Status)

		_, err = service.UpdatePromotion(ctx, promotion.ID, UpdatePromotionRequest{Status: strPtr("Paused")})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("NotFound", func(t *testing.T) {
		service := NewPromotionService(newMemStore().store().Promotions)
		_, err := service.GetPromotionByID(ctx, "p404")
		assert.ErrorIs(t, err, ErrPromotionNotFound)
	})
}
