package handlers

import (
	"net/http"

	"dress_rental_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PromotionHandler struct {
	promotionService services.PromotionService
}

func NewPromotionHandler(ps services.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: ps}
}

func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req services.CreatePromotionRequest
	if !bindJSON(c, &req, "CreatePromotion") {
		return
	}

	promotion, err := h.promotionService.CreatePromotion(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreatePromotion", "Failed to create promotion.")
		return
	}
	c.JSON(http.StatusCreated, promotion)
}

func (h *PromotionHandler) GetPromotions(c *gin.Context) {
	promotions, err := h.promotionService.GetPromotions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetPromotions", "Failed to fetch promotions.")
		return
	}
	c.JSON(http.StatusOK, promotions)
}

func (h *PromotionHandler) GetPromotionByID(c *gin.Context) {
	promotion, err := h.promotionService.GetPromotionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetPromotionByID", "Failed to fetch promotion.")
		return
	}
	c.JSON(http.StatusOK, promotion)
}

func (h *PromotionHandler) UpdatePromotion(c *gin.Context) {
	var req services.UpdatePromotionRequest
	if !bindJSON(c, &req, "UpdatePromotion") {
		return
	}

	promotion, err := h.promotionService.UpdatePromotion(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdatePromotion", "Failed to update promotion.")
		return
	}
	c.JSON(http.StatusOK, promotion)
}

func (h *PromotionHandler) DeletePromotion(c *gin.Context) {
	if err := h.promotionService.DeletePromotion(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeletePromotion", "Failed to delete promotion.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Promotion deleted successfully"})
}
