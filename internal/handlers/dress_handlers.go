package handlers

import (
	"net/http"

	"dress_rental_backend/internal/services"
	"dress_rental_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DressHandler holds the dress service.
type DressHandler struct {
	dressService services.DressService
}

// NewDressHandler creates a new DressHandler.
func NewDressHandler(ds services.DressService) *DressHandler {
	return &DressHandler{dressService: ds}
}

// GetDresses lists dresses matching ?size=&brand=&collection=&supplier=&available=.
func (h *DressHandler) GetDresses(c *gin.Context) {
	var query services.DressQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}

	dresses, err := h.dressService.GetDresses(c.Request.Context(), query)
	if err != nil {
		respondServiceError(c, err, "GetDresses", "Failed to fetch dresses.")
		return
	}
	c.JSON(http.StatusOK, dresses)
}

func (h *DressHandler) GetDressByID(c *gin.Context) {
	dress, err := h.dressService.GetDressByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetDressByID", "Failed to fetch dress.")
		return
	}
	c.JSON(http.StatusOK, dress)
}

func (h *DressHandler) CreateDress(c *gin.Context) {
	var req services.CreateDressRequest
	if !bindJSON(c, &req, "CreateDress") {
		return
	}

	dress, err := h.dressService.CreateDress(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateDress", "Failed to create dress.")
		return
	}
	c.JSON(http.StatusCreated, dress)
}

func (h *DressHandler) UpdateDress(c *gin.Context) {
	var req services.UpdateDressRequest
	if !bindJSON(c, &req, "UpdateDress") {
		return
	}

	dress, err := h.dressService.UpdateDress(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateDress", "Failed to update dress.")
		return
	}
	c.JSON(http.StatusOK, dress)
}

func (h *DressHandler) DeleteDress(c *gin.Context) {
	if err := h.dressService.DeleteDress(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteDress", "Failed to delete dress.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dress deleted successfully"})
}
