package handlers

import (
	"net/http"

	"dress_rental_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// RentalHandler exposes the rental lifecycle.
type RentalHandler struct {
	rentalService services.RentalService
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(rs services.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rs}
}

// GetRentals lists rentals with their dresses.
func (h *RentalHandler) GetRentals(c *gin.Context) {
	rentals, err := h.rentalService.GetRentals(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "GetRentals", "Failed to fetch rentals.")
		return
	}
	c.JSON(http.StatusOK, rentals)
}

// GetRentalByID returns one rental with its dress.
func (h *RentalHandler) GetRentalByID(c *gin.Context) {
	rental, err := h.rentalService.GetRentalByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "GetRentalByID", "Failed to fetch rental.")
		return
	}
	c.JSON(http.StatusOK, rental)
}

// CreateRental opens a rental and locks the dress.
func (h *RentalHandler) CreateRental(c *gin.Context) {
	var req services.CreateRentalRequest
	if !bindJSON(c, &req, "CreateRental") {
		return
	}

	rental, err := h.rentalService.CreateRental(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateRental", "Failed to create rental.")
		return
	}
	c.JSON(http.StatusCreated, rental)
}

// UpdateRental applies a partial update.
func (h *RentalHandler) UpdateRental(c *gin.Context) {
	var req services.UpdateRentalRequest
	if !bindJSON(c, &req, "UpdateRental") {
		return
	}

	rental, err := h.rentalService.UpdateRental(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "UpdateRental", "Failed to update rental.")
		return
	}
	c.JSON(http.StatusOK, rental)
}

// ReportDamage closes a rental as damaged or lost.
func (h *RentalHandler) ReportDamage(c *gin.Context) {
	var req services.DamageReportRequest
	if !bindJSON(c, &req, "ReportDamage") {
		return
	}

	rental, err := h.rentalService.ReportDamage(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondServiceError(c, err, "ReportDamage", "Failed to report damage.")
		return
	}
	c.JSON(http.StatusOK, rental)
}

// DeleteRental removes a rental.
func (h *RentalHandler) DeleteRental(c *gin.Context) {
	if err := h.rentalService.DeleteRental(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "DeleteRental", "Failed to delete rental.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rental deleted successfully"})
}
