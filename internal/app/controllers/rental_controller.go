package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/app/services"
	"github.com/yigit/lockersys/internal/middleware"
	"github.com/yigit/lockersys/internal/pkg/helpers"
)

// RentalController handles rental-related operations
type RentalController struct {
	rentalService services.RentalService
}

// NewRentalController creates a new RentalController
func NewRentalController(rentalService services.RentalService) *RentalController {
	return &RentalController{rentalService: rentalService}
}

// ListRentals returns one page of rentals, newest first
// @Summary List rentals
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Items per page" default(10) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.Page[models.Rental]} "Rentals retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /rentals [get]
func (c *RentalController) ListRentals(ctx *gin.Context) {
	page, size, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.rentalService.List(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, ""))
}

// GetRental retrieves a rental by ID
// @Summary Get rental details
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} dto.APIResponse{data=models.Rental} "Rental retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Rental not found"
// @Router /rentals/{id} [get]
func (c *RentalController) GetRental(ctx *gin.Context) {
	rental, err := c.rentalService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rental, ""))
}

// CreateRental rents a locker to a student. Prices default from the locker.
// @Summary Create a new rental
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateRentalRequest true "Rental information"
// @Success 201 {object} dto.APIResponse{data=models.Rental} "Rental created successfully"
// @Failure 400 {object} dto.ErrorResponse "Unknown locker or student, or endDate before startDate"
// @Router /rentals [post]
func (c *RentalController) CreateRental(ctx *gin.Context) {
	var req dto.CreateRentalRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	rental, err := c.rentalService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(rental, "Rental created successfully"))
}

// UpdateRental applies a partial update; omitted fields keep their value
// @Summary Update a rental
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body dto.UpdateRentalRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Rental} "Rental updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Rental not found"
// @Router /rentals/{id} [patch]
func (c *RentalController) UpdateRental(ctx *gin.Context) {
	var req dto.UpdateRentalRequest
	if !middleware.BindOptionalJSON(ctx, &req) {
		return
	}

	rental, err := c.rentalService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(rental, "Rental updated successfully"))
}

// DeleteRental removes a rental
// @Summary Delete a rental
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} dto.APIResponse "Rental deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Rental not found"
// @Router /rentals/{id} [delete]
func (c *RentalController) DeleteRental(ctx *gin.Context) {
	if err := c.rentalService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Rental deleted successfully"))
}
