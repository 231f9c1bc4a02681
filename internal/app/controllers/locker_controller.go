package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/app/services"
	"github.com/yigit/lockersys/internal/middleware"
	"github.com/yigit/lockersys/internal/pkg/helpers"
)

// LockerController handles locker-related operations
type LockerController struct {
	lockerService services.LockerService
}

// NewLockerController creates a new LockerController
func NewLockerController(lockerService services.LockerService) *LockerController {
	return &LockerController{lockerService: lockerService}
}

// ListLockers returns one page of lockers
// @Summary List lockers
// @Tags lockers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Items per page" default(10) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.Page[models.Locker]} "Lockers retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Router /lockers [get]
func (c *LockerController) ListLockers(ctx *gin.Context) {
	page, size, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.lockerService.List(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(result, ""))
}

// GetLocker retrieves a locker by ID
// @Summary Get locker details
// @Tags lockers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Locker ID"
// @Success 200 {object} dto.APIResponse{data=models.Locker}
// @Failure 404 {object} dto.ErrorResponse "Locker not found"
// @Router /lockers/{id} [get]
func (c *LockerController) GetLocker(ctx *gin.Context) {
	locker, err := c.lockerService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(locker, ""))
}

// CreateLocker adds a locker
// @Summary Create a new locker
// @Tags lockers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLockerRequest true "Locker information"
// @Success 201 {object} dto.APIResponse{data=models.Locker} "Locker created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /lockers [post]
func (c *LockerController) CreateLocker(ctx *gin.Context) {
	var req dto.CreateLockerRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	locker, err := c.lockerService.Create(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(locker, "Locker created successfully"))
}

// UpdateLocker applies a partial update
// @Summary Update a locker
// @Tags lockers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Locker ID"
// @Param request body dto.UpdateLockerRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Locker} "Locker updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Locker not found"
// @Router /lockers/{id} [patch]
func (c *LockerController) UpdateLocker(ctx *gin.Context) {
	var req dto.UpdateLockerRequest
	if !middleware.BindOptionalJSON(ctx, &req) {
		return
	}

	locker, err := c.lockerService.Update(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(locker, "Locker updated successfully"))
}

// DeleteLocker removes a locker
// @Summary Delete a locker
// @Tags lockers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Locker ID"
// @Success 200 {object} dto.APIResponse "Locker deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Locker not found"
// @Failure 409 {object} dto.ErrorResponse "Locker has open rentals"
// @Router /lockers/{id} [delete]
func (c *LockerController) DeleteLocker(ctx *gin.Context) {
	if err := c.lockerService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Locker deleted successfully"))
}
