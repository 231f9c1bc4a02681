package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lockersys/internal/app/models/dto"
	"github.com/yigit/lockersys/internal/app/services"
	"github.com/yigit/lockersys/internal/middleware"
)

// DashboardController serves the aggregate figures
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetStats returns the dashboard statistics
// @Summary Dashboard statistics
// @Description Counts and revenue across lockers, students and rentals. May be up to the cache TTL old.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.DashboardStats}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	stats, err := c.dashboardService.GetStats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats, ""))
}
