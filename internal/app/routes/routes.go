package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/lockersys/internal/app/controllers"
	"github.com/yigit/lockersys/internal/app/models"
	"github.com/yigit/lockersys/internal/middleware"
)

// Controllers groups the handlers the router mounts
type Controllers struct {
	Auth      *controllers.AuthController
	Students  *controllers.StudentController
	Lockers   *controllers.LockerController
	Rentals   *controllers.RentalController
	Dashboard *controllers.DashboardController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c Controllers, authMiddleware *middleware.AuthMiddleware) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", c.Auth.Logout)
		authenticated.POST("/auth/logout-all", c.Auth.LogoutAll)
		authenticated.GET("/auth/me", c.Auth.Me)

		authenticated.GET("/dashboard/stats", c.Dashboard.GetStats)

		// Reads are open to any session, writes need the admin role
		writes := authenticated.Group("")
		writes.Use(authMiddleware.RoleRequired(models.RoleAdmin))

		authenticated.GET("/students", c.Students.ListStudents)
		authenticated.GET("/students/:id", c.Students.GetStudent)
		writes.POST("/students", c.Students.CreateStudent)
		writes.PATCH("/students/:id", c.Students.UpdateStudent)
		writes.PUT("/students/:id", c.Students.UpdateStudent)
		writes.DELETE("/students/:id", c.Students.DeleteStudent)

		authenticated.GET("/lockers", c.Lockers.ListLockers)
		authenticated.GET("/lockers/:id", c.Lockers.GetLocker)
		writes.POST("/lockers", c.Lockers.CreateLocker)
		writes.PATCH("/lockers/:id", c.Lockers.UpdateLocker)
		writes.PUT("/lockers/:id", c.Lockers.UpdateLocker)
		writes.DELETE("/lockers/:id", c.Lockers.DeleteLocker)

		authenticated.GET("/rentals", c.Rentals.ListRentals)
		authenticated.GET("/rentals/:id", c.Rentals.GetRental)
		writes.POST("/rentals", c.Rentals.CreateRental)
		writes.PATCH("/rentals/:id", c.Rentals.UpdateRental)
		writes.PUT("/rentals/:id", c.Rentals.UpdateRental)
		writes.DELETE("/rentals/:id", c.Rentals.DeleteRental)
	}
}
