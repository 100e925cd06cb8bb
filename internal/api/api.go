package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Thibault-Renand/OctoPulse/internal/database"
	"github.com/Thibault-Renand/OctoPulse/internal/logger"
	"github.com/Thibault-Renand/OctoPulse/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "OctoPulse API is running",
	})
}

// SetupAPI wires services and handlers onto the router.
func SetupAPI(router *gin.Engine, db *gorm.DB, cache *database.SummaryCache, clock service.Clock, log *logger.Logger) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		rosterService := service.NewRosterService(db, clock, cache, log)
		confirmationService := service.NewConfirmationService(db, clock, cache, log)

		residentHandler := NewResidentHandler(rosterService)
		staffHandler := NewStaffHandler(rosterService)
		mealHandler := NewMealHandler(confirmationService, rosterService, clock, cache)

		residentHandler.RegisterRoutes(v1)
		staffHandler.RegisterRoutes(v1)
		mealHandler.RegisterRoutes(v1)
	}
}
