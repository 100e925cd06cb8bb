package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thibault-Renand/OctoPulse/internal/models"
	"github.com/Thibault-Renand/OctoPulse/internal/service"
)

type StaffHandler struct {
	roster RosterService
}

func NewStaffHandler(roster RosterService) *StaffHandler {
	return &StaffHandler{roster: roster}
}

func (h *StaffHandler) RegisterRoutes(router *gin.RouterGroup) {
	staff := router.Group("/staff")
	{
		staff.GET("", h.ListStaff)
		staff.POST("", h.CreateStaff)
	}
}

func (h *StaffHandler) ListStaff(c *gin.Context) {
	staff, err := h.roster.ListStaff(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list staff"})
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var staff models.Staff
	if err := c.ShouldBindJSON(&staff); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.roster.CreateStaff(c.Request.Context(), &staff); err != nil {
		if errors.Is(err, service.ErrMissingName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create staff member"})
		return
	}

	c.JSON(http.StatusCreated, staff)
}
