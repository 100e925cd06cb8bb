package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Thibault-Renand/OctoPulse/internal/models"
	"github.com/Thibault-Renand/OctoPulse/internal/service"
)

// RosterService is the roster access the handlers need.
type RosterService interface {
	Roster(ctx context.Context) (service.Roster, error)
	ListResidents(ctx context.Context) ([]models.Resident, error)
	CreateResident(ctx context.Context, resident *models.Resident) error
	UpdateResident(ctx context.Context, id string, resident *models.Resident) error
	DeleteResident(ctx context.Context, id string) error
	AdjustTexture(ctx context.Context, id string, finer bool) (string, error)
	ListStaff(ctx context.Context) ([]models.Staff, error)
	CreateStaff(ctx context.Context, staff *models.Staff) error
}

type ResidentHandler struct {
	roster RosterService
}

func NewResidentHandler(roster RosterService) *ResidentHandler {
	return &ResidentHandler{roster: roster}
}

func (h *ResidentHandler) RegisterRoutes(router *gin.RouterGroup) {
	residents := router.Group("/residents")
	{
		residents.GET("", h.ListResidents)
		residents.POST("", h.CreateResident)
		residents.PUT("/:id", h.UpdateResident)
		residents.DELETE("/:id", h.DeleteResident)
		residents.POST("/:id/texture", h.AdjustTexture)
	}
}

func (h *ResidentHandler) ListResidents(c *gin.Context) {
	residents, err := h.roster.ListResidents(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list residents"})
		return
	}
	c.JSON(http.StatusOK, residents)
}

func (h *ResidentHandler) CreateResident(c *gin.Context) {
	var resident models.Resident
	if err := c.ShouldBindJSON(&resident); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.roster.CreateResident(c.Request.Context(), &resident); err != nil {
		if errors.Is(err, service.ErrMissingName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create resident"})
		return
	}

	c.JSON(http.StatusCreated, resident)
}

func (h *ResidentHandler) UpdateResident(c *gin.Context) {
	id := c.Param("id")

	var resident models.Resident
	if err := c.ShouldBindJSON(&resident); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.roster.UpdateResident(c.Request.Context(), id, &resident); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resident not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update resident"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ResidentHandler) DeleteResident(c *gin.Context) {
	id := c.Param("id")

	if err := h.roster.DeleteResident(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resident not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete resident"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// AdjustTexture moves a resident one step along the texture scale.
func (h *ResidentHandler) AdjustTexture(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Direction string `json:"direction" binding:"required,oneof=finer coarser"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be finer or coarser"})
		return
	}

	texture, err := h.roster.AdjustTexture(c.Request.Context(), id, req.Direction == "finer")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "resident not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to adjust texture"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meal_texture": texture})
}
