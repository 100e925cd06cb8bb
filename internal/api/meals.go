package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thibault-Renand/OctoPulse/internal/database"
	"github.com/Thibault-Renand/OctoPulse/internal/models"
	"github.com/Thibault-Renand/OctoPulse/internal/service"
)

// ConfirmationService is the confirmation engine surface the handlers need.
type ConfirmationService interface {
	Confirm(ctx context.Context, record *models.MealRecord) error
	TodaysRecords(ctx context.Context) ([]models.MealRecord, error)
}

type MealHandler struct {
	confirmations ConfirmationService
	roster        RosterService
	clock         service.Clock
	cache         *database.SummaryCache
}

func NewMealHandler(confirmations ConfirmationService, roster RosterService, clock service.Clock, cache *database.SummaryCache) *MealHandler {
	return &MealHandler{
		confirmations: confirmations,
		roster:        roster,
		clock:         clock,
		cache:         cache,
	}
}

func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.GET("/today", h.TodaysRecords)
		meals.POST("", h.Confirm)
		meals.GET("/summary", h.GetSummary)
	}
}

func (h *MealHandler) TodaysRecords(c *gin.Context) {
	records, err := h.confirmations.TodaysRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load today's records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *MealHandler) Confirm(c *gin.Context) {
	var record models.MealRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.confirmations.Confirm(c.Request.Context(), &record); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPersonID), errors.Is(err, service.ErrUnknownPersonType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm meal"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSummary assembles the kitchen summary for the current day: roster plus
// today's records through the pure aggregator, cached per day.
func (h *MealHandler) GetSummary(c *gin.Context) {
	ctx := c.Request.Context()
	day := h.clock.Today()

	if payload, ok := h.cache.Get(ctx, day); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	roster, err := h.roster.Roster(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roster"})
		return
	}
	records, err := h.confirmations.TodaysRecords(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load today's records"})
		return
	}

	var residentRecords, staffRecords []models.MealRecord
	for _, rec := range records {
		if rec.PersonType == models.PersonTypeStaff {
			staffRecords = append(staffRecords, rec)
		} else {
			residentRecords = append(residentRecords, rec)
		}
	}

	view := service.Summarize(roster, residentRecords, staffRecords)

	payload, err := json.Marshal(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render summary"})
		return
	}
	// A confirmation landing between the reads above and this Set can re-cache
	// a view that misses it; the cache TTL bounds how long that survives.
	h.cache.Set(ctx, day, payload)

	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
