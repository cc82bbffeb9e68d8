package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rental-insights/internal/analytics"
	"rental-insights/internal/models"
)

// QueryHandler serves the read-only rent and occupancy queries
type QueryHandler struct {
	svc *analytics.Service
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(svc *analytics.Service) *QueryHandler {
	return &QueryHandler{svc: svc}
}

// Register mounts the query routes under /api
func (h *QueryHandler) Register(r gin.IRouter) {
	api := r.Group("/api")
	{
		api.GET("/regions/summary", h.GetRegionSummaries)
		api.GET("/regions/:region/average-rent", h.GetAverageRent)

		api.GET("/properties/:id/rent-per-tenant", h.GetRentPerTenant)
		api.GET("/properties/:id/status", h.GetPropertyStatus)

		api.GET("/postcodes/invalid", h.GetInvalidPostcodes)
		api.GET("/stats/status", h.GetStatusCounts)
	}
}

// GetAverageRent returns the rounded average rent for a region
func (h *QueryHandler) GetAverageRent(c *gin.Context) {
	region := models.Region(c.Param("region"))

	avg, err := h.svc.AverageRentForRegion(region)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"region":             region,
		"average_rent_pence": avg,
	})
}

// GetRentPerTenant returns the monthly rent share per tenant
func (h *QueryHandler) GetRentPerTenant(c *gin.Context) {
	id := c.Param("id")
	currency := analytics.Currency(c.DefaultQuery("currency", string(analytics.CurrencyPence)))

	share, err := h.svc.MonthlyRentPerTenant(id, currency)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property_id":     id,
		"currency":        currency,
		"rent_per_tenant": share,
	})
}

// GetPropertyStatus returns the occupancy status as of today
func (h *QueryHandler) GetPropertyStatus(c *gin.Context) {
	id := c.Param("id")

	status, err := h.svc.PropertyStatus(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"property_id": id,
		"status":      status,
		"date":        h.svc.Today().Format(time.DateOnly),
	})
}

// GetInvalidPostcodes returns ids of properties with malformed postcodes
func (h *QueryHandler) GetInvalidPostcodes(c *gin.Context) {
	ids := h.svc.PropertyIDsWithInvalidPostcodes()

	c.JSON(http.StatusOK, gin.H{
		"property_ids": ids,
		"count":        len(ids),
	})
}

// GetRegionSummaries returns count and average rent for every region
func (h *QueryHandler) GetRegionSummaries(c *gin.Context) {
	summaries := h.svc.RegionSummaries()

	c.JSON(http.StatusOK, gin.H{
		"regions": summaries,
		"count":   len(summaries),
	})
}

// GetStatusCounts returns how many properties are in each status today
func (h *QueryHandler) GetStatusCounts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"date":     h.svc.Today().Format(time.DateOnly),
		"statuses": h.svc.StatusCounts(),
	})
}

// respondError maps query errors to HTTP statuses
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, analytics.ErrPropertyNotFound), errors.Is(err, analytics.ErrNoDataForRegion):
		status = http.StatusNotFound
	case errors.Is(err, analytics.ErrNoTenants):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, analytics.ErrUnknownCurrency):
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
