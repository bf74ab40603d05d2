package handlers

import (
	"net/http"

	"ridetracker/internal/http/middleware"
	"ridetracker/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/trips
func (h *Handler) ListTrips(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	perPage, err := queryInt(c, "perPage")
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out, err := h.tripService(c).List(c.Request.Context(), middleware.CallerUID(c), services.TripListQuery{
		Platform: c.Query("platform"),
		From:     c.Query("from"),
		To:       c.Query("to"),
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/trips
func (h *Handler) CreateTrip(c *gin.Context) {
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	trip, err := h.tripService(c).Create(c.Request.Context(), middleware.CallerUID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

// GET /api/trips/:id
func (h *Handler) GetTrip(c *gin.Context) {
	trip, err := h.tripService(c).Get(c.Request.Context(), middleware.CallerUID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// PUT /api/trips/:id
func (h *Handler) UpdateTrip(c *gin.Context) {
	var in services.TripInput
	if !BindJSONOrError(c, &in) {
		return
	}
	trip, err := h.tripService(c).Update(c.Request.Context(), middleware.CallerUID(c), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/trips/:id/paid-to-cashier
func (h *Handler) MarkPaidToCashier(c *gin.Context) {
	trip, err := h.tripService(c).MarkPaidToCashier(c.Request.Context(), middleware.CallerUID(c), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// POST /api/fees/preview
func (h *Handler) PreviewFees(c *gin.Context) {
	var in services.FeePreviewInput
	if !BindJSONOrError(c, &in) {
		return
	}
	fees, err := h.tripService(c).PreviewFees(c.Request.Context(), middleware.CallerUID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fees)
}
