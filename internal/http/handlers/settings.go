package handlers

import (
	"net/http"

	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
	"ridetracker/internal/http/middleware"
	"ridetracker/internal/services"

	"github.com/gin-gonic/gin"
)

type settingsResponse struct {
	models.Settings
	Platforms       []string `json:"platforms"`
	PickupLocations []string `json:"pickupLocations"`
}

func withIdentifiers(s models.Settings) settingsResponse {
	return settingsResponse{
		Settings:        s,
		Platforms:       domain.AllPlatforms(s),
		PickupLocations: domain.AllPickupLocations(s),
	}
}

// GET /api/settings
func (h *Handler) GetSettings(c *gin.Context) {
	st, err := h.settingsService(c).Get(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, withIdentifiers(st))
}

// PUT /api/settings
func (h *Handler) UpdateSettings(c *gin.Context) {
	var patch services.SettingsPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	st, err := h.settingsService(c).Update(c.Request.Context(), middleware.CallerUID(c), patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, withIdentifiers(st))
}

// AddCustom serves POST /api/settings/platforms and /pickup-locations.
func (h *Handler) AddCustom(kind services.ListKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in services.NameInput
		if !BindJSONOrError(c, &in) {
			return
		}
		st, err := h.settingsService(c).AddCustom(c.Request.Context(), middleware.CallerUID(c), kind, in)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusCreated, withIdentifiers(st))
	}
}

// RemoveCustom serves DELETE /api/settings/platforms/:name and /pickup-locations/:name.
func (h *Handler) RemoveCustom(kind services.ListKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := h.settingsService(c).RemoveCustom(c.Request.Context(), middleware.CallerUID(c), kind, c.Param("name"))
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		c.JSON(http.StatusOK, withIdentifiers(st))
	}
}
