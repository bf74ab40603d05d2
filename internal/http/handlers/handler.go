package handlers

import (
	"time"

	"ridetracker/internal/auth"
	"ridetracker/internal/http/middleware"
	"ridetracker/internal/repositories"
	"ridetracker/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler holds the stores selected at startup. Services are built per
// request so they carry the request id.
type Handler struct {
	Trips    repositories.TripStore
	Settings repositories.SettingsStore
	Users    repositories.UserStore
	Pinger   repositories.Pinger
	Tokens   *auth.TokenService
	Location *time.Location
	Now      func() time.Time
}

func (h *Handler) tripService(c *gin.Context) services.TripService {
	return services.TripService{
		Trips:     h.Trips,
		Settings:  h.Settings,
		Location:  h.Location,
		Now:       h.Now,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) settingsService(c *gin.Context) services.SettingsService {
	return services.SettingsService{
		Store:     h.Settings,
		Now:       h.Now,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) reportsService(c *gin.Context) services.ReportsService {
	return services.ReportsService{
		Trips:     h.Trips,
		Settings:  h.Settings,
		Location:  h.Location,
		Now:       h.Now,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) exportService(c *gin.Context) services.ExportService {
	return services.ExportService{
		Reports:   h.reportsService(c),
		Location:  h.Location,
		Now:       h.Now,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handler) authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Users:     h.Users,
		Settings:  h.Settings,
		Tokens:    h.Tokens,
		Now:       h.Now,
		RequestID: middleware.GetRequestID(c),
	}
}
