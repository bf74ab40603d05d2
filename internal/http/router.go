package api

import (
	stdhttp "net/http"

	"ridetracker/internal/auth"
	intconfig "ridetracker/internal/config"
	h "ridetracker/internal/http/handlers"
	"ridetracker/internal/http/middleware"
	"ridetracker/internal/services"
	"ridetracker/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func init() {
	// Money goes out as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// NewRouter wires every /api route. verifier guards everything except
// health and local auth; auth routes are only mounted in local mode.
func NewRouter(env intconfig.Env, hd *h.Handler, verifier auth.TokenVerifier) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth (local accounts only)
		if env.AuthMode != intconfig.AuthFirebase && hd.Tokens != nil && hd.Users != nil {
			authGroup := api.Group("/auth")
			authGroup.POST("/register", hd.Register)
			authGroup.POST("/login", hd.Login)
		}

		private := api.Group("", middleware.Auth(verifier))

		// Trips
		trips := private.Group("/trips")
		trips.GET("", hd.ListTrips)
		trips.POST("", hd.CreateTrip)
		trips.GET("/:id", hd.GetTrip)
		trips.PUT("/:id", hd.UpdateTrip)
		trips.POST("/:id/paid-to-cashier", hd.MarkPaidToCashier)

		private.POST("/fees/preview", hd.PreviewFees)

		// Settings
		settings := private.Group("/settings")
		settings.GET("", hd.GetSettings)
		settings.PUT("", hd.UpdateSettings)
		settings.POST("/platforms", hd.AddCustom(services.ListPlatforms))
		settings.DELETE("/platforms/:name", hd.RemoveCustom(services.ListPlatforms))
		settings.POST("/pickup-locations", hd.AddCustom(services.ListPickupLocations))
		settings.DELETE("/pickup-locations/:name", hd.RemoveCustom(services.ListPickupLocations))

		// Reports
		reports := private.Group("/reports")
		reports.GET("/dashboard", hd.Dashboard)
		reports.GET("/daily", hd.DailyReport)
		reports.GET("/days", hd.DaysReport)
		reports.GET("/weekly", hd.WeeklyReport)
		reports.GET("/monthly", hd.MonthlyReport)
		reports.GET("/custom", hd.CustomReport)
		reports.GET("/custom/export", hd.ExportReport)
		reports.GET("/payments", hd.PaymentsReport)
	}

	h.SetRouter(r)
	return r
}
