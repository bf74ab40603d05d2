package handlers

import (
	"net/http"
	"strings"

	"ridetracker/internal/domain"
	"ridetracker/internal/http/middleware"
	"ridetracker/internal/reports"
	"ridetracker/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	ov, err := h.reportsService(c).Dashboard(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

// GET /api/reports/daily?date=YYYY-MM-DD
func (h *Handler) DailyReport(c *gin.Context) {
	h.report(c, services.ReportQuery{
		Strategy: string(reports.StrategyDay),
		Platform: c.Query("platform"),
		Date:     c.Query("date"),
	})
}

// GET /api/reports/days
func (h *Handler) DaysReport(c *gin.Context) {
	h.report(c, services.ReportQuery{
		Strategy: string(reports.StrategyDays),
		Platform: c.Query("platform"),
	})
}

// GET /api/reports/weekly?weeks=12
func (h *Handler) WeeklyReport(c *gin.Context) {
	weeks, err := queryInt(c, "weeks")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.report(c, services.ReportQuery{
		Strategy: string(reports.StrategyWeeks),
		Platform: c.Query("platform"),
		Periods:  weeks,
	})
}

// GET /api/reports/monthly?mode=calendar|billing&months=12
func (h *Handler) MonthlyReport(c *gin.Context) {
	months, err := queryInt(c, "months")
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	strategy := reports.StrategyMonths
	switch strings.ToLower(strings.TrimSpace(c.DefaultQuery("mode", "calendar"))) {
	case "calendar":
	case "billing":
		strategy = reports.StrategyBilling
	default:
		RespondDomainError(c, domain.ValidationError{Field: "mode", Msg: "must be calendar or billing"})
		return
	}
	h.report(c, services.ReportQuery{
		Strategy: string(strategy),
		Platform: c.Query("platform"),
		Periods:  months,
	})
}

// GET /api/reports/custom?from=&to=&platform=
func (h *Handler) CustomReport(c *gin.Context) {
	h.report(c, services.ReportQuery{
		Strategy: string(reports.StrategyCustom),
		Platform: c.Query("platform"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
}

// GET /api/reports/custom/export?format=xlsx|pdf
func (h *Handler) ExportReport(c *gin.Context) {
	file, err := h.exportService(c).Export(c.Request.Context(), middleware.CallerUID(c), c.Query("format"), services.ReportQuery{
		Platform: c.Query("platform"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, file.Name, file.ContentType, file.Data)
}

// GET /api/reports/payments
func (h *Handler) PaymentsReport(c *gin.Context) {
	out, err := h.reportsService(c).Payments(c.Request.Context(), middleware.CallerUID(c), services.ReportQuery{
		Platform: c.Query("platform"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) report(c *gin.Context, q services.ReportQuery) {
	rep, err := h.reportsService(c).Report(c.Request.Context(), middleware.CallerUID(c), q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
