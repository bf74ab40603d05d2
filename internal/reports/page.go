package reports

import (
	"ridetracker/internal/domain"
	"ridetracker/internal/domain/models"
)

type Page struct {
	Trips      []models.Trip     `json:"trips"`
	Pagination domain.Pagination `json:"pagination"`
}

// Paginate sorts newest first and slices one page. Out-of-range pages are
// clamped to the nearest valid page.
func Paginate(trips []models.Trip, page, perPage int) Page {
	if perPage <= 0 {
		perPage = domain.DefaultPageSize
	}
	total := len(trips)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	sorted := Recent(trips, 0)
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}

	return Page{
		Trips: sorted[start:end],
		Pagination: domain.Pagination{
			Page:       page,
			PageSize:   perPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
