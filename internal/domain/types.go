package domain

// DefaultPageSize matches the "all rides" listing.
const DefaultPageSize = 50

// Pagination carries paging params and totals.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID    string `json:"userId"`
	Email     string `json:"email,omitempty"`
	RequestID string `json:"-"`
}
