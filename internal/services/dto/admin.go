package dto

// CreateAdminRequest registers a new staff account.
type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=super portal"`
}

// UpdateStatusRequest moves an application along its review lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted reviewing approved rejected"`
	Notes  string `json:"notes" validate:"omitempty,max=2000"`
}

// StatusBreakdown is one slice of the dashboard stats.
type StatusBreakdown struct {
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// StatsResponse is the dashboard summary.
type StatsResponse struct {
	Total    int64                      `json:"total"`
	ByStatus map[string]StatusBreakdown `json:"by_status"`
	ByGender map[string]StatusBreakdown `json:"by_gender"`
}

// ApplicationListItem is one row of the admin listing.
type ApplicationListItem struct {
	ID              string `json:"id"`
	ReferenceNumber string `json:"reference_number"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	StartupName     string `json:"startup_name"`
	Status          string `json:"status"`
	StepCursor      int    `json:"application_step"`
	IsVerified      bool   `json:"is_verified"`
	CreatedAt       string `json:"created_at"`
}

// ApplicationListResponse is a page of the admin listing.
type ApplicationListResponse struct {
	Items    []ApplicationListItem `json:"items"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}
