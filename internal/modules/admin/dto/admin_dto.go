package dto

type SetVerifiedInput struct {
	Verified *bool `json:"verified" binding:"required"`
}

// MetricsResponse is the admin dashboard summary.
type MetricsResponse struct {
	Students         int64 `json:"students"`
	Startups         int64 `json:"startups"`
	VerifiedStartups int64 `json:"verified_startups"`
	Roles            int64 `json:"roles"`
	Applications     int64 `json:"applications"`
	Placements       int64 `json:"placements"`
}
