package httpapi

import "jobtrack-engine/internal/domain"

// JobView is a catalog posting annotated for display: score and badge
// against the current preferences, plus the user's saved/status state.
type JobView struct {
	domain.JobPosting
	MatchScore int    `json:"matchScore"`
	Badge      string `json:"badge"`
	Saved      bool   `json:"saved"`
	Status     string `json:"status"`
}

type Facets struct {
	Locations []string `json:"locations"`
	Sources   []string `json:"sources"`
}
