package digest

import "time"

// TopN is how many postings a daily digest carries at most.
const TopN = 10

// Entry is a denormalized snapshot of a posting at generation time.
// Later catalog or preference edits never alter a persisted digest.
type Entry struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Company       string `json:"company"`
	Location      string `json:"location"`
	Mode          string `json:"mode"`
	Experience    string `json:"experience"`
	MatchScore    int    `json:"matchScore"`
	SalaryRange   string `json:"salaryRange"`
	ApplyURL      string `json:"applyUrl"`
	PostedDaysAgo int    `json:"postedDaysAgo"`
}

// Digest is the once-per-day top-N snapshot. IsEmpty marks a digest
// that was generated but matched nothing, which still counts as the
// day's digest and blocks regeneration until the date rolls over.
type Digest struct {
	Date        string  `json:"date"`        // YYYY-MM-DD, local calendar day
	GeneratedAt string  `json:"generatedAt"` // RFC3339, UTC
	IsEmpty     bool    `json:"isEmpty,omitempty"`
	Jobs        []Entry `json:"jobs"`
}

// DateKey is the storage key for t's local calendar day.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
