package domain

// Work mode buckets as they appear in the catalog feed.
const (
	ModeRemote = "Remote"
	ModeHybrid = "Hybrid"
	ModeOnsite = "Onsite"
)

// Experience buckets used by catalog feeds and preferences.
const (
	ExperienceFresher = "Fresher"
	ExperienceJunior  = "0-1"
	ExperienceMid     = "1-3"
	ExperienceSenior  = "3-5"
)

// JobPosting is one catalog entry. Postings are loaded once at startup
// and never mutated; anything derived from them (match score, digest
// line items) is computed or copied elsewhere.
type JobPosting struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Company       string   `json:"company"`
	Location      string   `json:"location"`
	Mode          string   `json:"mode"`
	Experience    string   `json:"experience"`
	Description   string   `json:"description"`
	Skills        []string `json:"skills"`
	SalaryRange   string   `json:"salaryRange"`
	ApplyURL      string   `json:"applyUrl"`
	PostedDaysAgo int      `json:"postedDaysAgo"`
	Source        string   `json:"source"`
}
