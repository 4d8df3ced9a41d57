package catalog

import (
	"sort"
	"strings"

	"jobtrack-engine/internal/domain"
)

const (
	SortLatest = "latest"
	SortOldest = "oldest"
)

// Filters mirror the listing controls: keyword searches title and
// company, the rest are exact matches against stored values.
type Filters struct {
	Keyword    string
	Location   string
	Mode       string
	Experience string
	Source     string
	Sort       string // latest (default) | oldest
}

// Apply filters and orders a copy of jobs. The input slice is never
// reordered, so catalog order survives for digest tie-breaking.
func Apply(jobs []domain.JobPosting, f Filters) []domain.JobPosting {
	kw := strings.ToLower(strings.TrimSpace(f.Keyword))

	out := make([]domain.JobPosting, 0, len(jobs))
	for _, j := range jobs {
		if kw != "" &&
			!strings.Contains(strings.ToLower(j.Title), kw) &&
			!strings.Contains(strings.ToLower(j.Company), kw) {
			continue
		}
		if f.Location != "" && j.Location != f.Location {
			continue
		}
		if f.Mode != "" && j.Mode != f.Mode {
			continue
		}
		if f.Experience != "" && j.Experience != f.Experience {
			continue
		}
		if f.Source != "" && j.Source != f.Source {
			continue
		}
		out = append(out, j)
	}

	switch f.Sort {
	case SortOldest:
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].PostedDaysAgo > out[b].PostedDaysAgo
		})
	default: // latest
		sort.SliceStable(out, func(a, b int) bool {
			return out[a].PostedDaysAgo < out[b].PostedDaysAgo
		})
	}
	return out
}

// Locations returns the unique locations in the catalog, sorted.
func Locations(jobs []domain.JobPosting) []string {
	return uniqSorted(jobs, func(j domain.JobPosting) string { return j.Location })
}

// Sources returns the unique sources in the catalog, sorted.
func Sources(jobs []domain.JobPosting) []string {
	return uniqSorted(jobs, func(j domain.JobPosting) string { return j.Source })
}

func uniqSorted(jobs []domain.JobPosting, field func(domain.JobPosting) string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, j := range jobs {
		v := field(j)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// ByID finds a posting in the catalog.
func ByID(jobs []domain.JobPosting, id int64) (domain.JobPosting, bool) {
	for _, j := range jobs {
		if j.ID == id {
			return j, true
		}
	}
	return domain.JobPosting{}, false
}
