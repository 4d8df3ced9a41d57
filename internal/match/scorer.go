package match

import (
	"strings"

	"jobtrack-engine/internal/domain"
)

// Signal weights. Each signal contributes its full weight or nothing.
// The weights sum to exactly 100; Score still clamps so a future weight
// bump cannot push results past MaxScore.
const (
	WeightTitleKeyword = 25
	WeightDescKeyword  = 15
	WeightLocation     = 15
	WeightMode         = 10
	WeightExperience   = 10
	WeightSkillOverlap = 15
	WeightFreshness    = 5
	WeightSource       = 5

	MaxScore = 100

	freshDaysMax    = 2
	preferredSource = "LinkedIn"
)

// Score rates how well a posting fits the user's preferences, 0..100.
// With no criteria set it is always 0 (scoring inactive). Total for any
// input: missing posting fields behave as empty strings/sets.
func Score(job domain.JobPosting, prefs domain.MatchPreferences) int {
	if !prefs.HasCriteria() {
		return 0
	}

	score := 0

	if keywords := SplitCSV(prefs.RoleKeywords); len(keywords) > 0 {
		if anyContained(strings.ToLower(job.Title), keywords) {
			score += WeightTitleKeyword
		}
		if anyContained(strings.ToLower(job.Description), keywords) {
			score += WeightDescKeyword
		}
	}

	// Locations are matched exactly as stored, case-sensitive.
	if containsString(prefs.PreferredLocations, job.Location) {
		score += WeightLocation
	}
	if containsString(prefs.PreferredMode, job.Mode) {
		score += WeightMode
	}
	if prefs.ExperienceLevel != "" && job.Experience == prefs.ExperienceLevel {
		score += WeightExperience
	}

	if skills := SplitCSV(prefs.Skills); len(skills) > 0 && skillOverlap(skills, job.Skills) {
		score += WeightSkillOverlap
	}

	if job.PostedDaysAgo <= freshDaysMax {
		score += WeightFreshness
	}
	if job.Source == preferredSource {
		score += WeightSource
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// SplitCSV turns comma separated free text into trimmed, lower-cased
// tokens, dropping empties.
func SplitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func anyContained(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// skillOverlap is a bidirectional substring test: "react" matches
// "reactjs" and the reverse. Short tokens over-match ("go" hits
// "django"); kept as shipped behavior, flagged for product review.
func skillOverlap(userSkills, jobSkills []string) bool {
	for _, us := range userSkills {
		for _, raw := range jobSkills {
			js := strings.ToLower(raw)
			if strings.Contains(js, us) || strings.Contains(us, js) {
				return true
			}
		}
	}
	return false
}
