package domain

// MatchPreferences is the user's matching criteria. RoleKeywords and
// Skills are comma separated free text exactly as typed in the UI;
// splitting and lower-casing happen at scoring time.
type MatchPreferences struct {
	RoleKeywords       string   `json:"roleKeywords"`
	PreferredLocations []string `json:"preferredLocations"`
	PreferredMode      []string `json:"preferredMode"`
	ExperienceLevel    string   `json:"experienceLevel"`
	Skills             string   `json:"skills"`
	MinMatchScore      int      `json:"minMatchScore"`
}

func DefaultPreferences() MatchPreferences {
	return MatchPreferences{
		PreferredLocations: []string{},
		PreferredMode:      []string{},
		MinMatchScore:      40,
	}
}

// HasCriteria reports whether at least one matching criterion is set.
// Without criteria scoring is inactive and every job scores 0; this is
// "scoring is off", not "zero affinity". MinMatchScore alone does not
// count: it is a display threshold, not a criterion.
func (p MatchPreferences) HasCriteria() bool {
	return p.RoleKeywords != "" ||
		len(p.PreferredLocations) > 0 ||
		len(p.PreferredMode) > 0 ||
		p.ExperienceLevel != "" ||
		p.Skills != ""
}
