package domain

// PreferenceProfile is a user's derived preference profile. It is recomputed
// per request from the trailing engagement window and never persisted, so it
// is always current at the cost of recomputation.
type PreferenceProfile struct {
	Cities     []string `json:"preferredCities"`
	Sources    []string `json:"preferredSources"`
	Categories []string `json:"preferredCategories"`
	Keywords   []string `json:"preferredKeywords"`
}

// Empty reports whether the profile carries no signal at all. Personalization
// is a strict no-op for empty profiles.
func (p PreferenceProfile) Empty() bool {
	return len(p.Cities) == 0 && len(p.Sources) == 0 &&
		len(p.Categories) == 0 && len(p.Keywords) == 0
}
