package entities

// Synthetic region names produced by the midpoint resolver. Keyword
// expansion must not prefix queries with these.
const (
	RegionNameNearMe   = "near me"
	RegionNameMidpoint = "midpoint"
)

// CandidateRegion is a named location considered as a meeting point.
// Produced by the midpoint resolver, consumed once per request.
type CandidateRegion struct {
	Name     string   `json:"name"`
	Location Location `json:"location"`
	// Score is the aggregate travel-time score (lower is better). Zero for
	// synthetic fallback regions.
	Score float64 `json:"score,omitempty"`
}

// IsSynthetic reports whether the region carries a placeholder label rather
// than a gazetteer or free-text name.
func (r CandidateRegion) IsSynthetic() bool {
	return r.Name == RegionNameNearMe || r.Name == RegionNameMidpoint
}

// RankedVenue is a venue scored against the participants' preferences.
type RankedVenue struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Location Location `json:"location"`
	Score    float64  `json:"score"`
}

// RegionResult is one candidate region with its ranked venues, in the order
// they should be presented.
type RegionResult struct {
	Name     string        `json:"name"`
	Location Location      `json:"location"`
	Venues   []RankedVenue `json:"venues"`
}
