package entities

const (
	// MinTagWeight and MaxTagWeight bound every learned tag weight.
	MinTagWeight = 0.1
	MaxTagWeight = 5.0

	// DefaultTagWeight is assumed for tags the user has no history for.
	DefaultTagWeight = 1.0
)

// PreferenceVector holds a user's learned tag affinities plus their
// explicitly stated likes. Mutated only by the preference learner;
// read-only everywhere else.
type PreferenceVector struct {
	Weights            map[string]float64 `json:"weights"`
	LikedTags          []string           `json:"liked_tags,omitempty"`
	LikedCategories    []string           `json:"liked_categories,omitempty"`
	DislikedCategories []string           `json:"disliked_categories,omitempty"`
	Budget             int                `json:"budget,omitempty"`
}

// NewPreferenceVector returns an empty vector ready for updates.
func NewPreferenceVector() *PreferenceVector {
	return &PreferenceVector{Weights: make(map[string]float64)}
}

// Weight returns the learned weight for a tag, defaulting to 1.0.
func (p *PreferenceVector) Weight(tag string) float64 {
	if p == nil || p.Weights == nil {
		return DefaultTagWeight
	}
	if w, ok := p.Weights[tag]; ok {
		return w
	}
	return DefaultTagWeight
}

// Likes reports whether the tag appears in the user's explicit liked lists.
func (p *PreferenceVector) Likes(tag string) bool {
	if p == nil {
		return false
	}
	for _, t := range p.LikedTags {
		if t == tag {
			return true
		}
	}
	return false
}

// ClampWeight bounds a weight to [MinTagWeight, MaxTagWeight].
func ClampWeight(w float64) float64 {
	if w < MinTagWeight {
		return MinTagWeight
	}
	if w > MaxTagWeight {
		return MaxTagWeight
	}
	return w
}
