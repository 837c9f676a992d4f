package services

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
)

// maxSynonymsPerTag caps how many synonyms one tag contributes to a query.
const maxSynonymsPerTag = 5

// TagExpansionService expands organizer tags into search keywords through a
// static synonym dictionary.
type TagExpansionService struct {
	synonyms map[string][]string
	mu       sync.RWMutex
}

// NewTagExpansionService creates a service backed by the built-in dictionary.
func NewTagExpansionService() *TagExpansionService {
	return &TagExpansionService{synonyms: defaultSynonyms()}
}

// NewTagExpansionServiceFromFile loads a JSON tag→synonyms dictionary,
// merged over the built-in one.
func NewTagExpansionServiceFromFile(path string) (*TagExpansionService, error) {
	s := NewTagExpansionService()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var mappings map[string][]string
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range mappings {
		s.synonyms[strings.ToLower(k)] = v
	}
	return s, nil
}

// Expand returns the tag itself plus up to maxSynonymsPerTag synonyms.
func (s *TagExpansionService) Expand(tag string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil
	}

	expanded := []string{tag}
	for i, syn := range s.synonyms[tag] {
		if i >= maxSynonymsPerTag {
			break
		}
		expanded = append(expanded, syn)
	}
	return expanded
}

// ExpandAll expands every tag and deduplicates the combined keyword list,
// preserving first-seen order.
func (s *TagExpansionService) ExpandAll(tags []string) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, tag := range tags {
		for _, kw := range s.Expand(tag) {
			if !seen[kw] {
				keywords = append(keywords, kw)
				seen[kw] = true
			}
		}
	}
	return keywords
}

func defaultSynonyms() map[string][]string {
	return map[string][]string{
		"quiet":    {"calm", "hideaway", "cozy", "relaxed"},
		"wine":     {"wine bar", "bistro", "natural wine"},
		"beer":     {"craft beer", "brewery", "beer hall", "tap room"},
		"sake":     {"izakaya", "sake bar", "standing bar"},
		"coffee":   {"cafe", "roastery", "espresso", "specialty coffee"},
		"sweets":   {"dessert", "patisserie", "pancake", "parfait"},
		"ramen":    {"noodles", "tsukemen"},
		"sushi":    {"seafood", "kaitenzushi"},
		"yakiniku": {"bbq", "grill", "horumon"},
		"vegan":    {"vegetarian", "organic", "plant based"},
		"cheap":    {"budget", "casual", "standing bar"},
		"fancy":    {"fine dining", "upscale", "course menu"},
		"wifi":     {"work cafe", "coworking", "power outlet"},
		"study":    {"study cafe", "library", "quiet cafe"},
		"date":     {"romantic", "night view", "candlelit"},
		"group":    {"private room", "party", "banquet"},
		"music":    {"live house", "jazz", "vinyl"},
		"art":      {"gallery", "museum", "exhibition"},
		"outdoor":  {"terrace", "rooftop", "garden", "park"},
		"games":    {"arcade", "board game", "darts", "karaoke"},
	}
}
