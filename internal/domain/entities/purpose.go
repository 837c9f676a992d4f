package entities

import "fmt"

// Purpose is the stated meeting intent driving keyword and category defaults.
type Purpose string

const (
	PurposeMeal     Purpose = "meal"
	PurposeDrinks   Purpose = "drinks"
	PurposeCafe     Purpose = "cafe"
	PurposeStudy    Purpose = "study"
	PurposeWork     Purpose = "work"
	PurposeCulture  Purpose = "culture"
	PurposeActivity Purpose = "activity"
)

// ParsePurpose validates a purpose label. An unknown label is the one hard
// failure the recommendation entry point reports to its caller.
func ParsePurpose(label string) (Purpose, error) {
	switch p := Purpose(label); p {
	case PurposeMeal, PurposeDrinks, PurposeCafe, PurposeStudy, PurposeWork, PurposeCulture, PurposeActivity:
		return p, nil
	default:
		return "", fmt.Errorf("unknown purpose %q", label)
	}
}

// DefaultKeywords returns the search keywords used when the organizer gave
// no explicit tags.
func (p Purpose) DefaultKeywords() []string {
	switch p {
	case PurposeMeal:
		return []string{"restaurant", "dinner", "lunch"}
	case PurposeDrinks:
		return []string{"bar", "izakaya", "pub"}
	case PurposeCafe:
		return []string{"cafe", "coffee"}
	case PurposeStudy:
		return []string{"study cafe", "quiet cafe", "library"}
	case PurposeWork:
		return []string{"coworking", "workspace", "wifi cafe"}
	case PurposeCulture:
		return []string{"museum", "gallery", "theater"}
	case PurposeActivity:
		return []string{"bowling", "karaoke", "arcade"}
	default:
		return []string{string(p)}
	}
}

// CategoryAllowList returns the venue categories accepted for the purpose
// when no keyword matches.
func (p Purpose) CategoryAllowList() []Category {
	switch p {
	case PurposeMeal:
		return []Category{CategoryDining}
	case PurposeDrinks:
		return []Category{CategoryBar, CategoryDining}
	case PurposeCafe:
		return []Category{CategoryCafe}
	case PurposeStudy:
		return []Category{CategoryCafe, CategoryWorkspace}
	case PurposeWork:
		return []Category{CategoryWorkspace, CategoryCafe}
	case PurposeCulture:
		return []Category{CategoryCulture}
	case PurposeActivity:
		return []Category{CategoryActivity}
	default:
		return nil
	}
}

// AllowsCategory reports whether the category is in the purpose allow-list.
func (p Purpose) AllowsCategory(c Category) bool {
	for _, allowed := range p.CategoryAllowList() {
		if allowed == c {
			return true
		}
	}
	return false
}
