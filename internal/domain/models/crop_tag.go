package models

import "strings"

// CropTag is the normalized crop label carried by grain tickets.
type CropTag string

const (
	TagCorn    CropTag = "corn"
	TagBeans   CropTag = "beans"
	TagAmylose CropTag = "amylose"
)

// CropTagRule maps any of its patterns, found as a substring, to a tag.
type CropTagRule struct {
	Patterns []string
	Tag      CropTag
}

// CropTagRules are evaluated in order; the first matching rule wins.
var CropTagRules = []CropTagRule{
	{Patterns: []string{"amylose"}, Tag: TagAmylose},
	{Patterns: []string{"bean", "soy"}, Tag: TagBeans},
	{Patterns: []string{"corn"}, Tag: TagCorn},
}

// NormalizeCropTag derives a ticket crop tag from free-form commodity text.
// Text matching no rule is kept lower-cased; empty text defaults to corn.
func NormalizeCropTag(raw string) string {
	normalized := strings.ToLower(raw)

	for _, rule := range CropTagRules {
		for _, pattern := range rule.Patterns {
			if strings.Contains(normalized, pattern) {
				return string(rule.Tag)
			}
		}
	}

	if normalized == "" {
		return string(TagCorn)
	}
	return normalized
}
