package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// MaxSuggestions caps the number of names returned by Suggest
const MaxSuggestions = 5

// Suggest returns up to MaxSuggestions shape names containing query,
// ignoring case, in catalog order. An empty query yields no suggestions.
func (c *Catalog) Suggest(query string) []string {
	suggestions := []string{}

	// Surrounding whitespace is ignored, so a blank query counts as empty
	query = strings.TrimSpace(query)
	if query == "" {
		return suggestions
	}

	// cases.Caser is stateful, one per call keeps Suggest safe for concurrent use
	fold := cases.Fold()
	needle := fold.String(query)
	seen := make(map[string]bool)

	// Duplicate rows share a name; list it once
	for i := range c.shapes {
		name := c.shapes[i].Name
		if seen[name] {
			continue
		}
		if strings.Contains(fold.String(name), needle) {
			seen[name] = true
			suggestions = append(suggestions, name)
			if len(suggestions) == MaxSuggestions {
				break
			}
		}
	}

	return suggestions
}

// Select returns the first shape whose name matches exactly
func (c *Catalog) Select(name string) (*Shape, error) {
	for i := range c.shapes {
		if c.shapes[i].Name == name {
			shape := c.shapes[i]
			return &shape, nil
		}
	}
	return nil, &NotFoundError{Name: name}
}
