package catalog

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions bounds the "did you mean" list.
const maxSuggestions = 3

// Suggest returns the template ids closest to an unknown id, best match
// first. Ids are matched as subsequences, so "reactts" finds "react-ts".
func (c *Catalog) Suggest(id string) []string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil
	}

	matches := fuzzy.Find(id, c.ids)
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
