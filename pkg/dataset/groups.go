package dataset

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseGroups resolves a Group cell into a non-empty ordered list of names.
//
// Accepted forms:
//   - a plain string: "Fishers"
//   - a bracketed JSON list string: `["Government","Fishers"]`
//   - a native list decoded from JSON, YAML or TOML
//
// Names are trimmed, empty names are rejected, and duplicates are removed
// keeping the first occurrence.
func ParseGroups(v any) ([]string, error) {
	var raw []string
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if strings.HasPrefix(s, "[") {
			if err := json.Unmarshal([]byte(s), &raw); err != nil {
				return nil, fmt.Errorf("invalid group list %q: %w", s, err)
			}
		} else {
			raw = []string{s}
		}
	case []string:
		raw = val
	case []any:
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("group list entry %v is not a string", item)
			}
			raw = append(raw, s)
		}
	case nil:
		return nil, fmt.Errorf("group is empty")
	default:
		raw = []string{fmt.Sprint(val)}
	}

	seen := make(map[string]bool, len(raw))
	groups := make([]string, 0, len(raw))
	for _, g := range raw {
		g = strings.TrimSpace(g)
		if g == "" {
			return nil, fmt.Errorf("group name cannot be empty")
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("group list is empty")
	}
	return groups, nil
}
