package evaluation

import "strings"

// Names maps short model codes used in stored artifacts to display names.
// The zero value passes every id through unchanged.
type Names struct {
	m map[string]string
}

// DefaultNames holds the renames applied to Surprise model ids.
var DefaultNames = NewNames(map[string]string{
	"rand":     "NormalPredictor",
	"Baseline": "BaselineOnly",
	"CC":       "CoClustering",
})

// NewNames builds a lookup table from code to display name. Chains are
// resolved up front so Display is idempotent.
func NewNames(codes map[string]string) Names {
	m := make(map[string]string, len(codes))
	for code, name := range codes {
		seen := map[string]bool{code: true}
		for {
			next, ok := codes[name]
			if !ok || seen[name] {
				break
			}
			seen[name] = true
			name = next
		}
		m[code] = name
	}
	return Names{m: m}
}

// Display returns the display name for id, or id itself when unknown.
func (n Names) Display(id string) string {
	if name, ok := n.m[id]; ok {
		return name
	}
	return id
}

// Len returns the number of known codes.
func (n Names) Len() int {
	return len(n.m)
}

// normalizeID applies the prefix/suffix cosmetics and the rename table.
func normalizeID(id string, cfg flattenConfig) string {
	if cfg.prefix != "" {
		id = strings.TrimPrefix(id, cfg.prefix)
	}
	if cfg.suffix != "" {
		id = strings.TrimSuffix(id, cfg.suffix)
	}
	return cfg.names.Display(id)
}
