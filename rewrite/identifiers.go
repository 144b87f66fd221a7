package rewrite

import (
	"sort"

	"github.com/maruel/natural"
)

// Targets returns all target names in natural order, for deterministic
// emission of the map.
func (m IdentifierMap) Targets() []string {
	targets := make([]string, 0, len(m))
	for t := range m {
		targets = append(targets, t)
	}
	sort.Sort(natural.StringSlice(targets))
	return targets
}
