package rewrite

import "strings"

// sanitizer derives host-safe target names from raw CSS identifiers and
// tracks the two collision classes.
//
// NOTE: collision bookkeeping runs only when the raw identifier contains a
// hyphen. An identifier that happens to equal another identifier's sanitized
// form but carries no hyphen itself is never checked from its own side (it is
// still caught from the hyphenated side through the verbatim-existence
// check). Kept as-is from the original behavior, see DESIGN.md.
type sanitizer struct {
	existing map[string]struct{} // raw identifiers present verbatim in the unit
	byTarget map[string]string   // sanitized name -> first raw identifier producing it
	cache    map[string]string   // raw identifier -> sanitized name
}

func newSanitizer() *sanitizer {
	return &sanitizer{
		existing: make(map[string]struct{}),
		byTarget: make(map[string]string),
		cache:    make(map[string]string),
	}
}

// addExisting records a raw identifier (variable names without their leading
// "--") as present verbatim in the compilation unit.
func (s *sanitizer) addExisting(raw string) {
	s.existing[raw] = struct{}{}
}

// target derives the host-safe name for a raw identifier. The raw name must
// already be stripped of any leading "." / "#" / "--".
func (s *sanitizer) target(raw string) (string, error) {
	if !strings.Contains(raw, "-") {
		return raw, nil
	}
	if cached, ok := s.cache[raw]; ok {
		return cached, nil
	}
	t := strings.ReplaceAll(raw, "-", "_")
	if _, ok := s.existing[t]; ok && t != raw {
		return "", &CollisionError{Target: t, First: t, Second: raw, Existing: true}
	}
	if first, ok := s.byTarget[t]; ok && first != raw {
		return "", &CollisionError{Target: t, First: first, Second: raw}
	}
	s.byTarget[t] = raw
	s.cache[raw] = t
	return t, nil
}
