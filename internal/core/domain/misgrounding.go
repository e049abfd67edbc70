package domain

// MisgroundingMap lists, per target, raw-text strings known to be wrongly
// grounded to that target. Statements whose object was extracted from one
// of these strings are dropped before assembly.
type MisgroundingMap map[string][]string

// DefaultMisgroundings covers the known bad groundings for the default
// target set. "MEP" grounds to CTSL via an obsolete synonym, "APPs" is the
// amyloid precursor protein abbreviation, and "pace"/"Fur" are common-word
// collisions with FURIN aliases.
func DefaultMisgroundings() MisgroundingMap {
	return MisgroundingMap{
		"CTSL":  {"MEP"},
		"CTSB":  {"APPs"},
		"FURIN": {"pace", "Fur"},
	}
}

// Matches reports whether text is a known misgrounding for target.
func (m MisgroundingMap) Matches(target, text string) bool {
	for _, bad := range m[target] {
		if text == bad {
			return true
		}
	}
	return false
}
