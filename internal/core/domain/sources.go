package domain

// EvidenceSources is the fixed, ordered list of extraction sources tallied
// per statement. The order is preserved in rendered reports.
var EvidenceSources = []string{
	"reach",
	"phosphosite",
	"pc11",
	"hprd",
	"medscan",
	"trrust",
	"isi",
	"signor",
	"sparser",
	"rlimsp",
	"cbn",
	"tas",
	"bel_lc",
	"biogrid",
	"trips",
	"eidos",
}

// SourceCounts tallies evidence per extraction source for one statement.
type SourceCounts map[string]int

// NewSourceCounts returns a tally with every known source at zero, so
// rendered tallies always cover the full source list.
func NewSourceCounts() SourceCounts {
	sc := make(SourceCounts, len(EvidenceSources))
	for _, src := range EvidenceSources {
		sc[src] = 0
	}
	return sc
}

// CountEvidence tallies the statement's evidence by source. Sources outside
// the known list are still counted under their own name.
func CountEvidence(stmt *Statement) SourceCounts {
	sc := NewSourceCounts()
	for _, ev := range stmt.Evidence {
		sc[ev.SourceAPI]++
	}
	return sc
}
