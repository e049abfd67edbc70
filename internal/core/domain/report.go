package domain

import "fmt"

// ReportObject is a rendered artefact ready for storage: an HTML report
// page or the drug-list TSV.
type ReportObject struct {
	// Key is the storage key relative to the configured prefix,
	// e.g. "ACE2.html".
	Key string

	// ContentType is the MIME type to store with the object.
	ContentType string

	// Body is the rendered content.
	Body []byte

	// Public marks the object for public-read access.
	Public bool
}

// DrugEntry is one row of the ranked drug list: a compound with its
// aggregated evidence count across all targets.
type DrugEntry struct {
	// Name is the compound name.
	Name string

	// Namespace and ID give the compound's preferred grounding,
	// empty when ungrounded.
	Namespace string
	ID        string

	// EvidenceCount is the total evidence supporting inhibition
	// statements with this compound as subject.
	EvidenceCount int
}

// Label formats the entry's compound column, appending the grounding when
// present: "camostat (CHEBI:CHEBI:135632)".
func (d DrugEntry) Label() string {
	if d.Namespace == "" {
		return d.Name
	}
	return fmt.Sprintf("%s (%s:%s)", d.Name, d.Namespace, d.ID)
}
