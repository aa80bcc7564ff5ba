package model

import "fmt"

// IssueKind classifies a per-record validation failure.
type IssueKind string

const (
	// IssueSchema covers missing or duplicate identifiers and broken
	// foreign keys.
	IssueSchema IssueKind = "schema"
	// IssueGeometry covers malformed cell polygons.
	IssueGeometry IssueKind = "geometry"
	// IssueValue covers boolean attributes outside {0,1} and weights
	// outside [0,1].
	IssueValue IssueKind = "value"
)

// Issue records one skipped or flagged record. Issues never abort a
// run on their own; they are aggregated and surfaced at the end so
// planners can see what was excluded.
type Issue struct {
	Kind     IssueKind
	Layer    string
	RecordID string
	Reason   string
}

func (i Issue) String() string {
	id := i.RecordID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Sprintf("%s/%s [%s]: %s", i.Layer, id, i.Kind, i.Reason)
}
