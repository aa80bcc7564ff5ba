package model

import "github.com/twpayne/go-geom"

// Tier identifies the coverage role of a site.
type Tier string

const (
	// TierA is a long-range corridor-level site whose coverage can
	// satisfy local Tier B demand.
	TierA Tier = "A"
	// TierB is a local hex-level site.
	TierB Tier = "B"
)

// SiteStatus is the satisfaction state of a Tier B site. The coverage
// stage only ever transitions PENDING to SATISFIED, never back.
type SiteStatus string

const (
	StatusPending   SiteStatus = "PENDING"
	StatusSatisfied SiteStatus = "SATISFIED"
)

// NotesAlt marks a Tier B alternate site. Alternates model redundancy
// that Tier A coverage cannot substitute for. An empty notes value (or
// NotesRequired) marks a required site.
const (
	NotesAlt      = "ALT"
	NotesRequired = "REQUIRED"
)

// Site is one installed or candidate radio site.
type Site struct {
	SiteID   string
	SiteName string
	Tier     Tier
	Status   SiteStatus
	Notes    string

	ZoneID     string
	CellID     string
	CorridorID string

	// Provenance written by the coverage stage when a Tier B required
	// site is satisfied by Tier A coverage.
	SatisfiedBy         string
	SatisfiedCorridorID string

	Point geom.Coord

	Extra map[string]any
}

// Alternate reports whether the site is a Tier B alternate.
func (s *Site) Alternate() bool { return s.Notes == NotesAlt }

// RequiredTierB reports whether the site counts against a cell's
// required Tier B demand.
func (s *Site) RequiredTierB() bool { return s.Tier == TierB && !s.Alternate() }
