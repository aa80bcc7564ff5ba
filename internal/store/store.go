// Package store persists coverage run history so planners can compare
// satisfaction results across reruns of the pipeline.
package store

import (
	"context"
	"time"

	"github.com/ridgeline-comms/meshplan/internal/rollup"
)

// CoverageRun is one recorded pass of the coverage satisfier.
type CoverageRun struct {
	ID        string
	StartedAt time.Time
	SitesPath string
	CellsPath string
	Satisfied int
	TierAUsed int
	Flagged   int
	Rollups   []rollup.Row
}

// Store defines the persistence interface for coverage run history.
type Store interface {
	RecordRun(ctx context.Context, run *CoverageRun) error
	GetRun(ctx context.Context, runID string) (*CoverageRun, error)
	ListRuns(ctx context.Context, limit int) ([]CoverageRun, error)

	Migrate(ctx context.Context) error
	Close() error
}
