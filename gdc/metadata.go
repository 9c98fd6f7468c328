package gdc

import (
	"time"

	"github.com/google/uuid"

	"github.com/dendrascience/gdcsort/version"
)

// Metadata summarizes one run. It is written as run_metadata.json after the
// final table.
type Metadata struct {
	RunID        uuid.UUID `json:"run_id"`
	ToolVersion  string    `json:"tool_version"`
	Action       Action    `json:"action"`
	Cut          string    `json:"cut"`
	Verified     bool      `json:"verified"`
	TotalFiles   int       `json:"total_files"`
	OKFiles      int       `json:"ok_files"`
	MissingFiles int       `json:"missing_files"`
	Corrupted    int       `json:"corrupted_files"`
	Categories   int       `json:"categories"`
	Buckets      int       `json:"buckets"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
}

// NewMetadata starts the summary of a run.
func NewMetadata(action Action, cut Cut, started time.Time) Metadata {
	return Metadata{
		RunID:       uuid.New(),
		ToolVersion: version.GetVersion(),
		Action:      action,
		Cut:         cut.String(),
		StartedAt:   started,
	}
}

// Finish fills in the counts from the planned table and the check report.
func (m *Metadata) Finish(t *Table, report CheckReport, finished time.Time) {
	m.Verified = report.Verified
	m.TotalFiles = t.Len()
	m.OKFiles = report.OK
	m.MissingFiles = report.Missing
	m.Corrupted = report.Corrupted
	m.Categories = len(t.Categories())
	m.Buckets = len(t.Buckets())
	m.FinishedAt = finished
}

// Save writes the summary to path as JSON.
func (m Metadata) Save(path string) error {
	return WriteJSONFile(path, m)
}
