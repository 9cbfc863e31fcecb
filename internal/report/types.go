// Package report records the outcome of one compression run as a
// versioned JSON document inside the output subtree.
package report

// Report is the top-level record of one run.
type Report struct {
	Version      int     `json:"version"`
	GeneratedAt  string  `json:"generated_at"`
	InputDir     string  `json:"input_dir"`
	Profile      string  `json:"profile"`
	Quality      int     `json:"quality"`
	MaxDimension int     `json:"max_dimension"`
	Workers      int     `json:"workers"`
	Entries      []Entry `json:"entries"`
	Counts       Counts  `json:"counts"`
}

// Entry is the outcome for a single discovered image.
type Entry struct {
	Path    string `json:"path"`               // relative to the input root
	Status  string `json:"status"`             // processed, skipped or failed
	Cause   string `json:"cause,omitempty"`    // failure detail
	OutPath string `json:"out_path,omitempty"` // relative to the output root
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	SrcSize int64  `json:"src_size,omitempty"`
	OutSize int64  `json:"out_size,omitempty"`
	Hash    string `json:"hash,omitempty"` // xxhash64 of the output, 16 hex chars
}

// Counts aggregates run totals.
type Counts struct {
	Total       int   `json:"total"`
	Processed   int   `json:"processed"`
	Skipped     int   `json:"skipped"`
	Failed      int   `json:"failed"`
	InputBytes  int64 `json:"input_bytes"`
	OutputBytes int64 `json:"output_bytes"`
}

// Entry statuses.
const (
	StatusProcessed = "processed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// SupportedVersion is the current schema version.
const SupportedVersion = 1

// FileName is where a run writes its report inside the output subtree.
const FileName = "imgpress.report.json"
