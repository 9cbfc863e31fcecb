package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// New creates an empty report for the given run parameters.
func New(inputDir, profileName string, quality, maxDimension, workers int) *Report {
	return &Report{
		Version:      SupportedVersion,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		InputDir:     inputDir,
		Profile:      profileName,
		Quality:      quality,
		MaxDimension: maxDimension,
		Workers:      workers,
	}
}

// ComputeCounts recalculates aggregates from the entries.
func (r *Report) ComputeCounts() {
	var c Counts
	c.Total = len(r.Entries)
	for _, e := range r.Entries {
		switch e.Status {
		case StatusProcessed:
			c.Processed++
			c.InputBytes += e.SrcSize
			c.OutputBytes += e.OutSize
		case StatusSkipped:
			c.Skipped++
		case StatusFailed:
			c.Failed++
		}
	}
	r.Counts = c
}

// WriteJSON serializes the report to path with entries in path order,
// so identical runs produce identical files.
func WriteJSON(r *Report, path string) error {
	r.ComputeCounts()
	sort.Slice(r.Entries, func(i, j int) bool {
		return r.Entries[i].Path < r.Entries[j].Path
	})

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Load reads a report file and rejects unsupported schema versions.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	if r.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported report version: %d", r.Version)
	}
	return &r, nil
}
