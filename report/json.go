package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Snapshot is a JSON-friendly representation of a finished Report, additive
// to the rendered text report: a parallel marshalable struct built from
// live state.
type Snapshot struct {
	Trace          string          `json:"trace"`
	Config         string          `json:"config"`
	Accesses       uint64          `json:"accesses"`
	Hits           uint64          `json:"hits"`
	Misses         uint64          `json:"misses"`
	TotalLatency   uint64          `json:"totalLatency"`
	Replacements   uint64          `json:"replacements"`
	Prefetches     uint64          `json:"prefetches"`
	PrefetchMisses uint64          `json:"prefetchMisses"`
	Levels         []LevelSnapshot `json:"levels"`
}

type LevelSnapshot struct {
	Name     string  `json:"name"`
	Accesses uint64  `json:"accesses"`
	Hits     uint64  `json:"hits"`
	Misses   uint64  `json:"misses"`
	MissRate float64 `json:"missRate"`
	AMAT     float64 `json:"amat"`
}

// Snapshot builds the JSON-friendly view of r.
func (r *Report) Snapshot() Snapshot {
	snap := Snapshot{
		Trace:          r.TraceName,
		Config:         r.ConfigName,
		Accesses:       r.Metrics.Accesses,
		Hits:           r.Metrics.Hits,
		Misses:         r.Metrics.Misses,
		TotalLatency:   r.Metrics.TotalLatency,
		Replacements:   r.Metrics.ReplacementCount(),
		Prefetches:     r.Metrics.PrefetchCount(),
		PrefetchMisses: r.Metrics.PrefetchMissCount(),
	}
	for _, row := range r.Rows() {
		snap.Levels = append(snap.Levels, LevelSnapshot{
			Name:     row.Name,
			Accesses: row.Accesses,
			Hits:     row.Hits,
			Misses:   row.Misses,
			MissRate: row.MissRate,
			AMAT:     row.AMAT,
		})
	}
	return snap
}

// ReportJSON marshals r's Snapshot to an indented JSON string.
func (r *Report) ReportJSON() (string, error) {
	data, err := json.MarshalIndent(r.Snapshot(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshaling snapshot: %w", err)
	}
	return string(data), nil
}

// SaveJSON writes the JSON snapshot to
// <outputDir>/<traceBasename>_<configBasename>.json.
func (r *Report) SaveJSON(outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s_%s.json", baseName(r.TraceName), baseName(r.ConfigName))
	path := filepath.Join(outputDir, name)

	body, err := r.ReportJSON()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
