// Package report renders a finished simulation's Metrics into the terminal
// and into saved output files: a formatted text block with a config echo
// and a per-level table, plus a JSON snapshot for tooling to consume.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/memhier/cachesim/config"
	"github.com/memhier/cachesim/controller"
	"github.com/memhier/cachesim/hierarchy"
	"github.com/memhier/cachesim/log"
)

// Report holds everything needed to render a finished run.
type Report struct {
	TraceName  string
	ConfigName string
	Config     *config.Document
	Hierarchy  *hierarchy.Hierarchy
	Metrics    *controller.Metrics
}

// LevelRow is one rendered row of the per-level table.
type LevelRow struct {
	Name     string
	Accesses uint64
	Hits     uint64
	Misses   uint64
	MissRate float64
	AMAT     float64
}

// Rows builds the per-level table rows in hierarchy order.
func (r *Report) Rows() []LevelRow {
	rows := make([]LevelRow, 0, r.Hierarchy.Depth())
	for _, level := range r.Hierarchy.Levels() {
		stats := r.Metrics.LevelStats(level.Name())
		missRate := 0.0
		if stats.Accesses > 0 {
			missRate = float64(stats.Misses) / float64(stats.Accesses)
		}
		amat, _ := r.Metrics.CachedAMAT(level.Name())
		rows = append(rows, LevelRow{
			Name:     level.Name(),
			Accesses: stats.Accesses,
			Hits:     stats.Hits,
			Misses:   stats.Misses,
			MissRate: missRate,
			AMAT:     amat,
		})
	}
	return rows
}

// Render writes the formatted text block to w. useColor controls whether
// ANSI color codes are emitted; callers reserve that for a real terminal.
func (r *Report) Render(w io.Writer, useColor bool) {
	header := color.New(color.FgCyan, color.Bold)
	label := color.New(color.FgYellow)
	if !useColor {
		header.DisableColor()
		label.DisableColor()
	}

	header.Fprintf(w, "cachesim report: trace=%s config=%s\n", r.TraceName, r.ConfigName)
	label.Fprintf(w, "accesses=%d hits=%d misses=%d total_latency=%d replacements=%d prefetches=%d prefetch_misses=%d\n",
		r.Metrics.Accesses, r.Metrics.Hits, r.Metrics.Misses, r.Metrics.TotalLatency,
		r.Metrics.ReplacementCount(), r.Metrics.PrefetchCount(), r.Metrics.PrefetchMissCount())

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Level", "Accesses", "Hits", "Misses", "Miss Rate", "AMAT"})
	for _, row := range r.Rows() {
		table.Append([]string{
			row.Name,
			fmt.Sprintf("%d", row.Accesses),
			fmt.Sprintf("%d", row.Hits),
			fmt.Sprintf("%d", row.Misses),
			fmt.Sprintf("%.4f", row.MissRate),
			fmt.Sprintf("%.2f", row.AMAT),
		})
	}
	table.Render()
}

// PrintToTerminal renders the report to stdout, enabling color only when
// stdout is an actual terminal.
func (r *Report) PrintToTerminal() {
	useColor := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	out := colorable.NewColorableStdout()
	r.Render(out, useColor)
}

// Save writes the text report (no color codes) to
// <outputDir>/<traceBasename>_<configBasename>.txt. I/O failures are logged
// and returned, but the caller should not abort the whole run over them:
// a report failing to save never invalidates the simulation that already
// ran.
func (r *Report) Save(outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		log.Error("report: could not create output directory", "dir", outputDir, "error", err)
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", baseName(r.TraceName), baseName(r.ConfigName))
	path := filepath.Join(outputDir, name)

	var buf bytes.Buffer
	r.Render(&buf, false)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		log.Error("report: could not save report", "path", path, "error", err)
		return "", err
	}
	return path, nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
