package localfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mikkovaltonen/mrp-pipeline/internal/application/usecase"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

const summaryFile = "last_data_prep_summary.md"

const topFamilies = 10

// SummaryWriter renders a markdown summary of the last pipeline run, next to
// the JSON backup. Operators read this file instead of the run logs.
type SummaryWriter struct {
	dir string
}

func NewSummaryWriter(dir string) *SummaryWriter {
	return &SummaryWriter{dir: dir}
}

// Write renders the report of a successful run.
func (w *SummaryWriter) Write(report *usecase.RunReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Data Preparation Execution Summary\n\n")
	fmt.Fprintf(&b, "## Run Information\n\n")
	fmt.Fprintf(&b, "- **Run ID**: %s\n", report.RunID)
	fmt.Fprintf(&b, "- **Execution Time**: %s\n", report.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **As-Of Date**: %s\n", report.AsOf.Format("2006-01-02"))
	fmt.Fprintf(&b, "- **Duration**: %.2f seconds\n", report.Duration.Seconds())
	fmt.Fprintf(&b, "- **Status**: SUCCESS\n\n")

	fmt.Fprintf(&b, "## Processing Statistics\n\n")
	fmt.Fprintf(&b, "### Input Data\n")
	fmt.Fprintf(&b, "- **Movement Rows Processed**: %d\n", report.MovementCount)
	fmt.Fprintf(&b, "- **Material Master Records**: %d\n\n", report.CatalogCount)
	fmt.Fprintf(&b, "### Output Data\n")
	fmt.Fprintf(&b, "- **Substrate Families**: %d\n", report.FamilyCount)
	fmt.Fprintf(&b, "- **Materials Processed**: %d\n", report.MaterialCount)
	fmt.Fprintf(&b, "- **Materials Skipped (no movements)**: %d\n\n", report.SkippedCount)
	fmt.Fprintf(&b, "### Alerts\n")
	fmt.Fprintf(&b, "- **Materials with Shortages**: %d\n", report.ShortageCount)
	fmt.Fprintf(&b, "- **Materials Below Safety Stock**: %d\n", report.BelowSafetyCount)
	fmt.Fprintf(&b, "- **Unknown Keywords**: %d\n\n", report.UnknownCount)

	writeTopTable(&b, "Top Substrate Families by Stock", "Current Stock", report, func(g *entity.FamilyGroup) string {
		return g.CurrentStock.StringFixed(2)
	}, func(x, y *entity.FamilyGroup) bool {
		return x.CurrentStock.GreaterThan(y.CurrentStock)
	})
	writeTopTable(&b, "Top Substrate Families by Reservations", "Total Reservations", report, func(g *entity.FamilyGroup) string {
		return g.Reservations.StringFixed(2)
	}, func(x, y *entity.FamilyGroup) bool {
		return x.Reservations.GreaterThan(y.Reservations)
	})

	fmt.Fprintf(&b, "## Output Files\n\n")
	fmt.Fprintf(&b, "- **Local JSON Backup**: `%s`\n", filepath.Join(w.dir, backupFile))

	return w.flush(b.String())
}

// WriteFailure records a failed run so the last summary never silently shows
// a stale success.
func (w *SummaryWriter) WriteFailure(started time.Time, runErr error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Data Preparation Execution Summary\n\n")
	fmt.Fprintf(&b, "## Run Information\n\n")
	fmt.Fprintf(&b, "- **Execution Time**: %s\n", started.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **Status**: FAILED\n\n")
	fmt.Fprintf(&b, "## Error Details\n\n```\n%v\n```\n", runErr)
	return w.flush(b.String())
}

func writeTopTable(
	b *strings.Builder,
	title, column string,
	report *usecase.RunReport,
	value func(*entity.FamilyGroup) string,
	more func(x, y *entity.FamilyGroup) bool,
) {
	groups := report.Snapshot.Ordered()
	sort.SliceStable(groups, func(i, j int) bool { return more(groups[i], groups[j]) })
	if len(groups) > topFamilies {
		groups = groups[:topFamilies]
	}

	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| Keyword | %s |\n|---------|------|\n", column)
	for _, g := range groups {
		fmt.Fprintf(b, "| %s | %s |\n", g.Keyword, value(g))
	}
	fmt.Fprintf(b, "\n")
}

func (w *SummaryWriter) flush(content string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.dir, summaryFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
