package localfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikkovaltonen/mrp-pipeline/internal/application/dto"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
)

const backupFile = "mrp_summary.json"

var _ repository.ProjectionSink = (*JSONBackup)(nil)

// JSONBackup writes the run's family groups to a local JSON file. It is the
// fallback record of every run and the only sink written in filter mode.
type JSONBackup struct {
	dir string
}

// NewJSONBackup stores the backup under dir (created when missing).
func NewJSONBackup(dir string) *JSONBackup {
	return &JSONBackup{dir: dir}
}

func (b *JSONBackup) Name() string { return "local-json" }

// Store writes a keyword -> family document mapping, pretty-printed so the
// file stays diffable between runs.
func (b *JSONBackup) Store(_ context.Context, snap repository.Snapshot) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	out := make(map[string]dto.FamilyGroupDTO, len(snap.Keywords))
	for _, kw := range snap.Keywords {
		out[kw] = dto.FromFamilyGroup(snap.Groups[kw])
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal backup: %w", err)
	}

	path := filepath.Join(b.dir, backupFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
