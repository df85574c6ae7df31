package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain"
)

// sheet gives header-name access to the first worksheet of a workbook.
// The exports carry a single sheet with a header row.
type sheet struct {
	rows    [][]string
	columns map[string]int
}

func openSheet(path string) (*sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q of %s: %w", name, path, err)
	}
	if len(rows) == 0 {
		return &sheet{columns: map[string]int{}}, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		columns[strings.TrimSpace(h)] = i
	}
	return &sheet{rows: rows[1:], columns: columns}, nil
}

// require returns the index of a column that must exist; its absence is a
// fatal configuration problem with the source file, not a defaultable value.
func (s *sheet) require(name string) (int, error) {
	idx, ok := s.columns[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrMissingColumn, name)
	}
	return idx, nil
}

// optional returns -1 when the column is absent.
func (s *sheet) optional(name string) int {
	idx, ok := s.columns[name]
	if !ok {
		return -1
	}
	return idx
}

// cell reads a cell by column index, tolerating the short rows excelize
// returns when trailing cells are empty.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// dateLayouts covers the formats seen in the exports; excelize renders date
// cells through the workbook's number format.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/06 15:04",
	"02.01.2006",
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable date %q", raw)
}
