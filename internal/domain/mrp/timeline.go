package mrp

import (
	"sort"
	"time"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

// Timeline is one material's movement history split at the as-of boundary.
// Both sides are in chronological (date, hour) order.
type Timeline struct {
	Historical []entity.Movement // date <= as-of
	Future     []entity.Movement // date > as-of
}

// Normalize truncates t to calendar-day granularity in its location.
// The partition boundary compares whole days, as the movement export does.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Partition sorts one material's movements chronologically and splits them
// into historical (date <= asOf) and future (date > asOf) subsequences.
// The sort is stable: movements sharing (date, hour) keep input order, since
// the export defines no secondary key. The input slice is not modified.
func Partition(movements []entity.Movement, asOf time.Time) Timeline {
	sorted := make([]entity.Movement, len(movements))
	copy(sorted, movements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Before(sorted[j])
	})

	boundary := Normalize(asOf)
	var tl Timeline
	for _, m := range sorted {
		if Normalize(m.Date).After(boundary) {
			tl.Future = append(tl.Future, m)
		} else {
			tl.Historical = append(tl.Historical, m)
		}
	}
	return tl
}
