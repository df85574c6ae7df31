package mrp

import (
	"fmt"
	"time"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

// presentationPlaces is the rounding applied to per-material values before
// they are recorded and folded into family totals.
const presentationPlaces = 2

// Aggregator composes the per-material pipeline (partition -> project ->
// classify -> resolve) and accumulates the results into substrate-family
// groups. It is stateless between runs.
type Aggregator struct {
	classifier *Classifier
}

// NewAggregator builds an aggregator with the given correction keyword set.
func NewAggregator(correctionKeywords []string) *Aggregator {
	return &Aggregator{classifier: NewClassifier(correctionKeywords)}
}

// Result of one aggregation pass.
type Result struct {
	// Groups maps substrate-family keyword to its accumulated summary.
	Groups map[string]*entity.FamilyGroup
	// Keywords lists group keys in first-encounter order, for deterministic iteration.
	Keywords []string
	// Skipped lists catalog material ids that had no movement records.
	Skipped []string
	// MaterialCount is the number of materials that produced a projection.
	MaterialCount int
}

// Run projects every distinct material in the movement snapshot (or only
// filterID when non-empty) against the asOf boundary, and groups the results
// by substrate family.
//
// Materials are processed in first-appearance order of the movement data;
// each contributes exactly once to exactly one group. Family totals add the
// already-rounded per-material values, never a rounding of the raw sum.
//
// A filter id absent from the movement data is a distinguishable not-found
// condition, not an empty result.
func (a *Aggregator) Run(
	movements []entity.Movement,
	catalog []entity.MaterialMaster,
	asOf time.Time,
	filterID string,
) (*Result, error) {
	byMaterial, order := indexMovements(movements)

	if filterID != "" {
		// The filter is a pre-filter on the id set, not a separate algorithm.
		if _, ok := byMaterial[filterID]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrMaterialNotFound, filterID)
		}
		order = []string{filterID}
	}

	index := NewMasterIndex(catalog)
	res := &Result{Groups: make(map[string]*entity.FamilyGroup)}

	if filterID == "" {
		res.Skipped = missingFromMovements(catalog, byMaterial)
	}

	for _, id := range order {
		tl := Partition(byMaterial[id], asOf)
		proj := Project(tl)
		meta := index.Resolve(id)

		current := proj.CurrentStock.Round(presentationPlaces)
		delivered := proj.ToBeDelivered.Round(presentationPlaces)
		reserved := proj.Reservations.Round(presentationPlaces)

		mp := entity.MaterialProjection{
			MaterialID:    id,
			Meta:          meta,
			CurrentStock:  current,
			ToBeDelivered: delivered,
			Reservations:  reserved,
			// Recomputed from the rounded components so the recorded values
			// satisfy final = current + delivered - reserved exactly.
			FinalStock:   current.Add(delivered).Sub(reserved),
			ShortageDate: proj.ShortageDate,
			Assessment:   a.classifier.Classify(tl.Historical),
		}

		group, ok := res.Groups[meta.Keyword]
		if !ok {
			group = &entity.FamilyGroup{Keyword: meta.Keyword}
			res.Groups[meta.Keyword] = group
			res.Keywords = append(res.Keywords, meta.Keyword)
		}
		group.Add(mp)
		res.MaterialCount++
	}

	return res, nil
}

// missingFromMovements reports catalog material ids with no movement records,
// in catalog order, each id at most once.
func missingFromMovements(catalog []entity.MaterialMaster, byMaterial map[string][]entity.Movement) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, row := range catalog {
		if seen[row.MaterialID] {
			continue
		}
		seen[row.MaterialID] = true
		if _, ok := byMaterial[row.MaterialID]; !ok {
			missing = append(missing, row.MaterialID)
		}
	}
	return missing
}

// indexMovements groups movements by material id, preserving both the order
// of movements within a material and the first-appearance order of ids.
func indexMovements(movements []entity.Movement) (map[string][]entity.Movement, []string) {
	byMaterial := make(map[string][]entity.Movement)
	var order []string
	for _, m := range movements {
		if _, ok := byMaterial[m.MaterialID]; !ok {
			order = append(order, m.MaterialID)
		}
		byMaterial[m.MaterialID] = append(byMaterial[m.MaterialID], m)
	}
	return byMaterial, order
}
