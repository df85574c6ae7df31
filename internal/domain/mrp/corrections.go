package mrp

import (
	"strings"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

// Classifier assesses a material's historical corrections. Correction events
// are manual stock adjustments; on slitting materials a positive correction
// means slit output was booked back in, a negative one means the material was
// consumed by a slit job.
type Classifier struct {
	keywords []string // matched case-insensitively as substrings of the movement kind
}

// NewClassifier builds a classifier for the given correction keywords.
// An empty set falls back to the default "correction" keyword. The vocabulary
// in the movement export is free text, so the keyword set is configuration;
// the matching semantics (case-insensitive substring) are fixed.
func NewClassifier(keywords []string) *Classifier {
	if len(keywords) == 0 {
		keywords = []string{"correction"}
	}
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &Classifier{keywords: lowered}
}

// Classify labels the historical subsequence of one material.
// The "Slit output" check deliberately takes priority over "Consumed by slit"
// when a correction carries both quantities; normal data never does, but the
// order keeps the label deterministic.
func (c *Classifier) Classify(historical []entity.Movement) string {
	if len(historical) == 0 {
		return entity.AssessmentNoData
	}

	var corrections []entity.Movement
	for _, m := range historical {
		if c.isCorrection(m.Kind) {
			corrections = append(corrections, m)
		}
	}
	if len(corrections) == 0 {
		return entity.AssessmentNoCorrections
	}

	for _, m := range corrections {
		if m.In.IsPositive() {
			return entity.AssessmentSlitOutput
		}
	}
	for _, m := range corrections {
		if m.Out.IsPositive() {
			return entity.AssessmentConsumedBySlit
		}
	}
	return entity.AssessmentNoMovement
}

func (c *Classifier) isCorrection(kind string) bool {
	k := strings.ToLower(kind)
	for _, kw := range c.keywords {
		if strings.Contains(k, kw) {
			return true
		}
	}
	return false
}
