package mrp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/mrp"
)

func TestClassify_Labels(t *testing.T) {
	c := mrp.NewClassifier(nil) // default "correction" keyword

	cases := []struct {
		name       string
		historical []entity.Movement
		want       string
	}{
		{
			name:       "empty history",
			historical: nil,
			want:       entity.AssessmentNoData,
		},
		{
			name: "no correction kinds",
			historical: []entity.Movement{
				mov("M1", day(-3), "Goods receipt", "10", "0"),
				mov("M1", day(-1), "Consumption", "0", "4"),
			},
			want: entity.AssessmentNoCorrections,
		},
		{
			name: "positive correction means slit output",
			historical: []entity.Movement{
				mov("M1", day(-2), "Stock Correction", "5", "0"),
			},
			want: entity.AssessmentSlitOutput,
		},
		{
			name: "negative correction means consumed by slit",
			historical: []entity.Movement{
				mov("M1", day(-2), "Stock Correction", "0", "3"),
			},
			want: entity.AssessmentConsumedBySlit,
		},
		{
			name: "corrections with no quantities",
			historical: []entity.Movement{
				mov("M1", day(-2), "Correction", "0", "0"),
			},
			want: entity.AssessmentNoMovement,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, c.Classify(tc.historical))
		})
	}
}

// Matching is a case-insensitive substring check on the free-text kind.
func TestClassify_KeywordMatchingIsSubstringCaseInsensitive(t *testing.T) {
	c := mrp.NewClassifier(nil)

	historical := []entity.Movement{
		mov("M1", day(-4), "manual CORRECTION after count", "2", "0"),
	}
	assert.Equal(t, entity.AssessmentSlitOutput, c.Classify(historical))
}

// A correction row carrying both quantities is impossible in normal data,
// but the In check must win so the label stays deterministic.
func TestClassify_SlitOutputTakesPriority(t *testing.T) {
	c := mrp.NewClassifier(nil)

	historical := []entity.Movement{
		mov("M1", day(-5), "Correction", "0", "3"),
		mov("M1", day(-1), "Correction", "5", "4"),
	}
	assert.Equal(t, entity.AssessmentSlitOutput, c.Classify(historical))
}

// Only the matched correction rows are inspected; quantities on ordinary
// movements must not leak into the assessment.
func TestClassify_IgnoresNonCorrectionQuantities(t *testing.T) {
	c := mrp.NewClassifier(nil)

	historical := []entity.Movement{
		mov("M1", day(-6), "Goods receipt", "100", "0"),
		mov("M1", day(-2), "Correction", "0", "0"),
	}
	assert.Equal(t, entity.AssessmentNoMovement, c.Classify(historical))
}

func TestClassify_ConfigurableKeywords(t *testing.T) {
	c := mrp.NewClassifier([]string{"adjustment", "inventur"})

	historical := []entity.Movement{
		mov("M1", day(-3), "Inventur difference", "0", "2"),
	}
	assert.Equal(t, entity.AssessmentConsumedBySlit, c.Classify(historical))

	// The default keyword is replaced, not extended.
	historical = []entity.Movement{
		mov("M1", day(-3), "Stock Correction", "1", "0"),
	}
	assert.Equal(t, entity.AssessmentNoCorrections, c.Classify(historical))
}
