package mrp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/mrp"
)

func TestParseQuantity_CommaDecimals(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"1,32", "1.32"},
		{"38,68", "38.68"},
		{"1250", "1250"},
		{"0,5", "0.5"},
		{"12.75", "12.75"}, // already dot-separated cells pass through
		{"-3,1", "-3.1"},
	}
	for _, c := range cases {
		got, err := mrp.ParseQuantity(c.raw)
		require.NoError(t, err, "raw %q", c.raw)
		assert.True(t, got.Equal(dec(c.want)), "raw %q: got %s, want %s", c.raw, got, c.want)
	}
}

// Empty quantity cells are a zero-default by policy, not a data-quality
// signal: the movement export leaves In blank on outgoing rows and vice
// versa. Only non-empty unparsable values are errors.
func TestParseQuantity_EmptyIsZeroByPolicy(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t"} {
		got, err := mrp.ParseQuantity(raw)
		require.NoError(t, err, "raw %q", raw)
		assert.True(t, got.IsZero(), "raw %q must default to zero", raw)
	}
}

func TestParseQuantity_MalformedIsFatal(t *testing.T) {
	for _, raw := range []string{"abc", "1,2,3", "12..5", "1.2.3"} {
		_, err := mrp.ParseQuantity(raw)
		require.Error(t, err, "raw %q", raw)
		assert.ErrorIs(t, err, domain.ErrMalformedQuantity)
		assert.Contains(t, err.Error(), raw, "error must carry the offending value")
	}
}
