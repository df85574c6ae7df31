package mrp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/mrp"
)

func TestPartition_SplitsAtBoundary(t *testing.T) {
	movements := []entity.Movement{
		mov("M1", day(-5), "Purchase order", "10", "0"),
		mov("M1", day(0), "Consumption", "0", "2"), // same day as as-of: historical
		mov("M1", day(1), "Reservation", "0", "3"),
		mov("M1", day(30), "Purchase order", "20", "0"),
	}

	tl := mrp.Partition(movements, asOf)

	require.Len(t, tl.Historical, 2)
	require.Len(t, tl.Future, 2)
	assert.Equal(t, day(-5), tl.Historical[0].Date)
	assert.Equal(t, day(0), tl.Historical[1].Date, "as-of day itself is historical")
	assert.Equal(t, day(1), tl.Future[0].Date)
	assert.Equal(t, day(30), tl.Future[1].Date)
}

func TestPartition_SortsByDateThenHour(t *testing.T) {
	late := entity.Movement{MaterialID: "M1", Date: day(-1), Hour: "16:00:00", Kind: "b"}
	early := entity.Movement{MaterialID: "M1", Date: day(-1), Hour: "08:30:00", Kind: "a"}
	older := entity.Movement{MaterialID: "M1", Date: day(-3), Hour: "23:59:59", Kind: "c"}

	tl := mrp.Partition([]entity.Movement{late, early, older}, asOf)

	require.Len(t, tl.Historical, 3)
	assert.Equal(t, "c", tl.Historical[0].Kind)
	assert.Equal(t, "a", tl.Historical[1].Kind)
	assert.Equal(t, "b", tl.Historical[2].Kind)
}

// Movements with an identical (date, hour) key must keep input order: the
// export defines no secondary sort key, so the split has to be stable.
func TestPartition_StableOnTies(t *testing.T) {
	first := entity.Movement{MaterialID: "M1", Date: day(2), Hour: "10:00:00", Kind: "first"}
	second := entity.Movement{MaterialID: "M1", Date: day(2), Hour: "10:00:00", Kind: "second"}

	tl := mrp.Partition([]entity.Movement{first, second}, asOf)

	require.Len(t, tl.Future, 2)
	assert.Equal(t, "first", tl.Future[0].Kind)
	assert.Equal(t, "second", tl.Future[1].Kind)
}

func TestPartition_Empty(t *testing.T) {
	tl := mrp.Partition(nil, asOf)
	assert.Empty(t, tl.Historical)
	assert.Empty(t, tl.Future)
}

func TestPartition_DoesNotMutateInput(t *testing.T) {
	movements := []entity.Movement{
		mov("M1", day(3), "b", "0", "0"),
		mov("M1", day(-3), "a", "0", "0"),
	}

	mrp.Partition(movements, asOf)

	assert.Equal(t, day(3), movements[0].Date, "input order must survive the partition")
}

func TestNormalize_DayGranularity(t *testing.T) {
	instant := time.Date(2025, time.March, 10, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, asOf, mrp.Normalize(instant))
}
