package feature

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVectorWithDoesNotMutateOriginal(t *testing.T) {
	orig := New([]string{"a", "b"}, map[string]float64{"a": 1, "b": 2})

	extended := orig.With("c", 3)

	require.Equal(t, 2, orig.Len())
	require.False(t, orig.Has("c"))
	require.Equal(t, []string{"a", "b"}, orig.Names())

	require.Equal(t, 3, extended.Len())
	require.Equal(t, []string{"a", "b", "c"}, extended.Names())
	val, ok := extended.Get("c")
	require.True(t, ok)
	require.Equal(t, 3.0, val)
}

func TestVectorWithOverwritesExistingValue(t *testing.T) {
	orig := New([]string{"a"}, map[string]float64{"a": 1})

	updated := orig.With("a", 9)

	require.Equal(t, 1, updated.Len())
	val, _ := updated.Get("a")
	require.Equal(t, 9.0, val)

	origVal, _ := orig.Get("a")
	require.Equal(t, 1.0, origVal)
}

func TestVectorMissing(t *testing.T) {
	v := New([]string{"a", "b"}, map[string]float64{"a": 1, "b": 2})

	require.Nil(t, v.Missing([]string{"a", "b"}))
	require.Equal(t, []string{"c", "d"}, v.Missing([]string{"a", "c", "d"}))
}

func TestVectorNamesReturnsCopy(t *testing.T) {
	v := New([]string{"a", "b"}, map[string]float64{"a": 1, "b": 2})

	names := v.Names()
	names[0] = "mutated"

	require.Equal(t, []string{"a", "b"}, v.Names())
}

func TestSchemaOrderStable(t *testing.T) {
	require.Equal(t, Schema(), Schema())
	require.Equal(t, []string{
		FeatDistanceKM,
		FeatRouteRisk,
		FeatVehicleSuitability,
		FeatVehicleSuitable,
		FeatPriorityLevel,
		FeatOrderValue,
		FeatCustomerPastDelays,
		FeatCustomerAvgRating,
	}, Schema())
}
