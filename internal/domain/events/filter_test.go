package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testEvent(title, country string, lon, lat float64, updatedAt int64) Event {
	return Event{
		Title:     title,
		Country:   country,
		Longitude: lon,
		Latitude:  lat,
		UpdatedAt: updatedAt,
	}
}

func TestApplyNoCriteriaPreservesOrder(t *testing.T) {
	list := []Event{
		testEvent("c", "FR", 0, 0, 3),
		testEvent("a", "DE", 0, 0, 1),
		testEvent("b", "FR", 0, 0, 2),
	}

	result := Criteria{}.Apply(list)

	require.Len(t, result, 3)
	require.Equal(t, "c", result[0].Title)
	require.Equal(t, "a", result[1].Title)
	require.Equal(t, "b", result[2].Title)
	for _, ev := range result {
		require.Nil(t, ev.Distance)
	}
}

func TestApplyCountryFilter(t *testing.T) {
	list := []Event{
		testEvent("paris", "FR", 0, 0, 0),
		testEvent("berlin", "DE", 0, 0, 0),
		testEvent("lyon", "FR", 0, 0, 0),
	}

	result := Criteria{Countries: []string{"FR"}}.Apply(list)

	require.Len(t, result, 2)
	require.Equal(t, "paris", result[0].Title)
	require.Equal(t, "lyon", result[1].Title)
}

func TestApplyRecencyFilterStrictlyGreater(t *testing.T) {
	threshold := int64(1000)
	list := []Event{
		testEvent("old", "FR", 0, 0, 999),
		testEvent("boundary", "FR", 0, 0, 1000),
		testEvent("fresh", "FR", 0, 0, 1001),
	}

	result := Criteria{UpdatedAfter: &threshold}.Apply(list)

	require.Len(t, result, 1)
	require.Equal(t, "fresh", result[0].Title)
}

func TestApplyProximityIncludesOrigin(t *testing.T) {
	list := []Event{testEvent("paris", "FR", 2.3522, 48.8566, 0)}
	criteria := Criteria{Around: &AroundSpec{Longitude: 2.3522, Latitude: 48.8566, RadiusKm: 5}}

	result := criteria.Apply(list)

	require.Len(t, result, 1)
	require.NotNil(t, result[0].Distance)
	require.InDelta(t, 0, *result[0].Distance, 1e-6)
}

func TestApplyProximityExcludesFarEvent(t *testing.T) {
	list := []Event{testEvent("far", "FR", 10, 10, 0)}
	criteria := Criteria{Around: &AroundSpec{Longitude: 0, Latitude: 0, RadiusKm: 1}}

	result := criteria.Apply(list)

	require.Empty(t, result)
}

// Radius is an exclusive boundary: distance must be strictly less.
func TestApplyProximityBoundaryExcluded(t *testing.T) {
	// Roughly 111 km per degree of latitude at the equator.
	list := []Event{testEvent("north", "FR", 0, 1, 0)}
	distance := haversineKm(0, 0, 1, 0)

	included := Criteria{Around: &AroundSpec{RadiusKm: distance + 1}}.Apply(list)
	require.Len(t, included, 1)

	excluded := Criteria{Around: &AroundSpec{RadiusKm: distance}}.Apply(list)
	require.Empty(t, excluded)
}

func TestApplyRanksByDistanceAscending(t *testing.T) {
	list := []Event{
		testEvent("far", "FR", 0, 1.0, 0),
		testEvent("near", "FR", 0, 0.1, 0),
		testEvent("mid", "FR", 0, 0.5, 0),
	}
	criteria := Criteria{Around: &AroundSpec{Longitude: 0, Latitude: 0, RadiusKm: 500}}

	result := criteria.Apply(list)

	require.Len(t, result, 3)
	require.Equal(t, "near", result[0].Title)
	require.Equal(t, "mid", result[1].Title)
	require.Equal(t, "far", result[2].Title)
	require.Less(t, *result[0].Distance, *result[1].Distance)
	require.Less(t, *result[1].Distance, *result[2].Distance)
}

func TestApplyFilterComposition(t *testing.T) {
	threshold := int64(100)
	list := []Event{
		testEvent("wrong country", "DE", 0, 0.1, 500),
		testEvent("too old", "FR", 0, 0.1, 50),
		testEvent("too far", "FR", 0, 80, 500),
		testEvent("match", "FR", 0, 0.2, 500),
	}
	criteria := Criteria{
		Countries:    []string{"FR"},
		UpdatedAfter: &threshold,
		Around:       &AroundSpec{Longitude: 0, Latitude: 0, RadiusKm: 100},
	}

	result := criteria.Apply(list)

	require.Len(t, result, 1)
	require.Equal(t, "match", result[0].Title)
	require.NotNil(t, result[0].Distance)
}

func TestApplyEmptyInputYieldsEmptyNonNilSlice(t *testing.T) {
	result := Criteria{Countries: []string{"FR"}}.Apply(nil)

	require.NotNil(t, result)
	require.Empty(t, result)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Paris to London is roughly 344 km.
	distance := haversineKm(48.8566, 2.3522, 51.5074, -0.1278)

	require.InDelta(t, 344, distance, 5)
}
