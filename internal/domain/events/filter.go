package events

import (
	"math"
	"slices"
	"sort"
)

const earthRadiusKm = 6371.0

// Apply runs the filter pipeline over projected events and returns the
// filtered, ranked result. Filters run in fixed order: country, recency,
// proximity. The org criterion is not applied here; it restricts the store
// listing upstream.
func (c Criteria) Apply(list []Event) []Event {
	filtered := make([]Event, 0, len(list))
	for _, event := range list {
		if len(c.Countries) > 0 && !slices.Contains(c.Countries, event.Country) {
			continue
		}
		if c.UpdatedAfter != nil && event.UpdatedAt <= *c.UpdatedAfter {
			continue
		}
		if c.Around != nil {
			distance := haversineKm(
				c.Around.Latitude, c.Around.Longitude,
				event.Latitude, event.Longitude,
			)
			if distance >= c.Around.RadiusKm {
				continue
			}
			event.Distance = &distance
		}
		filtered = append(filtered, event)
	}

	rank(filtered)
	return filtered
}

// rank orders events ascending by distance. The sort is stable so that when
// no proximity filter ran (no event carries a distance) the store listing
// order is preserved.
func rank(list []Event) {
	sort.SliceStable(list, func(i, j int) bool {
		return distanceKey(list[i]) < distanceKey(list[j])
	})
}

func distanceKey(e Event) float64 {
	if e.Distance == nil {
		return 0
	}
	return *e.Distance
}

// haversineKm computes the great-circle distance in kilometers between two
// points on a spherical earth.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := degToRad(lat2 - lat1)
	dLon := degToRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degToRad(lat1))*math.Cos(degToRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
