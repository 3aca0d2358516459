package events

import (
	"strconv"
	"strings"
	"time"
)

// Event is the normalized, client-facing projection of a stored object.
// Distance is only present once a proximity filter has run.
type Event struct {
	Title     string   `json:"title"`
	Endpoint  string   `json:"endpoint"`
	CreatedAt int64    `json:"created_at"`
	UpdatedAt int64    `json:"updated_at"`
	Country   string   `json:"country"`
	Longitude float64  `json:"longitude"`
	Latitude  float64  `json:"latitude"`
	Distance  *float64 `json:"distance,omitempty"`
}

// FromObject projects one raw store object into an Event. Missing or
// unparsable metadata propagates as zero values, never as defaults.
func FromObject(obj Object, publicBaseURL string) Event {
	return Event{
		Title:     obj.Metadata["title"],
		Country:   obj.Metadata["country"],
		Longitude: parseCoordinate(obj.Metadata["longitude"]),
		Latitude:  parseCoordinate(obj.Metadata["latitude"]),
		Endpoint:  strings.TrimSuffix(publicBaseURL, "/") + "/" + obj.Name,
		CreatedAt: parseTimestamp(obj.TimeCreated),
		UpdatedAt: parseTimestamp(obj.Updated),
	}
}

func parseCoordinate(value string) float64 {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

func parseTimestamp(value string) int64 {
	// Store timestamps are RFC3339 with optional fractional seconds.
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return 0
	}
	return parsed.Unix()
}
