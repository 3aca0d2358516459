package events

import "context"

// Object is a raw entry from the remote object-listing store. All fields
// arrive as source-provided strings; projection into an Event happens in
// FromObject.
type Object struct {
	Name        string            `json:"name"`
	TimeCreated string            `json:"timeCreated"`
	Updated     string            `json:"updated"`
	Metadata    map[string]string `json:"metadata"`
}

// Store is the remote object-listing store the feed is built from.
// Implementations live in internal/storage.
type Store interface {
	// List returns every object whose name starts with prefix. An empty
	// prefix lists the whole bucket.
	List(ctx context.Context, prefix string) ([]Object, error)

	// Read returns the raw JSON body of a single object by name.
	Read(ctx context.Context, name string) ([]byte, error)

	// Ping performs a lightweight probe against the store.
	Ping(ctx context.Context) error
}
