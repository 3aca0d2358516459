package events

import (
	"context"
	"fmt"
)

// Service runs the feed pipeline: fetch matching objects from the store,
// project them into events, then filter and rank. It holds no state beyond
// its collaborators and is safe for concurrent use.
type Service struct {
	store         Store
	publicBaseURL string
}

func NewService(store Store, publicBaseURL string) *Service {
	return &Service{store: store, publicBaseURL: publicBaseURL}
}

// List fetches objects restricted by the org prefix, projects them, and
// applies the criteria's filters and ranking. The returned slice is never
// nil on success.
func (s *Service) List(ctx context.Context, criteria Criteria) ([]Event, error) {
	objects, err := s.store.List(ctx, criteria.Org)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}

	projected := make([]Event, 0, len(objects))
	for _, obj := range objects {
		projected = append(projected, FromObject(obj, s.publicBaseURL))
	}

	return criteria.Apply(projected), nil
}

// Get proxies a single-object retrieval by identifier and returns the raw
// JSON body.
func (s *Service) Get(ctx context.Context, id string) ([]byte, error) {
	body, err := s.store.Read(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", id, err)
	}
	return body, nil
}

// Ping probes the store for the health endpoint.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
