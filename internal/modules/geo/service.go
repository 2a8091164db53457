package geo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// Client is the subset of the Maps SDK the service needs, extracted so
// tests can stub it.
type Client interface {
	PlaceAutocomplete(ctx context.Context, r *maps.PlaceAutocompleteRequest) (maps.AutocompleteResponse, error)
	Directions(ctx context.Context, r *maps.DirectionsRequest) ([]maps.Route, []maps.GeocodedWaypoint, error)
}

type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

func NewMapsClient(apiKey string) (*maps.Client, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("init maps client: %w", err)
	}
	return c, nil
}

type Suggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}

func (s *Service) Autocomplete(ctx context.Context, input string) ([]Suggestion, error) {
	resp, err := s.client.PlaceAutocomplete(ctx, &maps.PlaceAutocompleteRequest{
		Input: input,
	})
	if err != nil {
		return nil, fmt.Errorf("place autocomplete: %w", err)
	}

	out := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, Suggestion{PlaceID: p.PlaceID, Description: p.Description})
	}
	return out, nil
}

type RouteSummary struct {
	Summary  string `json:"summary"`
	Distance string `json:"distance"`
	Duration string `json:"duration"`
}

func (s *Service) Directions(ctx context.Context, origin, destination string) ([]RouteSummary, error) {
	routes, _, err := s.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
	})
	if err != nil {
		return nil, fmt.Errorf("directions: %w", err)
	}

	out := make([]RouteSummary, 0, len(routes))
	for _, r := range routes {
		rs := RouteSummary{Summary: r.Summary}
		if len(r.Legs) > 0 {
			rs.Distance = r.Legs[0].Distance.HumanReadable
			rs.Duration = r.Legs[0].Duration.String()
		}
		out = append(out, rs)
	}
	return out, nil
}
