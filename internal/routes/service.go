package routes

import (
	"context"
	"errors"
)

// ErrShapeNotFound means no GTFS geometry exists for the route.
var ErrShapeNotFound = errors.New("route shape not found")

// Provider is the port to the external bus-tracking API.
type Provider interface {
	// Search resolves routes matching a free-text query (line number or
	// destination name).
	Search(ctx context.Context, query string) ([]Route, error)
	// Positions returns the current vehicle positions on the given routes.
	Positions(ctx context.Context, routes []Route) ([]Position, error)
}

// ShapeStore is the port to GTFS route geometry.
type ShapeStore interface {
	// Shape returns the geometry for a route, or ErrShapeNotFound.
	Shape(ctx context.Context, id RouteID) (*Shape, error)
}

// Service contains route and bus-position business logic.
type Service struct {
	provider Provider
	shapes   ShapeStore
}

// NewService creates a route service.
func NewService(provider Provider, shapes ShapeStore) *Service {
	return &Service{provider: provider, shapes: shapes}
}

// Search finds routes matching a query string.
func (s *Service) Search(ctx context.Context, query string) ([]Route, error) {
	return s.provider.Search(ctx, query)
}

// Positions returns current bus positions for the given routes.
func (s *Service) Positions(ctx context.Context, rts []Route) ([]Position, error) {
	return s.provider.Positions(ctx, rts)
}

// Shapes returns the GTFS geometry for each requested route. Routes with no
// known shape are skipped.
func (s *Service) Shapes(ctx context.Context, ids []RouteID) ([]Shape, error) {
	shapes := make([]Shape, 0, len(ids))
	for _, id := range ids {
		sh, err := s.shapes.Shape(ctx, id)
		if errors.Is(err, ErrShapeNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, *sh)
	}
	return shapes, nil
}
