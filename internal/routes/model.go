package routes

import "time"

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteID identifies a bus line and travel direction (1 or 2).
type RouteID struct {
	BusLine   string `json:"bus_line"`
	Direction int    `json:"direction"`
}

// Route is a provider-resolved route: the agency's numeric code plus the
// human-facing line identifier.
type Route struct {
	Code int64   `json:"code"`
	ID   RouteID `json:"route"`
}

// Position is the real-time location of one vehicle on a route.
// Transient provider state, never persisted.
type Position struct {
	ID        RouteID    `json:"route"`
	Coord     Coordinate `json:"position"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ShapePoint is one vertex of a route's geometry.
type ShapePoint struct {
	Coord            Coordinate `json:"coordinate"`
	Sequence         int        `json:"sequence"`
	DistanceTraveled *float64   `json:"distance_traveled,omitempty"`
}

// Shape is the ordered geometry of a route, from GTFS reference data.
type Shape struct {
	ID      RouteID      `json:"route"`
	ShapeID string       `json:"shape_id"`
	Points  []ShapePoint `json:"points"`
}
