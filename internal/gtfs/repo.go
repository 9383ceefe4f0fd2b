// Package gtfs reads route geometry from GTFS reference tables.
package gtfs

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bussp-service/internal/routes"
)

// ShapeRepository implements routes.ShapeStore over the gtfs_trips and
// gtfs_shapes tables.
type ShapeRepository struct {
	db *pgxpool.Pool
}

// NewShapeRepository creates a GTFS shape repository backed by the given pool.
func NewShapeRepository(db *pgxpool.Pool) *ShapeRepository {
	return &ShapeRepository{db: db}
}

// Shape returns the ordered geometry for a route.
// GTFS encodes direction as 0/1 while route identifiers use 1/2.
func (r *ShapeRepository) Shape(ctx context.Context, id routes.RouteID) (*routes.Shape, error) {
	directionID := id.Direction - 1

	var shapeID string
	err := r.db.QueryRow(ctx,
		`SELECT shape_id FROM gtfs_trips
		 WHERE route_id=$1 AND direction_id=$2 LIMIT 1`,
		id.BusLine, directionID).Scan(&shapeID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, routes.ErrShapeNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT shape_pt_lat, shape_pt_lon, shape_pt_sequence, shape_dist_traveled
		 FROM gtfs_shapes WHERE shape_id=$1
		 ORDER BY shape_pt_sequence ASC`, shapeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []routes.ShapePoint
	for rows.Next() {
		var p routes.ShapePoint
		if err := rows.Scan(&p.Coord.Lat, &p.Coord.Lng, &p.Sequence, &p.DistanceTraveled); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, routes.ErrShapeNotFound
	}

	return &routes.Shape{ID: id, ShapeID: shapeID, Points: points}, nil
}
