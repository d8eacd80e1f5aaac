package geofence

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/ubmlab/kgenrich/internal/model"
)

// Engine evaluates point-in-polygon membership against every dataset in a
// registry. Containment never fails: a dataset with no matching polygon
// simply yields false.
type Engine struct {
	registry *Registry
}

// NewEngine creates an engine over the given registry
func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry}
}

// Evaluate returns one membership flag per dataset, keyed by dataset name.
// A point is within a dataset when any of its polygons contains it; flags
// are computed independently and datasets may overlap, so several epochs can
// be true for the same point.
//
// Containment uses orb's ray-casting test; points exactly on a polygon edge
// are not guaranteed to report as contained.
func (e *Engine) Evaluate(coordinate model.Coordinate) map[string]bool {
	point := orb.Point{coordinate.Longitude, coordinate.Latitude}

	flags := make(map[string]bool, e.registry.Len())
	for _, dataset := range e.registry.Datasets() {
		flags[dataset.Name] = dataset.contains(point)
	}
	return flags
}

// contains reports whether any polygon of the dataset contains the point
func (d Dataset) contains(point orb.Point) bool {
	for _, polygon := range d.polygons {
		if planar.PolygonContains(polygon, point) {
			return true
		}
	}
	return false
}
