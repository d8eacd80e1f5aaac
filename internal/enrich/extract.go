// Package enrich implements the enrichment pipeline: resolve a free-text
// name to knowledge-base entities, classify each one, extract its schema
// properties and, for geographic entities, its boundary membership flags.
package enrich

import (
	"strconv"

	"github.com/ubmlab/kgenrich/internal/geofence"
	"github.com/ubmlab/kgenrich/internal/model"
	"github.com/ubmlab/kgenrich/internal/schema"
)

// Extractor turns an entity record and a selected schema into a flat
// enriched result
type Extractor struct {
	entityBaseURL string
	geo           *geofence.Engine // nil disables boundary flags
}

// NewExtractor creates an extractor. The canonical URL of an entity is
// entityBaseURL + identifier.
func NewExtractor(entityBaseURL string, geo *geofence.Engine) *Extractor {
	return &Extractor{
		entityBaseURL: entityBaseURL,
		geo:           geo,
	}
}

// Extract builds the enriched result for a record under the given schema.
//
// Label and description stay nil when the requested language has none;
// aliases default to an empty list. For every schema property present on the
// record only the first claim value is consulted: entity references extract
// to their identifier, scalars pass through unchanged, and properties absent
// from the record are omitted from Fields entirely. For the geographic
// schema the record's coordinates, when resolvable, are evaluated against
// every boundary dataset and the flags merged into the result.
//
// Extraction never mutates the record; repeated calls yield identical output.
func (x *Extractor) Extract(record *model.EntityRecord, sch *schema.Schema, language string) *model.EnrichedResult {
	result := &model.EnrichedResult{
		ID:      record.ID,
		URL:     x.entityBaseURL + record.ID,
		Aliases: record.AliasValues(language),
		Fields:  make(map[string]string),
	}

	if label, ok := record.Label(language); ok {
		result.Label = &label
	}
	if description, ok := record.Description(language); ok {
		result.Description = &description
	}

	for propertyID, fieldName := range sch.Properties {
		value, ok := record.FirstClaim(propertyID)
		if !ok {
			continue
		}
		if text, ok := extractValue(value); ok {
			result.Fields[fieldName] = text
		}
	}

	if sch.Kind == schema.KindGeographic && x.geo != nil {
		if coordinate, ok := coordinates(record); ok {
			result.Boundaries = x.geo.Evaluate(coordinate)
		}
	}

	return result
}

// extractValue applies the reference/scalar rule to one claim value.
// Unexpected shapes drop the field rather than failing the record.
func extractValue(value model.ClaimValue) (string, bool) {
	switch value.Kind {
	case model.ValueEntityRef:
		return value.EntityID, true
	case model.ValueScalar:
		return value.Text, true
	case model.ValueCoordinate:
		if value.Coordinate == nil {
			return "", false
		}
		return formatCoordinate(*value.Coordinate), true
	}
	return "", false
}

// coordinates resolves the record's primary coordinate claim
func coordinates(record *model.EntityRecord) (model.Coordinate, bool) {
	value, ok := record.FirstClaim(schema.PropertyCoordinates)
	if !ok || value.Kind != model.ValueCoordinate || value.Coordinate == nil {
		return model.Coordinate{}, false
	}
	return *value.Coordinate, true
}

// formatCoordinate renders a coordinate as "lat,lon" decimal degrees
func formatCoordinate(c model.Coordinate) string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}
