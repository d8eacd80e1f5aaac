package enrich

import (
	"reflect"
	"testing"

	"github.com/paulmach/orb"

	"github.com/ubmlab/kgenrich/internal/geofence"
	"github.com/ubmlab/kgenrich/internal/model"
	"github.com/ubmlab/kgenrich/internal/schema"
)

const testEntityBase = "https://www.wikidata.org/wiki/Special:EntityData/"

func einsteinRecord() *model.EntityRecord {
	return &model.EntityRecord{
		ID: "Q937",
		Claims: map[string][]model.ClaimValue{
			schema.PropertyInstanceOf: {
				{Kind: model.ValueEntityRef, EntityID: schema.ItemHuman},
			},
			"P569": {
				{Kind: model.ValueScalar, Text: "1879-03-14"},
			},
			"P227": {
				{Kind: model.ValueScalar, Text: "118529579"},
				{Kind: model.ValueScalar, Text: "second-value-ignored"},
			},
		},
		Labels: map[string]model.Term{
			"en": {Language: "en", Value: "Albert Einstein"},
		},
		Descriptions: map[string]model.Term{
			"en": {Language: "en", Value: "theoretical physicist"},
		},
		Aliases: map[string][]model.Term{
			"en": {{Language: "en", Value: "Einstein"}},
		},
	}
}

func mannheimRecord() *model.EntityRecord {
	return &model.EntityRecord{
		ID: "Q2119",
		Claims: map[string][]model.ClaimValue{
			schema.PropertyCoordinates: {
				{Kind: model.ValueCoordinate, Coordinate: &model.Coordinate{Latitude: 49.4883, Longitude: 8.4647}},
			},
			"P439": {
				{Kind: model.ValueScalar, Text: "08222000"},
			},
		},
		Labels: map[string]model.Term{
			"en": {Language: "en", Value: "Mannheim"},
		},
	}
}

func testGeoEngine() *geofence.Engine {
	germany := orb.Polygon{orb.Ring{{5, 47}, {15, 47}, {15, 55}, {5, 55}, {5, 47}}}
	empire := orb.Polygon{orb.Ring{{5, 47}, {23, 47}, {23, 56}, {5, 56}, {5, 47}}}
	gdr := orb.Polygon{orb.Ring{{10, 50}, {15, 50}, {15, 54.5}, {10, 54.5}, {10, 50}}}
	return geofence.NewEngine(geofence.NewRegistry([]geofence.Dataset{
		geofence.NewDataset(geofence.DatasetCurrentGermany, []orb.Polygon{germany}),
		geofence.NewDataset(geofence.DatasetGermany1886To1919, []orb.Polygon{empire}),
		geofence.NewDataset(geofence.DatasetGermany1919To1920, []orb.Polygon{empire}),
		geofence.NewDataset(geofence.DatasetGermany1920To1938, []orb.Polygon{empire}),
		geofence.NewDataset(geofence.DatasetGermany1938To1945, []orb.Polygon{empire}),
		geofence.NewDataset(geofence.DatasetGFR1945To1949, []orb.Polygon{germany}),
		geofence.NewDataset(geofence.DatasetGFR1949To1990, []orb.Polygon{germany}),
		geofence.NewDataset(geofence.DatasetGFR1990To2019, []orb.Polygon{germany}),
		geofence.NewDataset(geofence.DatasetGDR1945To1949, []orb.Polygon{gdr}),
		geofence.NewDataset(geofence.DatasetGDR1949To1990, []orb.Polygon{gdr}),
	}))
}

func TestExtract_Person(t *testing.T) {
	extractor := NewExtractor(testEntityBase, nil)

	result := extractor.Extract(einsteinRecord(), schema.Person, "en")

	if result.ID != "Q937" {
		t.Errorf("Expected id Q937, got %s", result.ID)
	}
	if result.URL != testEntityBase+"Q937" {
		t.Errorf("Unexpected URL: %s", result.URL)
	}
	if result.Label == nil || *result.Label != "Albert Einstein" {
		t.Errorf("Unexpected label: %v", result.Label)
	}
	if result.Description == nil || *result.Description != "theoretical physicist" {
		t.Errorf("Unexpected description: %v", result.Description)
	}
	if len(result.Aliases) != 1 || result.Aliases[0] != "Einstein" {
		t.Errorf("Unexpected aliases: %v", result.Aliases)
	}
	if result.Fields["date_of_birth"] != "1879-03-14" {
		t.Errorf("Expected date_of_birth 1879-03-14, got %q", result.Fields["date_of_birth"])
	}
}

func TestExtract_FirstClaimOnly(t *testing.T) {
	extractor := NewExtractor(testEntityBase, nil)

	result := extractor.Extract(einsteinRecord(), schema.Person, "en")
	if result.Fields["GND ID"] != "118529579" {
		t.Errorf("Expected the first claim value only, got %q", result.Fields["GND ID"])
	}
}

func TestExtract_MissingPropertiesOmitted(t *testing.T) {
	extractor := NewExtractor(testEntityBase, nil)

	result := extractor.Extract(einsteinRecord(), schema.Person, "en")
	if _, present := result.Fields["VIAF ID"]; present {
		t.Error("Expected missing property to be omitted, not set")
	}
}

func TestExtract_SchemaIsolation(t *testing.T) {
	extractor := NewExtractor(testEntityBase, nil)

	// Extracting a person record under the organization schema must not
	// leak person fields.
	result := extractor.Extract(einsteinRecord(), schema.Organization, "en")
	if _, present := result.Fields["date_of_birth"]; present {
		t.Error("Expected no person fields under the organization schema")
	}
	for name := range result.Fields {
		found := false
		for _, fieldName := range schema.Organization.Properties {
			if name == fieldName {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Field %q is not part of the organization schema", name)
		}
	}
}

func TestExtract_MissingLanguageTerms(t *testing.T) {
	extractor := NewExtractor(testEntityBase, nil)

	result := extractor.Extract(einsteinRecord(), schema.Person, "de")
	if result.Label != nil {
		t.Errorf("Expected nil label for missing language, got %v", *result.Label)
	}
	if result.Description != nil {
		t.Errorf("Expected nil description for missing language, got %v", *result.Description)
	}
	if result.Aliases == nil || len(result.Aliases) != 0 {
		t.Errorf("Expected empty alias list, got %v", result.Aliases)
	}
}

func TestExtract_GeographicFlags(t *testing.T) {
	extractor := NewExtractor(testEntityBase, testGeoEngine())

	result := extractor.Extract(mannheimRecord(), schema.Geographic, "en")

	if len(result.Boundaries) != 10 {
		t.Fatalf("Expected 10 boundary flags, got %d", len(result.Boundaries))
	}
	if !result.Boundaries[geofence.DatasetCurrentGermany] {
		t.Error("Expected Mannheim within the current boundary")
	}
	if !result.Boundaries[geofence.DatasetGermany1886To1919] {
		t.Error("Expected Mannheim within the 1886-1919 boundary")
	}
	if result.Boundaries[geofence.DatasetGDR1949To1990] {
		t.Error("Expected Mannheim outside the GDR boundary")
	}
	if result.Fields["geographic coordinates"] != "49.4883,8.4647" {
		t.Errorf("Unexpected coordinate field: %q", result.Fields["geographic coordinates"])
	}
}

func TestExtract_NoFlagsWithoutCoordinates(t *testing.T) {
	extractor := NewExtractor(testEntityBase, testGeoEngine())

	record := mannheimRecord()
	delete(record.Claims, schema.PropertyCoordinates)

	result := extractor.Extract(record, schema.Geographic, "en")
	if result.Boundaries != nil {
		t.Errorf("Expected no boundary flags without coordinates, got %v", result.Boundaries)
	}
}

func TestExtract_NoFlagsForNonGeographicSchema(t *testing.T) {
	extractor := NewExtractor(testEntityBase, testGeoEngine())

	result := extractor.Extract(einsteinRecord(), schema.Person, "en")
	if result.Boundaries != nil {
		t.Errorf("Expected no boundary flags for a person, got %v", result.Boundaries)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	extractor := NewExtractor(testEntityBase, testGeoEngine())

	record := mannheimRecord()
	first := extractor.Extract(record, schema.Geographic, "en")
	second := extractor.Extract(record, schema.Geographic, "en")

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output for repeated extraction of the same record")
	}
}
