// Package schema holds the fixed property schemas for the three entity
// categories and the decision table that picks one for a record.
package schema

import "github.com/ubmlab/kgenrich/internal/model"

// Well-known Wikibase property and item identifiers
const (
	PropertyInstanceOf  = "P31"
	PropertyCoordinates = "P625"
	ItemHuman           = "Q5"
)

// Kind tags a schema with its entity category
type Kind string

const (
	KindPerson       Kind = "person"
	KindOrganization Kind = "organization"
	KindGeographic   Kind = "geographic"
)

// TypeHint is the caller-supplied category constraint for classification.
// HintNone requests auto-detection.
type TypeHint string

const (
	HintNone         TypeHint = ""
	HintPerson       TypeHint = "person"
	HintOrganization TypeHint = "organization"
	HintGeographic   TypeHint = "geographic"
)

// ParseHint maps a user-facing type string to a TypeHint.
// Returns false for anything outside the known set.
func ParseHint(s string) (TypeHint, bool) {
	switch s {
	case "", "none":
		return HintNone, true
	case "person", "per":
		return HintPerson, true
	case "organization", "org":
		return HintOrganization, true
	case "geographic", "geo":
		return HintGeographic, true
	}
	return HintNone, false
}

// Schema is a fixed mapping of property ID to output field name.
// The three instances below are package constants in spirit: they are
// constructed once and must never be mutated.
type Schema struct {
	Kind       Kind
	Properties map[string]string
}

// Person covers biographical dates and common authority-file identifiers
var Person = &Schema{
	Kind: KindPerson,
	Properties: map[string]string{
		"P569":  "date_of_birth",
		"P570":  "date_of_death",
		"P214":  "VIAF ID",
		"P213":  "ISNI",
		"P496":  "ORCID iD",
		"P227":  "GND ID",
		"P244":  "Library of Congress authority ID",
		"P2671": "Google Knowledge Graph ID",
		"P646":  "Freebase ID",
	},
}

// Organization covers registry identifiers and founding/dissolution dates
var Organization = &Schema{
	Kind: KindOrganization,
	Properties: map[string]string{
		"P571":   "inception",
		"P576":   "dissolution",
		"P3220":  "OpenCorporates ID",
		"P1278":  "LEI code",
		"P2427":  "GRID ID",
		"P946":   "ISIN",
		"P2657":  "EU Transparency Register ID",
		"P2671":  "Google Knowledge Graph ID",
		"P646":   "Freebase ID",
		"P5785":  "EU Research participant ID",
		"P10301": "German Lobbyregister ID",
		"P4264":  "LinkedIn organization ID",
		"P3347":  "PermID",
		"P4293":  "PM20 folder ID",
	},
}

// Geographic covers coordinates plus gazetteer and administrative keys
var Geographic = &Schema{
	Kind: KindGeographic,
	Properties: map[string]string{
		"P625":   "geographic coordinates",
		"P1566":  "GeoNames ID",
		"P402":   "OSM Relation ID",
		"P440":   "German district key",
		"P439":   "German municipality key",
		"P1388":  "German regional key",
		"P1937":  "UN/LOCODE",
		"P2671":  "Google Knowledge Graph ID",
		"P646":   "Freebase ID",
		"P590":   "GNIS ID",
		"P774":   "FIPS 55-3",
		"P11693": "OpenStreetMap node ID",
	},
}

// Classify selects the schema for a record, honoring an optional type hint.
//
// With a hint, the record must positively match the requested category
// (person needs an "instance of = human" claim, geographic needs a
// coordinate claim); organization is the fallback category and is never
// verified. Without a hint, detection runs human first, then coordinate,
// then organization — an entity carrying both a human claim and coordinates
// classifies as a person.
//
// A nil return means "does not match the requested type"; it is not an error.
func Classify(record *model.EntityRecord, hint TypeHint) *Schema {
	switch hint {
	case HintPerson:
		if isHuman(record) {
			return Person
		}
		return nil
	case HintGeographic:
		if record.HasClaim(PropertyCoordinates) {
			return Geographic
		}
		return nil
	case HintOrganization:
		return Organization
	case HintNone:
		if isHuman(record) {
			return Person
		}
		if record.HasClaim(PropertyCoordinates) {
			return Geographic
		}
		return Organization
	}
	return nil
}

// isHuman reports whether any "instance of" claim references the human item
func isHuman(record *model.EntityRecord) bool {
	for _, value := range record.Claims[PropertyInstanceOf] {
		if value.Kind == model.ValueEntityRef && value.EntityID == ItemHuman {
			return true
		}
	}
	return false
}
