package model

// ValueKind categorizes the shape of a claim value
type ValueKind string

const (
	ValueScalar     ValueKind = "scalar"     // String, external ID, normalized date or amount
	ValueEntityRef  ValueKind = "entity_ref" // Reference to another entity by identifier
	ValueCoordinate ValueKind = "coordinate" // Globe coordinate (latitude/longitude, WGS84)
)

// ClaimValue is a single decoded claim value attached to an entity.
// Exactly one payload field is meaningful, selected by Kind.
type ClaimValue struct {
	Kind       ValueKind   `json:"kind"`
	Text       string      `json:"text,omitempty"`       // Payload for ValueScalar
	EntityID   string      `json:"entity_id,omitempty"`  // Payload for ValueEntityRef
	Coordinate *Coordinate `json:"coordinate,omitempty"` // Payload for ValueCoordinate
}

// Coordinate is a point in WGS84 degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Term is a label or description in one language
type Term struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// EntityRecord is the full claim record of one knowledge-base entity.
// Records are fetched fresh per request and never mutated afterwards.
type EntityRecord struct {
	ID           string                  `json:"id"`
	Claims       map[string][]ClaimValue `json:"claims"`       // property ID -> ordered claim values
	Labels       map[string]Term         `json:"labels"`       // language code -> label
	Descriptions map[string]Term         `json:"descriptions"` // language code -> description
	Aliases      map[string][]Term       `json:"aliases"`      // language code -> ordered aliases
}

// HasClaim reports whether the record carries at least one claim for the property
func (r *EntityRecord) HasClaim(propertyID string) bool {
	return len(r.Claims[propertyID]) > 0
}

// FirstClaim returns the first claim value for the property, if any.
// Secondary values are never consulted; no rank resolution is attempted.
func (r *EntityRecord) FirstClaim(propertyID string) (ClaimValue, bool) {
	values := r.Claims[propertyID]
	if len(values) == 0 {
		return ClaimValue{}, false
	}
	return values[0], true
}

// Label returns the label for the language, or empty string if absent
func (r *EntityRecord) Label(language string) (string, bool) {
	term, ok := r.Labels[language]
	return term.Value, ok
}

// Description returns the description for the language, or empty string if absent
func (r *EntityRecord) Description(language string) (string, bool) {
	term, ok := r.Descriptions[language]
	return term.Value, ok
}

// AliasValues returns the alias strings for the language (empty slice if none)
func (r *EntityRecord) AliasValues(language string) []string {
	terms := r.Aliases[language]
	aliases := make([]string, 0, len(terms))
	for _, term := range terms {
		aliases = append(aliases, term.Value)
	}
	return aliases
}
