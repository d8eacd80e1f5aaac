package model

import "encoding/json"

// ErrorKind classifies why a candidate could not be enriched
type ErrorKind string

const (
	ErrorNoMatch               ErrorKind = "no_match"                // Search returned nothing for the input string
	ErrorEntityDataUnavailable ErrorKind = "entity_data_unavailable" // Record retrieval failed or returned nothing
	ErrorTypeMismatch          ErrorKind = "type_mismatch"           // Record does not satisfy the requested category
)

// Result is one entry in an enrichment output: either an EnrichedResult
// or an ErrorResult, never both.
type Result interface {
	resultEntry()
}

// EnrichedResult is the flat output record for one successfully enriched entity.
//
// Fields holds only the schema properties actually present on the entity; a
// missing key means "unknown" and is distinct from a present-but-null label or
// description. Boundaries is populated only for geographic entities whose
// coordinates resolved, and then carries exactly one flag per boundary dataset.
type EnrichedResult struct {
	ID          string
	URL         string
	Label       *string
	Description *string
	Aliases     []string
	Fields      map[string]string
	Boundaries  map[string]bool
}

func (*EnrichedResult) resultEntry() {}

// MarshalJSON renders the result as a single flat object, the shape the
// upstream service emitted: label/description/aliases/id/url first, then
// schema fields keyed by their output names, then is_within_* flags.
func (r *EnrichedResult) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, 5+len(r.Fields)+len(r.Boundaries))
	flat["id"] = r.ID
	flat["url"] = r.URL
	flat["label"] = r.Label
	flat["description"] = r.Description
	aliases := r.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	flat["aliases"] = aliases
	for name, value := range r.Fields {
		flat[name] = value
	}
	for dataset, within := range r.Boundaries {
		flat["is_within_"+dataset] = within
	}
	return json.Marshal(flat)
}

// Flat returns the same flat mapping MarshalJSON encodes, for renderers
// that need a generic value (e.g. YAML output).
func (r *EnrichedResult) Flat() map[string]interface{} {
	data, _ := json.Marshal(r)
	var flat map[string]interface{}
	_ = json.Unmarshal(data, &flat)
	return flat
}

// ErrorResult reports a per-candidate failure inside an enrichment batch
type ErrorResult struct {
	Error ErrorKind `json:"error"`
	ID    string    `json:"id,omitempty"` // Candidate identifier, when one was resolved
}

func (*ErrorResult) resultEntry() {}
