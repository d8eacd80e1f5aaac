package wikibase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ubmlab/kgenrich/internal/model"
)

// searchResponse is the subset of the wbsearchentities payload consumed here
type searchResponse struct {
	Search []struct {
		ID string `json:"id"`
	} `json:"search"`
}

// decodeSearch extracts the ordered candidate identifiers from a search response
func decodeSearch(body []byte) ([]string, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(resp.Search))
	for _, result := range resp.Search {
		if result.ID != "" {
			ids = append(ids, result.ID)
		}
	}
	return ids, nil
}

// entityDataResponse mirrors the Special:EntityData envelope
type entityDataResponse struct {
	Entities map[string]entityPayload `json:"entities"`
}

type entityPayload struct {
	Claims       map[string][]claim      `json:"claims"`
	Labels       map[string]model.Term   `json:"labels"`
	Descriptions map[string]model.Term   `json:"descriptions"`
	Aliases      map[string][]model.Term `json:"aliases"`
}

type claim struct {
	MainSnak struct {
		SnakType  string `json:"snaktype"`
		DataValue struct {
			Type  string          `json:"type"`
			Value json.RawMessage `json:"value"`
		} `json:"datavalue"`
	} `json:"mainsnak"`
}

// decodeEntity converts a Special:EntityData response into an EntityRecord.
// Claim values with shapes the decoder does not understand are dropped, so a
// malformed claim costs one field, not the record.
func decodeEntity(id string, body []byte) (*model.EntityRecord, error) {
	var resp entityDataResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	payload, ok := resp.Entities[id]
	if !ok {
		// The service resolves redirected identifiers under the target ID
		for _, candidate := range resp.Entities {
			payload = candidate
			ok = true
			break
		}
	}
	if !ok {
		return nil, fmt.Errorf("no entity payload for %s", id)
	}

	record := &model.EntityRecord{
		ID:           id,
		Claims:       make(map[string][]model.ClaimValue, len(payload.Claims)),
		Labels:       payload.Labels,
		Descriptions: payload.Descriptions,
		Aliases:      payload.Aliases,
	}

	for propertyID, claims := range payload.Claims {
		values := make([]model.ClaimValue, 0, len(claims))
		for _, cl := range claims {
			if value, ok := decodeClaimValue(cl); ok {
				values = append(values, value)
			}
		}
		if len(values) > 0 {
			record.Claims[propertyID] = values
		}
	}

	return record, nil
}

// decodeClaimValue maps one raw datavalue to the tagged ClaimValue variant:
// entity references keep only the referenced identifier, coordinates become
// a Coordinate, everything else normalizes to a scalar string.
func decodeClaimValue(cl claim) (model.ClaimValue, bool) {
	snak := cl.MainSnak
	if snak.SnakType != "value" || snak.DataValue.Value == nil {
		return model.ClaimValue{}, false
	}

	raw := snak.DataValue.Value
	switch snak.DataValue.Type {
	case "wikibase-entityid":
		var ref struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &ref); err != nil || ref.ID == "" {
			return model.ClaimValue{}, false
		}
		return model.ClaimValue{Kind: model.ValueEntityRef, EntityID: ref.ID}, true

	case "globecoordinate":
		var coord model.Coordinate
		if err := json.Unmarshal(raw, &coord); err != nil {
			return model.ClaimValue{}, false
		}
		return model.ClaimValue{Kind: model.ValueCoordinate, Coordinate: &coord}, true

	case "time":
		var tv struct {
			Time string `json:"time"`
		}
		if err := json.Unmarshal(raw, &tv); err != nil || tv.Time == "" {
			return model.ClaimValue{}, false
		}
		return model.ClaimValue{Kind: model.ValueScalar, Text: normalizeTime(tv.Time)}, true

	case "monolingualtext":
		var mt struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(raw, &mt); err != nil {
			return model.ClaimValue{}, false
		}
		return model.ClaimValue{Kind: model.ValueScalar, Text: mt.Text}, true

	case "quantity":
		var qt struct {
			Amount string `json:"amount"`
		}
		if err := json.Unmarshal(raw, &qt); err != nil {
			return model.ClaimValue{}, false
		}
		return model.ClaimValue{Kind: model.ValueScalar, Text: strings.TrimPrefix(qt.Amount, "+")}, true

	case "string", "":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return model.ClaimValue{}, false
		}
		return model.ClaimValue{Kind: model.ValueScalar, Text: s}, true
	}

	return model.ClaimValue{}, false
}

// normalizeTime reduces a Wikibase timestamp ("+1879-03-14T00:00:00Z") to a
// plain YYYY-MM-DD date; BCE timestamps keep their leading minus sign.
func normalizeTime(t string) string {
	t = strings.TrimPrefix(t, "+")
	if idx := strings.IndexByte(t, 'T'); idx > 0 {
		t = t[:idx]
	}
	return t
}
