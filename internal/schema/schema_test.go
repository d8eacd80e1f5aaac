package schema

import (
	"testing"

	"github.com/ubmlab/kgenrich/internal/model"
)

func humanRecord() *model.EntityRecord {
	return &model.EntityRecord{
		ID: "Q937",
		Claims: map[string][]model.ClaimValue{
			PropertyInstanceOf: {
				{Kind: model.ValueEntityRef, EntityID: ItemHuman},
			},
		},
	}
}

func geoRecord() *model.EntityRecord {
	return &model.EntityRecord{
		ID: "Q2119",
		Claims: map[string][]model.ClaimValue{
			PropertyInstanceOf: {
				{Kind: model.ValueEntityRef, EntityID: "Q515"},
			},
			PropertyCoordinates: {
				{Kind: model.ValueCoordinate, Coordinate: &model.Coordinate{Latitude: 49.4883, Longitude: 8.4647}},
			},
		},
	}
}

func orgRecord() *model.EntityRecord {
	return &model.EntityRecord{
		ID: "Q316278",
		Claims: map[string][]model.ClaimValue{
			PropertyInstanceOf: {
				{Kind: model.ValueEntityRef, EntityID: "Q7075"},
			},
		},
	}
}

func TestClassify_AutoDetect(t *testing.T) {
	tests := []struct {
		name   string
		record *model.EntityRecord
		want   Kind
	}{
		{"human", humanRecord(), KindPerson},
		{"coordinates", geoRecord(), KindGeographic},
		{"fallback organization", orgRecord(), KindOrganization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sch := Classify(tt.record, HintNone)
			if sch == nil {
				t.Fatal("Expected a schema, got nil")
			}
			if sch.Kind != tt.want {
				t.Errorf("Expected kind %s, got %s", tt.want, sch.Kind)
			}
		})
	}
}

func TestClassify_HumanWinsOverCoordinates(t *testing.T) {
	// A record that is both a settlement and, by data error, a human must
	// classify as a person: the priority order is human > geographic >
	// organization.
	record := geoRecord()
	record.Claims[PropertyInstanceOf] = append(record.Claims[PropertyInstanceOf],
		model.ClaimValue{Kind: model.ValueEntityRef, EntityID: ItemHuman})

	sch := Classify(record, HintNone)
	if sch == nil {
		t.Fatal("Expected a schema, got nil")
	}
	if sch.Kind != KindPerson {
		t.Errorf("Expected person to win the priority order, got %s", sch.Kind)
	}
}

func TestClassify_Hints(t *testing.T) {
	tests := []struct {
		name   string
		record *model.EntityRecord
		hint   TypeHint
		want   Kind
		none   bool
	}{
		{"person hint on human", humanRecord(), HintPerson, KindPerson, false},
		{"person hint on place", geoRecord(), HintPerson, "", true},
		{"geographic hint on place", geoRecord(), HintGeographic, KindGeographic, false},
		{"geographic hint on human", humanRecord(), HintGeographic, "", true},
		{"organization hint is never verified", humanRecord(), HintOrganization, KindOrganization, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sch := Classify(tt.record, tt.hint)
			if tt.none {
				if sch != nil {
					t.Fatalf("Expected nil for mismatched hint, got %s", sch.Kind)
				}
				return
			}
			if sch == nil {
				t.Fatal("Expected a schema, got nil")
			}
			if sch.Kind != tt.want {
				t.Errorf("Expected kind %s, got %s", tt.want, sch.Kind)
			}
		})
	}
}

func TestClassify_HintNeverReturnsOtherSchema(t *testing.T) {
	records := []*model.EntityRecord{humanRecord(), geoRecord(), orgRecord()}
	hints := map[TypeHint]Kind{
		HintPerson:       KindPerson,
		HintOrganization: KindOrganization,
		HintGeographic:   KindGeographic,
	}

	for hint, want := range hints {
		for _, record := range records {
			if sch := Classify(record, hint); sch != nil && sch.Kind != want {
				t.Errorf("Hint %s on %s returned schema %s", hint, record.ID, sch.Kind)
			}
		}
	}
}

func TestParseHint(t *testing.T) {
	tests := []struct {
		in   string
		want TypeHint
		ok   bool
	}{
		{"", HintNone, true},
		{"none", HintNone, true},
		{"person", HintPerson, true},
		{"per", HintPerson, true},
		{"organization", HintOrganization, true},
		{"org", HintOrganization, true},
		{"geographic", HintGeographic, true},
		{"geo", HintGeographic, true},
		{"place", HintNone, false},
	}

	for _, tt := range tests {
		got, ok := ParseHint(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseHint(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSchemas_AreDisjointByKind(t *testing.T) {
	if Person.Kind != KindPerson || Organization.Kind != KindOrganization || Geographic.Kind != KindGeographic {
		t.Fatal("Schema kind tags do not match their categories")
	}
	if _, ok := Geographic.Properties[PropertyCoordinates]; !ok {
		t.Error("Geographic schema must include the coordinate property")
	}
	if _, ok := Person.Properties[PropertyCoordinates]; ok {
		t.Error("Person schema must not include the coordinate property")
	}
}
