// ABOUTME: Tests for Bike and Component models.
// ABOUTME: Covers JSON round trips, unknown-field preservation, patches and legacy keys.
package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestBikeRoundTripKeepsUnknownFields(t *testing.T) {
	in := `{"id":"b1","name":"Trail","totalMileage":12.5,"components":[{"id":"c1","name":"Chain","category":"drivetrain","installedMileage":3,"color":"gold"}],"createdAt":"2024-05-01T10:00:00.120Z","frameSize":"L","sponsor":{"name":"x"}}`

	var b Bike
	if err := json.Unmarshal([]byte(in), &b); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if b.TotalMileage != 12.5 {
		t.Errorf("TotalMileage = %v, want 12.5", b.TotalMileage)
	}
	if len(b.Extra) != 2 {
		t.Errorf("expected 2 extra fields, got %d", len(b.Extra))
	}
	if len(b.Components) != 1 || len(b.Components[0].Extra) != 1 {
		t.Fatalf("expected component extra to be kept, got %+v", b.Components)
	}

	out, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	for _, want := range []string{`"frameSize":"L"`, `"sponsor":{"name":"x"}`, `"color":"gold"`, `"createdAt":"2024-05-01T10:00:00.120Z"`} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestBikeMarshalEmptyComponents(t *testing.T) {
	out, err := json.Marshal(Bike{ID: "b1", Name: "Trail"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !strings.Contains(string(out), `"components":[]`) {
		t.Errorf("expected empty components list, got %s", out)
	}
	if strings.Contains(string(out), "createdAt") {
		t.Errorf("expected zero createdAt to be omitted, got %s", out)
	}
}

func TestYearAcceptsStringAndNumber(t *testing.T) {
	tests := []struct {
		input string
		want  Year
	}{
		{`{"year":2021}`, 2021},
		{`{"year":"2019"}`, 2019},
		{`{"year":""}`, 0},
		{`{"year":null}`, 0},
		{`{}`, 0},
	}
	for _, tt := range tests {
		var b Bike
		if err := json.Unmarshal([]byte(tt.input), &b); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", tt.input, err)
		}
		if b.Year != tt.want {
			t.Errorf("Unmarshal(%s) year = %d, want %d", tt.input, b.Year, tt.want)
		}
	}

	var b Bike
	if err := json.Unmarshal([]byte(`{"year":"soon"}`), &b); err == nil {
		t.Error("expected error for non-numeric year")
	}
}

func TestComponentLegacyTypeKey(t *testing.T) {
	var c Component
	if err := json.Unmarshal([]byte(`{"id":"c1","name":"Fork","type":"suspension"}`), &c); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if c.Category != CategorySuspension {
		t.Errorf("Category = %q, want suspension", c.Category)
	}
	out, _ := json.Marshal(c)
	if !strings.Contains(string(out), `"type":"suspension"`) {
		t.Errorf("expected legacy key to be preserved, got %s", out)
	}
}

func TestBikePatchApply(t *testing.T) {
	b := Bike{ID: "b1", Name: "Old", Make: "Santa Cruz", TotalMileage: 10, Notes: "keep"}
	name := "New"
	miles := 42.0
	BikePatch{Name: &name, TotalMileage: &miles, Extra: Extra{"color": json.RawMessage(`"red"`)}}.Apply(&b)

	if b.Name != "New" || b.TotalMileage != 42 {
		t.Errorf("patch not applied: %+v", b)
	}
	if b.Make != "Santa Cruz" || b.Notes != "keep" {
		t.Errorf("unpatched fields changed: %+v", b)
	}
	if string(b.Extra["color"]) != `"red"` {
		t.Errorf("extra not merged: %v", b.Extra)
	}
	if b.ID != "b1" {
		t.Errorf("ID changed to %q", b.ID)
	}
}

func TestComponentPatchApply(t *testing.T) {
	c := Component{ID: "c1", Name: "Chain", Category: CategoryDrivetrain, InstalledMileage: 100}
	cat := CategoryWheels
	ComponentPatch{Category: &cat}.Apply(&c)
	if c.Category != CategoryWheels || c.Name != "Chain" || c.InstalledMileage != 100 {
		t.Errorf("unexpected component after patch: %+v", c)
	}
}

func TestBikeCloneIsDeep(t *testing.T) {
	b := Bike{ID: "b1", Components: []Component{{ID: "c1", Name: "Chain"}}, Extra: Extra{"a": json.RawMessage(`1`)}}
	c := b.Clone()
	c.Components[0].Name = "Changed"
	c.Extra["b"] = json.RawMessage(`2`)

	if b.Components[0].Name != "Chain" {
		t.Error("clone shares components with original")
	}
	if _, ok := b.Extra["b"]; ok {
		t.Error("clone shares extra map with original")
	}
}

func TestBikeDescribe(t *testing.T) {
	b := Bike{Year: 2022, Make: "Yeti", Model: "SB130"}
	if got := b.Describe(); got != "2022 Yeti SB130" {
		t.Errorf("Describe() = %q", got)
	}
	empty := Bike{}
	if got := empty.Describe(); got != "" {
		t.Errorf("Describe() on empty bike = %q, want empty", got)
	}
}

func TestComponentMileageOn(t *testing.T) {
	c := Component{InstalledMileage: 120}
	if got := c.MileageOn(200); got != 80 {
		t.Errorf("MileageOn(200) = %v, want 80", got)
	}
}

func TestIsValidCategory(t *testing.T) {
	if !IsValidCategory("brakes") {
		t.Error("brakes should be valid")
	}
	if IsValidCategory("saddle") {
		t.Error("saddle should not be valid")
	}
	if CategoryFrame.DisplayName() != "Frame & General" {
		t.Errorf("DisplayName() = %q", CategoryFrame.DisplayName())
	}
}
