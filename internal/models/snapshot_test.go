// ABOUTME: Tests for the Snapshot model.
// ABOUTME: Covers the default shape, top-level extras and deep cloning.
package models

import (
	"encoding/json"
	"testing"
)

func TestNewSnapshotEncodesEmptyLists(t *testing.T) {
	data, err := NewSnapshot().Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := `{"bikes":[],"maintenanceLogs":[],"rides":[]}`
	if string(data) != want {
		t.Errorf("Encode() = %s, want %s", data, want)
	}
}

func TestSnapshotKeepsTopLevelExtras(t *testing.T) {
	in := `{"bikes":[],"maintenanceLogs":[],"rides":[],"pdfResources":[{"name":"manual.pdf"}]}`
	var s Snapshot
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	out, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip changed document:\n got %s\nwant %s", out, in)
	}
}

func TestSnapshotNullListsDecodeEmpty(t *testing.T) {
	var s Snapshot
	if err := json.Unmarshal([]byte(`{"bikes":null}`), &s); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if s.Bikes == nil || s.MaintenanceLogs == nil || s.Rides == nil {
		t.Errorf("expected non-nil lists, got %+v", s)
	}
}

func TestSnapshotClone(t *testing.T) {
	s := NewSnapshot()
	s.Bikes = append(s.Bikes, Bike{ID: "b1", Name: "Trail"})
	s.Rides = append(s.Rides, Ride{ID: "r1", BikeID: "b1", Mileage: 5})

	c := s.Clone()
	c.Bikes[0].Name = "Changed"
	c.Rides = c.Rides[:0]

	if s.Bikes[0].Name != "Trail" || len(s.Rides) != 1 {
		t.Error("clone is not independent of the original")
	}
	if s.BikeIndex("b1") != 0 || s.BikeIndex("missing") != -1 {
		t.Error("BikeIndex returned unexpected index")
	}
}
