// ABOUTME: Snapshot: the full persisted state of bikes, maintenance logs and rides.
// ABOUTME: Same shape for the stored blob and the export document.
package models

import "encoding/json"

// Snapshot is the whole store state.
type Snapshot struct {
	Bikes           []Bike           `json:"bikes"`
	MaintenanceLogs []MaintenanceLog `json:"maintenanceLogs"`
	Rides           []Ride           `json:"rides"`
	Extra           Extra            `json:"-"`
}

type snapshotJSON Snapshot

var snapshotKeys = []string{"bikes", "maintenanceLogs", "rides"}

// NewSnapshot returns the empty default shape.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Bikes:           []Bike{},
		MaintenanceLogs: []MaintenanceLog{},
		Rides:           []Ride{},
	}
}

// MarshalJSON encodes the snapshot followed by any unmodeled top-level fields.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	s.normalize()
	return joinExtra(snapshotJSON(s), s.Extra)
}

// UnmarshalJSON decodes the snapshot and keeps unmodeled top-level fields.
// Missing or null lists decode as empty.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var v snapshotJSON
	extra, err := splitExtra(data, &v, snapshotKeys)
	if err != nil {
		return err
	}
	*s = Snapshot(v)
	s.Extra = extra
	s.normalize()
	return nil
}

func (s *Snapshot) normalize() {
	if s.Bikes == nil {
		s.Bikes = []Bike{}
	}
	if s.MaintenanceLogs == nil {
		s.MaintenanceLogs = []MaintenanceLog{}
	}
	if s.Rides == nil {
		s.Rides = []Ride{}
	}
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Bikes:           make([]Bike, len(s.Bikes)),
		MaintenanceLogs: make([]MaintenanceLog, len(s.MaintenanceLogs)),
		Rides:           make([]Ride, len(s.Rides)),
		Extra:           s.Extra.Clone(),
	}
	for i, b := range s.Bikes {
		out.Bikes[i] = b.Clone()
	}
	for i, l := range s.MaintenanceLogs {
		out.MaintenanceLogs[i] = l.Clone()
	}
	for i, r := range s.Rides {
		out.Rides[i] = r.Clone()
	}
	return out
}

// BikeIndex returns the index of the bike with the given id, or -1.
func (s *Snapshot) BikeIndex(id string) int {
	for i := range s.Bikes {
		if s.Bikes[i].ID == id {
			return i
		}
	}
	return -1
}

// Encode returns the compact JSON form used for persistence.
func (s *Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}
