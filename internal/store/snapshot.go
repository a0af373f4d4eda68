// ABOUTME: Whole-store operations: export, import, clear, stats and due maintenance.
// ABOUTME: Import is a full replace that leaves state untouched when the document is rejected.
package store

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/harperreed/mtbmaint/internal/catalog"
	"github.com/harperreed/mtbmaint/internal/models"
	"github.com/harperreed/mtbmaint/internal/schedule"
	"github.com/harperreed/mtbmaint/internal/transfer"
)

// ExportSnapshot returns a deep copy of the current state.
func (s *Store) ExportSnapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// ExportJSON returns the current state as an indented export document.
func (s *Store) ExportJSON() ([]byte, error) {
	return transfer.EncodeJSON(s.ExportSnapshot())
}

// ImportSnapshot replaces the whole state with document. Input that is not
// JSON fails with ErrParse; JSON of the wrong shape fails with
// ErrInvalidFormat. In both cases the current state is kept.
func (s *Store) ImportSnapshot(document []byte) error {
	snap, err := transfer.Decode(document)
	if err != nil {
		s.log.Info("import rejected", zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.commit("import", snap); err != nil {
		return err
	}
	s.log.Info("imported snapshot",
		zap.Int("bikes", len(snap.Bikes)),
		zap.Int("logs", len(snap.MaintenanceLogs)),
		zap.Int("rides", len(snap.Rides)))
	return nil
}

// ClearAll resets the store to the empty shape.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit("clear", models.NewSnapshot())
}

// Stats summarizes the store contents.
type Stats struct {
	Bikes           int     `json:"bikes"`
	Components      int     `json:"components"`
	MaintenanceLogs int     `json:"maintenanceLogs"`
	Rides           int     `json:"rides"`
	TotalMileage    float64 `json:"totalMileage"`
}

// Stats counts records and sums fleet mileage.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Bikes:           len(s.state.Bikes),
		MaintenanceLogs: len(s.state.MaintenanceLogs),
		Rides:           len(s.state.Rides),
	}
	for _, b := range s.state.Bikes {
		st.Components += len(b.Components)
		st.TotalMileage += b.TotalMileage
	}
	return st
}

// DueForBike derives the due maintenance for one bike.
func (s *Store) DueForBike(bikeID string, cat *catalog.Catalog) ([]schedule.DueItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bikeIndex(bikeID)
	if i < 0 {
		return nil, fmt.Errorf("bike %s: %w", bikeID, ErrNotFound)
	}
	return schedule.ForBike(s.state.Bikes[i].Clone(), s.cloneLogs(), cat.All()), nil
}

// DueAcrossFleet derives the due maintenance for every bike, in bike order.
func (s *Store) DueAcrossFleet(cat *catalog.Catalog) []schedule.DueItem {
	snap := s.ExportSnapshot()
	return schedule.AcrossFleet(snap.Bikes, schedule.GroupLogs(snap.MaintenanceLogs), cat.All())
}

func (s *Store) cloneLogs() []models.MaintenanceLog {
	out := make([]models.MaintenanceLog, len(s.state.MaintenanceLogs))
	for i, l := range s.state.MaintenanceLogs {
		out[i] = l.Clone()
	}
	return out
}
