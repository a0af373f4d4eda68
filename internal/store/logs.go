// ABOUTME: Maintenance log operations and history queries.
// ABOUTME: Logs copy the guide's title and category when they are written.
package store

import (
	"fmt"

	"github.com/harperreed/mtbmaint/internal/catalog"
	"github.com/harperreed/mtbmaint/internal/models"
	"github.com/harperreed/mtbmaint/internal/schedule"
)

// AddMaintenanceLog records a service. The date defaults to today and the
// mileage to the bike's current mileage (0 when the bike is unknown).
// BikeID, GuideID, TaskName and Category are not checked here.
func (s *Store) AddMaintenanceLog(fields models.LogFields) (models.MaintenanceLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLog(fields)
}

func (s *Store) addLog(fields models.LogFields) (models.MaintenanceLog, error) {
	l := models.MaintenanceLog{
		ID:       s.newID(),
		BikeID:   fields.BikeID,
		GuideID:  fields.GuideID,
		TaskName: fields.TaskName,
		Category: fields.Category,
		Date:     fields.Date,
		Notes:    fields.Notes,
		Extra:    fields.Extra.Clone(),
	}
	if l.Date.IsZero() {
		l.Date = s.today()
	}
	if fields.MileageAtService != nil {
		l.MileageAtService = *fields.MileageAtService
	} else if i := s.bikeIndex(fields.BikeID); i >= 0 {
		l.MileageAtService = s.state.Bikes[i].TotalMileage
	}

	err := s.update("add_maintenance_log", func(next *models.Snapshot) {
		next.MaintenanceLogs = append(next.MaintenanceLogs, l.Clone())
	})
	if err != nil {
		return models.MaintenanceLog{}, err
	}
	return l, nil
}

// LogService records that a guide's task was done on a bike. The guide's
// title and category are copied into the log. An unknown bike or guide is
// ErrNotFound.
func (s *Store) LogService(bikeID, guideID string, cat *catalog.Catalog, fields models.LogFields) (models.MaintenanceLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bikeIndex(bikeID) < 0 {
		return models.MaintenanceLog{}, fmt.Errorf("bike %s: %w", bikeID, ErrNotFound)
	}
	guide, ok := cat.Get(guideID)
	if !ok {
		return models.MaintenanceLog{}, fmt.Errorf("guide %s: %w", guideID, ErrNotFound)
	}

	fields.BikeID = bikeID
	fields.GuideID = guide.ID
	fields.TaskName = guide.Title
	fields.Category = guide.Category
	return s.addLog(fields)
}

// LogsForBike returns the bike's logs, newest first. Logs with equal dates
// keep insertion order.
func (s *Store) LogsForBike(bikeID string) []models.MaintenanceLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.MaintenanceLog
	for _, l := range s.state.MaintenanceLogs {
		if l.BikeID == bikeID {
			out = append(out, l.Clone())
		}
	}
	models.SortLogsNewestFirst(out)
	return out
}

// LastServiceForTask returns the most recent log for a bike and guide, or
// ErrNotFound. Among logs with the same latest date the earliest inserted wins.
func (s *Store) LastServiceForTask(bikeID, guideID string) (models.MaintenanceLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := schedule.LastService(s.state.MaintenanceLogs, bikeID, guideID)
	if !ok {
		return models.MaintenanceLog{}, fmt.Errorf("service %s on bike %s: %w", guideID, bikeID, ErrNotFound)
	}
	return last.Clone(), nil
}

// RecentLogs returns the n newest logs across all bikes. n <= 0 returns all.
func (s *Store) RecentLogs(n int) []models.MaintenanceLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.MaintenanceLog, len(s.state.MaintenanceLogs))
	for i, l := range s.state.MaintenanceLogs {
		out[i] = l.Clone()
	}
	models.SortLogsNewestFirst(out)
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
