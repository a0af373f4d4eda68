// ABOUTME: Due-maintenance derivation from bike mileage, service history and guides.
// ABOUTME: Pure functions; nothing here reads or writes persisted state.
package schedule

import (
	"github.com/harperreed/mtbmaint/internal/catalog"
	"github.com/harperreed/mtbmaint/internal/models"
)

// Status classifies a bike's standing against a guide's interval.
type Status string

const (
	StatusOverdue  Status = "overdue"
	StatusDue      Status = "due"
	StatusUpcoming Status = "upcoming"
)

const (
	upcomingRatio = 0.8
	overdueRatio  = 1.2
)

// DueItem is one guide that needs attention on one bike.
type DueItem struct {
	BikeID              string                 `json:"bikeId"`
	BikeName            string                 `json:"bikeName"`
	Guide               catalog.Guide          `json:"guide"`
	MileageSinceService float64                `json:"mileageSinceService"`
	Status              Status                 `json:"status"`
	LastService         *models.MaintenanceLog `json:"lastService,omitempty"`
}

// Overdue reports whether the item is past 120% of its interval.
func (d DueItem) Overdue() bool { return d.Status == StatusOverdue }

// Classify returns the status for the given mileage since service and
// interval. ok is false when the task is not yet within 80% of the interval.
func Classify(mileageSinceService, interval float64) (status Status, ok bool) {
	switch {
	case mileageSinceService > interval*overdueRatio:
		return StatusOverdue, true
	case mileageSinceService >= interval:
		return StatusDue, true
	case mileageSinceService >= interval*upcomingRatio:
		return StatusUpcoming, true
	default:
		return "", false
	}
}

// LastService returns the most recent log for the bike and guide. Logs with
// equal dates resolve to the one that appears first in logs.
func LastService(logs []models.MaintenanceLog, bikeID, guideID string) (*models.MaintenanceLog, bool) {
	var last *models.MaintenanceLog
	for i := range logs {
		l := &logs[i]
		if l.BikeID != bikeID || l.GuideID != guideID {
			continue
		}
		if last == nil || l.Date.After(last.Date) {
			last = l
		}
	}
	return last, last != nil
}

// ForBike computes the due items for one bike. Only guides with a mileage
// interval are considered. Overdue items come first; within each group the
// order follows guides.
func ForBike(bike models.Bike, logs []models.MaintenanceLog, guides []catalog.Guide) []DueItem {
	var overdue, rest []DueItem
	for _, g := range guides {
		if !g.Scheduled() {
			continue
		}
		item := DueItem{
			BikeID:              bike.ID,
			BikeName:            bike.Name,
			Guide:               g,
			MileageSinceService: bike.TotalMileage,
		}
		if last, ok := LastService(logs, bike.ID, g.ID); ok {
			copied := last.Clone()
			item.LastService = &copied
			item.MileageSinceService = bike.TotalMileage - last.MileageAtService
		}

		status, ok := Classify(item.MileageSinceService, *g.IntervalMiles)
		if !ok {
			continue
		}
		item.Status = status
		if status == StatusOverdue {
			overdue = append(overdue, item)
		} else {
			rest = append(rest, item)
		}
	}
	return append(overdue, rest...)
}

// AcrossFleet computes due items for every bike in bike order.
func AcrossFleet(bikes []models.Bike, logsByBike map[string][]models.MaintenanceLog, guides []catalog.Guide) []DueItem {
	var out []DueItem
	for _, b := range bikes {
		out = append(out, ForBike(b, logsByBike[b.ID], guides)...)
	}
	return out
}

// GroupLogs indexes logs by bike id, keeping their relative order.
func GroupLogs(logs []models.MaintenanceLog) map[string][]models.MaintenanceLog {
	out := make(map[string][]models.MaintenanceLog)
	for _, l := range logs {
		out[l.BikeID] = append(out[l.BikeID], l)
	}
	return out
}

// Summary counts due items by urgency.
type Summary struct {
	Overdue  int `json:"overdue"`
	Due      int `json:"due"`
	Upcoming int `json:"upcoming"`
}

// NeedsAttention is the number of items that are due or upcoming but not overdue.
func (s Summary) NeedsAttention() int { return s.Due + s.Upcoming }

// Total is the number of items counted.
func (s Summary) Total() int { return s.Overdue + s.Due + s.Upcoming }

// Summarize counts items by status.
func Summarize(items []DueItem) Summary {
	var s Summary
	for _, it := range items {
		switch it.Status {
		case StatusOverdue:
			s.Overdue++
		case StatusDue:
			s.Due++
		case StatusUpcoming:
			s.Upcoming++
		}
	}
	return s
}
