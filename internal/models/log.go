// ABOUTME: MaintenanceLog model: a historical record that a guide task was performed.
// ABOUTME: Task name and category are copied at write time and never re-joined to the catalog.
package models

// MaintenanceLog records that a maintenance task was done on a bike.
//
// TaskName and Category are snapshots of the guide at the time the log was
// written. They are the log's own data, not a cache of the catalog: editing
// or removing a guide later must not change what a log says happened.
type MaintenanceLog struct {
	ID               string   `json:"id"`
	BikeID           string   `json:"bikeId"`
	GuideID          string   `json:"guideId"`
	TaskName         string   `json:"taskName"`
	Category         Category `json:"category"`
	Date             Date     `json:"date,omitzero"`
	MileageAtService float64  `json:"mileageAtService"`
	Notes            string   `json:"notes,omitempty"`
	Extra            Extra    `json:"-"`
}

type logJSON MaintenanceLog

var logKeys = []string{"id", "bikeId", "guideId", "taskName", "category", "date", "mileageAtService", "notes"}

// MarshalJSON encodes the log followed by any unmodeled fields.
func (l MaintenanceLog) MarshalJSON() ([]byte, error) {
	return joinExtra(logJSON(l), l.Extra)
}

// UnmarshalJSON decodes the log and keeps unmodeled fields.
func (l *MaintenanceLog) UnmarshalJSON(data []byte) error {
	var v logJSON
	extra, err := splitExtra(data, &v, logKeys)
	if err != nil {
		return err
	}
	*l = MaintenanceLog(v)
	l.Extra = extra
	return nil
}

// Clone returns a deep copy of the log.
func (l MaintenanceLog) Clone() MaintenanceLog {
	out := l
	out.Extra = l.Extra.Clone()
	return out
}

// LogFields are the caller-supplied fields for a new log. A zero Date means
// today; a nil MileageAtService means the bike's current mileage.
type LogFields struct {
	BikeID           string
	GuideID          string
	TaskName         string
	Category         Category
	Date             Date
	MileageAtService *float64
	Notes            string
	Extra            Extra
}
