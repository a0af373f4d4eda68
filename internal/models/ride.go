// ABOUTME: Ride model: a mileage-accruing event for a bike.
// ABOUTME: Adding a ride is the only operation that advances a bike's mileage.
package models

// Ride is a single ride on a bike.
type Ride struct {
	ID      string  `json:"id"`
	BikeID  string  `json:"bikeId"`
	Mileage float64 `json:"mileage"`
	Date    Date    `json:"date,omitzero"`
	Notes   string  `json:"notes,omitempty"`
	Extra   Extra   `json:"-"`
}

type rideJSON Ride

var rideKeys = []string{"id", "bikeId", "mileage", "date", "notes"}

// MarshalJSON encodes the ride followed by any unmodeled fields.
func (r Ride) MarshalJSON() ([]byte, error) {
	return joinExtra(rideJSON(r), r.Extra)
}

// UnmarshalJSON decodes the ride and keeps unmodeled fields.
func (r *Ride) UnmarshalJSON(data []byte) error {
	var v rideJSON
	extra, err := splitExtra(data, &v, rideKeys)
	if err != nil {
		return err
	}
	*r = Ride(v)
	r.Extra = extra
	return nil
}

// Clone returns a deep copy of the ride.
func (r Ride) Clone() Ride {
	out := r
	out.Extra = r.Extra.Clone()
	return out
}

// RideFields are the caller-supplied fields for a new ride.
type RideFields struct {
	BikeID  string
	Mileage float64
	Date    Date
	Notes   string
	Extra   Extra
}
