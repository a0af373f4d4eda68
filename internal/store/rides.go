// ABOUTME: Ride operations. Adding a ride is what advances a bike's mileage.
// ABOUTME: The mileage bump and the ride append are persisted in one write.
package store

import (
	"github.com/harperreed/mtbmaint/internal/models"
)

// AddRide records a ride and adds its mileage to the bike's total. The date
// defaults to today. A ride for an unknown bike is still recorded.
func (s *Store) AddRide(fields models.RideFields) (models.Ride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := models.Ride{
		ID:      s.newID(),
		BikeID:  fields.BikeID,
		Mileage: fields.Mileage,
		Date:    fields.Date,
		Notes:   fields.Notes,
		Extra:   fields.Extra.Clone(),
	}
	if r.Date.IsZero() {
		r.Date = s.today()
	}

	err := s.update("add_ride", func(next *models.Snapshot) {
		if i := next.BikeIndex(r.BikeID); i >= 0 {
			total := next.Bikes[i].TotalMileage + r.Mileage
			models.BikePatch{TotalMileage: &total}.Apply(&next.Bikes[i])
		}
		next.Rides = append(next.Rides, r.Clone())
	})
	if err != nil {
		return models.Ride{}, err
	}
	return r, nil
}

// RidesForBike returns the bike's rides, newest first.
func (s *Store) RidesForBike(bikeID string) []models.Ride {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Ride
	for _, r := range s.state.Rides {
		if r.BikeID == bikeID {
			out = append(out, r.Clone())
		}
	}
	models.SortRidesNewestFirst(out)
	return out
}

// AllRides returns every ride, newest first.
func (s *Store) AllRides() []models.Ride {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Ride, len(s.state.Rides))
	for i, r := range s.state.Rides {
		out[i] = r.Clone()
	}
	models.SortRidesNewestFirst(out)
	return out
}
