// ABOUTME: Bike operations: create, update, delete with cascade, and lookups.
// ABOUTME: Mutations on an unknown bike id are no-ops.
package store

import (
	"fmt"
	"strings"

	"github.com/harperreed/mtbmaint/internal/models"
)

// CreateBike adds a bike. It starts with no mileage, no components and a
// creation timestamp of now; any field set in fields overrides those
// defaults. The id is always freshly assigned.
func (s *Store) CreateBike(fields models.BikeFields) (models.Bike, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := models.Bike{
		ID:           s.newID(),
		Name:         fields.Name,
		Make:         fields.Make,
		Model:        fields.Model,
		Year:         fields.Year,
		TotalMileage: fields.TotalMileage,
		Components:   []models.Component{},
		Notes:        fields.Notes,
		CreatedAt:    fields.CreatedAt,
		Extra:        fields.Extra.Clone(),
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = models.TimestampOf(s.now())
	}
	for _, c := range fields.Components {
		c = c.Clone()
		if c.ID == "" {
			c.ID = s.newID()
		}
		b.Components = append(b.Components, c)
	}

	err := s.update("create_bike", func(next *models.Snapshot) {
		next.Bikes = append(next.Bikes, b.Clone())
	})
	if err != nil {
		return models.Bike{}, err
	}
	return b, nil
}

// UpdateBike merges patch onto the bike with the given id.
func (s *Store) UpdateBike(id string, patch models.BikePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update("update_bike", func(next *models.Snapshot) {
		if i := next.BikeIndex(id); i >= 0 {
			patch.Apply(&next.Bikes[i])
		}
	})
}

// DeleteBike removes the bike, its components, and every log and ride that
// references it, in one write.
func (s *Store) DeleteBike(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update("delete_bike", func(next *models.Snapshot) {
		bikes := next.Bikes[:0]
		for _, b := range next.Bikes {
			if b.ID != id {
				bikes = append(bikes, b)
			}
		}
		next.Bikes = bikes

		logs := next.MaintenanceLogs[:0]
		for _, l := range next.MaintenanceLogs {
			if l.BikeID != id {
				logs = append(logs, l)
			}
		}
		next.MaintenanceLogs = logs

		rides := next.Rides[:0]
		for _, r := range next.Rides {
			if r.BikeID != id {
				rides = append(rides, r)
			}
		}
		next.Rides = rides
	})
}

// GetBike returns the bike with the given id, or ErrNotFound.
func (s *Store) GetBike(id string) (models.Bike, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bikeIndex(id)
	if i < 0 {
		return models.Bike{}, fmt.Errorf("bike %s: %w", id, ErrNotFound)
	}
	return s.state.Bikes[i].Clone(), nil
}

// ListBikes returns every bike in insertion order.
func (s *Store) ListBikes() []models.Bike {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Bike, len(s.state.Bikes))
	for i, b := range s.state.Bikes {
		out[i] = b.Clone()
	}
	return out
}

// FindBike resolves a user reference to a bike: an exact id, a unique id
// prefix, or a case-insensitive exact name, in that order.
func (s *Store) FindBike(ref string) (models.Bike, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Bike{}, fmt.Errorf("empty bike reference: %w", ErrNotFound)
	}
	if i := s.bikeIndex(ref); i >= 0 {
		return s.state.Bikes[i].Clone(), nil
	}

	var matches []int
	for i, b := range s.state.Bikes {
		if strings.HasPrefix(b.ID, ref) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		for i, b := range s.state.Bikes {
			if strings.EqualFold(b.Name, ref) {
				matches = append(matches, i)
			}
		}
	}

	switch len(matches) {
	case 0:
		return models.Bike{}, fmt.Errorf("bike %s: %w", ref, ErrNotFound)
	case 1:
		return s.state.Bikes[matches[0]].Clone(), nil
	default:
		return models.Bike{}, fmt.Errorf("bike %s matches %d bikes: %w", ref, len(matches), ErrAmbiguous)
	}
}
