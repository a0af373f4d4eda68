// ABOUTME: Component operations scoped to one bike's component list.
// ABOUTME: A component's installed mileage is a snapshot of the bike's mileage at install.
package store

import (
	"fmt"
	"strings"

	"github.com/harperreed/mtbmaint/internal/models"
)

// AddComponent installs a component on a bike. The install date defaults to
// today and the installed mileage to the bike's current mileage. When the
// bike does not exist nothing changes and the zero Component is returned.
func (s *Store) AddComponent(bikeID string, fields models.ComponentFields) (models.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bikeIndex(bikeID)
	if i < 0 {
		return models.Component{}, nil
	}

	c := models.Component{
		ID:               s.newID(),
		Name:             fields.Name,
		Category:         fields.Category,
		InstalledDate:    fields.InstalledDate,
		InstalledMileage: s.state.Bikes[i].TotalMileage,
		Notes:            fields.Notes,
		Extra:            fields.Extra.Clone(),
	}
	if c.InstalledDate.IsZero() {
		c.InstalledDate = s.today()
	}
	if fields.InstalledMileage != nil {
		c.InstalledMileage = *fields.InstalledMileage
	}

	err := s.update("add_component", func(next *models.Snapshot) {
		next.Bikes[i].Components = append(next.Bikes[i].Components, c.Clone())
	})
	if err != nil {
		return models.Component{}, err
	}
	return c, nil
}

// UpdateComponent merges patch onto one component of a bike.
func (s *Store) UpdateComponent(bikeID, componentID string, patch models.ComponentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update("update_component", func(next *models.Snapshot) {
		i := next.BikeIndex(bikeID)
		if i < 0 {
			return
		}
		if c, ok := next.Bikes[i].Component(componentID); ok {
			patch.Apply(c)
		}
	})
}

// DeleteComponent removes one component from a bike.
func (s *Store) DeleteComponent(bikeID, componentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.update("delete_component", func(next *models.Snapshot) {
		i := next.BikeIndex(bikeID)
		if i < 0 {
			return
		}
		kept := next.Bikes[i].Components[:0]
		for _, c := range next.Bikes[i].Components {
			if c.ID != componentID {
				kept = append(kept, c)
			}
		}
		next.Bikes[i].Components = kept
	})
}

// FindComponent resolves a component on a bike by exact id or unique id prefix.
func (s *Store) FindComponent(bikeID, ref string) (models.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.bikeIndex(bikeID)
	if i < 0 {
		return models.Component{}, fmt.Errorf("bike %s: %w", bikeID, ErrNotFound)
	}
	bike := &s.state.Bikes[i]
	if c, ok := bike.Component(ref); ok {
		return c.Clone(), nil
	}

	var found []models.Component
	for _, c := range bike.Components {
		if ref != "" && strings.HasPrefix(c.ID, ref) {
			found = append(found, c)
		}
	}
	switch len(found) {
	case 0:
		return models.Component{}, fmt.Errorf("component %s: %w", ref, ErrNotFound)
	case 1:
		return found[0].Clone(), nil
	default:
		return models.Component{}, fmt.Errorf("component %s matches %d components: %w", ref, len(found), ErrAmbiguous)
	}
}
