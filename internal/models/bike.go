// ABOUTME: Bike and Component models with shallow-merge patches.
// ABOUTME: A bike owns its components; mileage is an authoritative counter on the bike.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Year is a model year. Documents may carry it as a number or a string.
type Year int

// UnmarshalJSON accepts 2021, "2021", "" and null.
func (y *Year) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*y = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*y = 0
			return nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid year %s", string(data))
	}
	*y = Year(n)
	return nil
}

// Bike is a tracked bicycle.
type Bike struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Make         string      `json:"make,omitempty"`
	Model        string      `json:"model,omitempty"`
	Year         Year        `json:"year,omitempty"`
	TotalMileage float64     `json:"totalMileage"`
	Components   []Component `json:"components"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    Date        `json:"createdAt,omitzero"`
	Extra        Extra       `json:"-"`
}

type bikeJSON Bike

var bikeKeys = []string{"id", "name", "make", "model", "year", "totalMileage", "components", "notes", "createdAt"}

// MarshalJSON encodes the bike followed by any unmodeled fields.
func (b Bike) MarshalJSON() ([]byte, error) {
	if b.Components == nil {
		b.Components = []Component{}
	}
	return joinExtra(bikeJSON(b), b.Extra)
}

// UnmarshalJSON decodes the bike and keeps unmodeled fields.
func (b *Bike) UnmarshalJSON(data []byte) error {
	var v bikeJSON
	extra, err := splitExtra(data, &v, bikeKeys)
	if err != nil {
		return err
	}
	*b = Bike(v)
	b.Extra = extra
	return nil
}

// Describe returns "year make model", skipping empty parts.
func (b *Bike) Describe() string {
	var parts []string
	if b.Year != 0 {
		parts = append(parts, strconv.Itoa(int(b.Year)))
	}
	if b.Make != "" {
		parts = append(parts, b.Make)
	}
	if b.Model != "" {
		parts = append(parts, b.Model)
	}
	return strings.Join(parts, " ")
}

// Component returns the component with the given id.
func (b *Bike) Component(id string) (*Component, bool) {
	for i := range b.Components {
		if b.Components[i].ID == id {
			return &b.Components[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the bike.
func (b Bike) Clone() Bike {
	out := b
	out.Extra = b.Extra.Clone()
	if b.Components != nil {
		out.Components = make([]Component, len(b.Components))
		for i, c := range b.Components {
			out.Components[i] = c.Clone()
		}
	}
	return out
}

// Component is a part installed on a bike.
type Component struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Category         Category `json:"category,omitempty"`
	InstalledDate    Date     `json:"installedDate,omitzero"`
	InstalledMileage float64  `json:"installedMileage"`
	Notes            string   `json:"notes,omitempty"`
	Extra            Extra    `json:"-"`
}

type componentJSON Component

var componentKeys = []string{"id", "name", "category", "installedDate", "installedMileage", "notes"}

// MarshalJSON encodes the component followed by any unmodeled fields.
func (c Component) MarshalJSON() ([]byte, error) {
	return joinExtra(componentJSON(c), c.Extra)
}

// UnmarshalJSON decodes the component. Older documents store the category
// under "type"; it is read as a fallback and kept as an extra field.
func (c *Component) UnmarshalJSON(data []byte) error {
	var v componentJSON
	extra, err := splitExtra(data, &v, componentKeys)
	if err != nil {
		return err
	}
	*c = Component(v)
	c.Extra = extra
	if c.Category == "" {
		if legacy, ok := extra.String("type"); ok {
			c.Category = Category(legacy)
		}
	}
	return nil
}

// MileageOn returns the distance the component has covered on a bike with
// the given total mileage.
func (c *Component) MileageOn(bikeMileage float64) float64 {
	return bikeMileage - c.InstalledMileage
}

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	out := c
	out.Extra = c.Extra.Clone()
	return out
}

// BikeFields are the caller-supplied fields for a new bike. Zero values fall
// back to the defaults: no mileage, no components, created now.
type BikeFields struct {
	Name         string
	Make         string
	Model        string
	Year         Year
	TotalMileage float64
	Components   []Component
	Notes        string
	CreatedAt    Date
	Extra        Extra
}

// BikePatch is a shallow merge onto a bike: every non-nil field replaces the
// bike's value. Extra keys replace the bike's extra keys one by one.
type BikePatch struct {
	Name         *string
	Make         *string
	Model        *string
	Year         *Year
	TotalMileage *float64
	Components   *[]Component
	Notes        *string
	CreatedAt    *Date
	Extra        Extra
}

// Apply merges the patch onto b.
func (p BikePatch) Apply(b *Bike) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Make != nil {
		b.Make = *p.Make
	}
	if p.Model != nil {
		b.Model = *p.Model
	}
	if p.Year != nil {
		b.Year = *p.Year
	}
	if p.TotalMileage != nil {
		b.TotalMileage = *p.TotalMileage
	}
	if p.Components != nil {
		b.Components = make([]Component, len(*p.Components))
		for i, c := range *p.Components {
			b.Components[i] = c.Clone()
		}
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
	if p.CreatedAt != nil {
		b.CreatedAt = *p.CreatedAt
	}
	b.Extra = mergeExtra(b.Extra, p.Extra)
}

// ComponentFields are the caller-supplied fields for a new component.
// A nil InstalledMileage means "the bike's current mileage".
type ComponentFields struct {
	Name             string
	Category         Category
	InstalledDate    Date
	InstalledMileage *float64
	Notes            string
	Extra            Extra
}

// ComponentPatch is a shallow merge onto a component.
type ComponentPatch struct {
	Name             *string
	Category         *Category
	InstalledDate    *Date
	InstalledMileage *float64
	Notes            *string
	Extra            Extra
}

// Apply merges the patch onto c.
func (p ComponentPatch) Apply(c *Component) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.InstalledDate != nil {
		c.InstalledDate = *p.InstalledDate
	}
	if p.InstalledMileage != nil {
		c.InstalledMileage = *p.InstalledMileage
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	c.Extra = mergeExtra(c.Extra, p.Extra)
}

func mergeExtra(dst, src Extra) Extra {
	if len(src) == 0 {
		return dst
	}
	out := dst.Clone()
	if out == nil {
		out = make(Extra, len(src))
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}
