// ABOUTME: Maintenance category enum shared by components, guides and logs.
// ABOUTME: Five fixed categories: drivetrain, brakes, suspension, wheels, frame.
package models

// Category groups components and maintenance tasks.
type Category string

const (
	CategoryDrivetrain Category = "drivetrain"
	CategoryBrakes     Category = "brakes"
	CategorySuspension Category = "suspension"
	CategoryWheels     Category = "wheels"
	CategoryFrame      Category = "frame"
)

// AllCategories lists the categories in display order.
var AllCategories = []Category{
	CategoryDrivetrain, CategoryBrakes, CategorySuspension, CategoryWheels, CategoryFrame,
}

// CategoryNames maps categories to their display names.
var CategoryNames = map[Category]string{
	CategoryDrivetrain: "Drivetrain",
	CategoryBrakes:     "Brakes",
	CategorySuspension: "Suspension",
	CategoryWheels:     "Wheels",
	CategoryFrame:      "Frame & General",
}

// IsValidCategory checks if a string is a known category.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories {
		if string(c) == s {
			return true
		}
	}
	return false
}

// DisplayName returns the human label, falling back to the raw value.
func (c Category) DisplayName() string {
	if name, ok := CategoryNames[c]; ok {
		return name
	}
	return string(c)
}
