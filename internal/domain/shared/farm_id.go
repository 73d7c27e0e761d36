package shared

import "fmt"

// FarmID is a value object representing a farm's unique identifier
type FarmID struct {
	value int
}

// NewFarmID creates a new FarmID value object
func NewFarmID(id int) (FarmID, error) {
	if id <= 0 {
		return FarmID{}, fmt.Errorf("farm_id must be positive")
	}
	return FarmID{value: id}, nil
}

// MustNewFarmID creates a new FarmID value object, panicking if invalid.
// Use this only when the ID is known to be valid (e.g., loaded from the database).
func MustNewFarmID(id int) FarmID {
	farmID, err := NewFarmID(id)
	if err != nil {
		panic(err)
	}
	return farmID
}

// Value returns the integer value of the FarmID
func (f FarmID) Value() int {
	return f.value
}

// String returns a string representation of the FarmID
func (f FarmID) String() string {
	return fmt.Sprintf("%d", f.value)
}

// Equals checks if two FarmIDs are equal
func (f FarmID) Equals(other FarmID) bool {
	return f.value == other.value
}

// IsZero checks if the FarmID is the zero value (uninitialized)
func (f FarmID) IsZero() bool {
	return f.value == 0
}
