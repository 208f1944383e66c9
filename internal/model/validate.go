package model

import "fmt"

// ValidateEach runs an entity validator over every item and reports the
// index of the first failure.
func ValidateEach[T any](items []T, validate func(*T) error) error {
	for i := range items {
		if err := validate(&items[i]); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}
	return nil
}
