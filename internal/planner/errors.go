package planner

import (
	"errors"
	"fmt"
)

// ErrEmptyCatalog is matched by errors.Is for every *EmptyCatalogError.
var ErrEmptyCatalog = errors.New("no active ingredients in catalog")

// ValidationError reports bad input that is rejected before any search runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErrorf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InfeasibleSlotError reports a slot that cannot be composed from the filtered
// catalog. Role is empty when the failure is not tied to a single role.
type InfeasibleSlotError struct {
	Day    int
	Slot   MealType
	Role   Role
	Reason string
}

func (e *InfeasibleSlotError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("day %d %s: role %s cannot be satisfied: %s", e.Day, e.Slot, e.Role, e.Reason)
	}
	return fmt.Sprintf("day %d %s: slot cannot be composed: %s", e.Day, e.Slot, e.Reason)
}

// EmptyCatalogError means the catalog adapter supplied no active ingredients.
// It points at a seeding problem upstream rather than at the request.
type EmptyCatalogError struct {
	Total int
}

func (e *EmptyCatalogError) Error() string {
	if e.Total == 0 {
		return ErrEmptyCatalog.Error()
	}
	return fmt.Sprintf("%s (%d inactive)", ErrEmptyCatalog.Error(), e.Total)
}

func (e *EmptyCatalogError) Is(target error) bool {
	return target == ErrEmptyCatalog
}
