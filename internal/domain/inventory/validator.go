// internal/domain/inventory/validator.go
package inventory

import (
	"errors"
	"fmt"
)

// ErrStockShortage is matched by every ShortageError
var ErrStockShortage = errors.New("insufficient stock")

// ShortageError reports a requested quantity that exceeds what is on hand
type ShortageError struct {
	Product   string
	Requested int
	Available int
}

func (e *ShortageError) Error() string {
	if e.Product != "" {
		return fmt.Sprintf("Not enough '%s' in stock: requested %d, only %d available", e.Product, e.Requested, e.Available)
	}
	return fmt.Sprintf("Not enough stock: requested %d, only %d available", e.Requested, e.Available)
}

// Is lets errors.Is match ErrStockShortage
func (e *ShortageError) Is(target error) bool {
	return target == ErrStockShortage
}

// CheckSufficient fails with a *ShortageError when requested exceeds available.
// Callers route quantities <= 0 to removal instead of validating them.
func CheckSufficient(requested, available int) error {
	if requested > available {
		return &ShortageError{Requested: requested, Available: available}
	}
	return nil
}
