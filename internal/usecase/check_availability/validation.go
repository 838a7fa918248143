package check_availability

import (
	"fmt"
	"time"
)

// validateRange период должен быть непустым: return > pickup
func validateRange(pickup, ret time.Time) error {
	if pickup.IsZero() || ret.IsZero() {
		return fmt.Errorf("%w: pickup and return dates are required", ErrInvalidDateRange)
	}
	if !ret.After(pickup) {
		return fmt.Errorf("%w: return date must be after pickup date", ErrInvalidDateRange)
	}
	return nil
}
