package create_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	req.CarID = strings.TrimSpace(req.CarID)
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.Location = strings.TrimSpace(req.Location)

	if req.CarID == "" {
		return fmt.Errorf("%w: carID is required", ErrInvalidInput)
	}

	if req.CustomerID == "" {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}

	if req.Location == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidInput)
	}

	if len(req.Location) > domain.MaxLocationLength {
		return fmt.Errorf("%w: location must not exceed %d characters", ErrInvalidInput, domain.MaxLocationLength)
	}

	if req.PickupDate.IsZero() || req.ReturnDate.IsZero() {
		return fmt.Errorf("%w: pickup and return dates are required", ErrInvalidDateRange)
	}

	// Период полуоткрытый, поэтому пустой период невалиден
	if !req.ReturnDate.After(req.PickupDate) {
		return fmt.Errorf("%w: return date must be after pickup date", ErrInvalidDateRange)
	}

	return nil
}
