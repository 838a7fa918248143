package check_availability

import (
	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-CarRentalService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CarID      string   `json:"carId"`
	PickupDate string   `json:"pickupDate"`
	ReturnDate string   `json:"returnDate"`
	Available  bool     `json:"available"`
	Conflicts  []string `json:"conflicts"`
}

// ToUseCaseRequest разбирает query параметры pickupDate и returnDate
func ToUseCaseRequest(carID, pickupStr, returnStr string) (*checkAvailability.Request, error) {
	pickup, err := handlers.ParseDate(pickupStr)
	if err != nil {
		return nil, err
	}
	ret, err := handlers.ParseDate(returnStr)
	if err != nil {
		return nil, err
	}
	return &checkAvailability.Request{CarID: carID, PickupDate: pickup, ReturnDate: ret}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		CarID:      resp.CarID,
		PickupDate: resp.PickupDate.Format(domain.DateFormat),
		ReturnDate: resp.ReturnDate.Format(domain.DateFormat),
		Available:  resp.Available,
		Conflicts:  resp.Conflicts,
	}
}
