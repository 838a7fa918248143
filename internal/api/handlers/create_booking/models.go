package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	createBooking "github.com/m04kA/SMC-CarRentalService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CarID      string `json:"carId"`
	CustomerID string `json:"customerId"`
	PickupDate string `json:"pickupDate"` // "2025-10-15"
	ReturnDate string `json:"returnDate"` // "2025-10-18"
	Location   string `json:"location"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string          `json:"id"`
	CarID       string          `json:"carId"`
	CustomerID  string          `json:"customerId"`
	PickupDate  string          `json:"pickupDate"`
	ReturnDate  string          `json:"returnDate"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Status      string          `json:"status"`
	Location    string          `json:"location"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	pickup, err := handlers.ParseDate(r.PickupDate)
	if err != nil {
		return nil, err
	}

	ret, err := handlers.ParseDate(r.ReturnDate)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CarID:      r.CarID,
		CustomerID: r.CustomerID,
		PickupDate: pickup,
		ReturnDate: ret,
		Location:   r.Location,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		CarID:       resp.CarID,
		CustomerID:  resp.CustomerID,
		PickupDate:  resp.PickupDate.Format(domain.DateFormat),
		ReturnDate:  resp.ReturnDate.Format(domain.DateFormat),
		TotalAmount: resp.TotalAmount,
		Status:      resp.Status,
		Location:    resp.Location,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
