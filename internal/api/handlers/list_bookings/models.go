package list_bookings

import (
	"net/url"

	"github.com/m04kA/SMC-CarRentalService/internal/api/handlers"
	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/service/bookings/models"
)

// ToDomainFilter формирует фильтр из query параметров: carId, customerId, status, from, to
// status принимает список через запятую
func ToDomainFilter(query url.Values) (domain.BookingsFilter, error) {
	var filter domain.BookingsFilter

	if v := query.Get("carId"); v != "" {
		filter.CarID = &v
	}

	if v := query.Get("customerId"); v != "" {
		filter.CustomerID = &v
	}

	statuses, err := models.ToDomainBookingStatuses(query.Get("status"))
	if err != nil {
		return filter, err
	}
	filter.Statuses = statuses

	if filter.From, err = handlers.ParseOptionalDate(query.Get("from")); err != nil {
		return filter, err
	}

	if filter.To, err = handlers.ParseOptionalDate(query.Get("to")); err != nil {
		return filter, err
	}

	return filter, nil
}
