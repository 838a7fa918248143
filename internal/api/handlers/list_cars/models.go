package list_cars

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
	"github.com/m04kA/SMC-CarRentalService/internal/service/fleet/models"
)

// ToDomainFilter формирует фильтр из query параметров: category, status, location, minSeats, maxDailyRate
func ToDomainFilter(query url.Values) (domain.CarsFilter, error) {
	var filter domain.CarsFilter

	if v := query.Get("category"); v != "" {
		category, err := models.ToDomainCategory(v)
		if err != nil {
			return filter, fmt.Errorf("%w: %q", err, v)
		}
		filter.Category = &category
	}

	if v := query.Get("status"); v != "" {
		status, err := models.ToDomainCarStatus(v)
		if err != nil {
			return filter, fmt.Errorf("%w: %q", err, v)
		}
		filter.Status = &status
	}

	if v := query.Get("location"); v != "" {
		filter.Location = &v
	}

	if v := query.Get("minSeats"); v != "" {
		seats, err := strconv.Atoi(v)
		if err != nil {
			return filter, fmt.Errorf("invalid minSeats: %w", err)
		}
		filter.MinSeats = &seats
	}

	if v := query.Get("maxDailyRate"); v != "" {
		rate, err := decimal.NewFromString(v)
		if err != nil {
			return filter, fmt.Errorf("invalid maxDailyRate: %w", err)
		}
		filter.MaxDailyRate = &rate
	}

	return filter, nil
}
