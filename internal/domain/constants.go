package domain

// Business validation constants
const (
	MaxCancellationReasonLength = 500
	MaxLocationLength           = 255
	MaxRuleNameLength           = 255
	MaxPercentage               = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllStatuses все статусы бронирования, используется для статистики
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}
