package events

import (
	"context"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// LogPublisher пишет события в лог, используется когда брокер выключен
type LogPublisher struct {
	logger Logger
}

func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.BookingEvent) error {
	p.logger.Info("event %s: booking=%s car=%s customer=%s %s -> %s",
		event.Type, event.BookingID, event.CarID, event.CustomerID, event.From, event.To)
	return nil
}
