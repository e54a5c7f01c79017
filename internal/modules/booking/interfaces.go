package booking

import (
	"context"

	"github.com/MousScales/Momsites/internal/domain"
)

// Store persists bookings in the document database.
type Store interface {
	// Create inserts b and returns the store-assigned id. The store sets
	// the creation timestamp itself.
	Create(ctx context.Context, b *domain.Booking) (string, error)
	FindByDate(ctx context.Context, date string) ([]domain.Booking, error)
	FindByPhonePrefix(ctx context.Context, prefix string) ([]domain.Booking, error)
	// FindByStatus lists bookings with the given status, or all of them
	// when status is empty.
	FindByStatus(ctx context.Context, status string) ([]domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error
}

// EventPublisher announces saved bookings to downstream consumers.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, b domain.Booking) error
}

// CalendarSync replaces the calendar entry of a rescheduled booking. It
// must not block on the calendar provider.
type CalendarSync interface {
	QueueResync(b domain.Booking) error
}
