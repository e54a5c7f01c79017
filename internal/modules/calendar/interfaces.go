package calendar

import (
	"context"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/MousScales/Momsites/internal/domain"
)

// EventStore is the part of the calendar provider the sync uses.
type EventStore interface {
	// FindByBookingID lists events tagged with the booking id.
	FindByBookingID(ctx context.Context, bookingID string) ([]*gcal.Event, error)
	Insert(ctx context.Context, ev *gcal.Event) (*gcal.Event, error)
	// Delete treats an already removed event as deleted.
	Delete(ctx context.Context, eventID string) error
}

type BookingLister interface {
	ListBookings(ctx context.Context, status string) ([]domain.Booking, error)
}
