package admin

import (
	"context"

	"github.com/MousScales/Momsites/internal/domain"
)

type BookingLister interface {
	ListBookings(ctx context.Context, status string) ([]domain.Booking, error)
}

type TokenIssuer interface {
	GenerateToken(subject, role string) (string, error)
}
