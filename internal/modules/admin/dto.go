package admin

import (
	"time"

	"github.com/MousScales/Momsites/internal/domain"
)

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type BookingListResponse struct {
	Bookings []domain.Booking `json:"bookings"`
	Count    int              `json:"count"`
	Status   string           `json:"status,omitempty"`
}
