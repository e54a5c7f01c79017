package booking

import (
	"github.com/shopspring/decimal"

	"github.com/MousScales/Momsites/internal/domain"
)

// SaveBookingRequest is the payload posted by the booking success page.
// Every field is optional; Status is accepted but never stored.
type SaveBookingRequest struct {
	Name            *string             `json:"name"`
	Phone           *string             `json:"phone"`
	Email           *string             `json:"email"`
	Style           *string             `json:"style"`
	HairLength      *string             `json:"hairLength"`
	HairOption      *string             `json:"hairOption"`
	Date            *string             `json:"date"`
	Time            *string             `json:"time"`
	AppointmentTime *string             `json:"appointmentTime"`
	Duration        *domain.FlexString  `json:"duration"`
	PreWash         *string             `json:"preWash"`
	Detangling      *string             `json:"detangling"`
	Notes           *string             `json:"notes"`
	TotalPrice      decimal.NullDecimal `json:"totalPrice"`
	DepositAmount   decimal.NullDecimal `json:"depositAmount"`
	DepositPaid     *bool               `json:"depositPaid"`
	PaymentMethod   *string             `json:"paymentMethod"`
	StyleImage      *string             `json:"styleImage"`
	HairImage       *string             `json:"hairImage"`
	Status          *string             `json:"status"`
}

type SaveBookingResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	BookingID string `json:"bookingId"`
	Message   string `json:"message"`
}

type RescheduleRequest struct {
	BookingID    string  `json:"bookingId" validate:"required"`
	NewDate      string  `json:"newDate" validate:"required"`
	NewTime      string  `json:"newTime" validate:"required"`
	OriginalDate *string `json:"originalDate"`
	OriginalTime *string `json:"originalTime"`
}

type RescheduleResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
	NewDate   string `json:"newDate"`
	NewTime   string `json:"newTime"`
}

// BookingView is a stored booking as sent to the booking pages, which
// address bookings by bookingId.
type BookingView struct {
	domain.Booking
	BookingID string `json:"bookingId"`
}

func toViews(bookings []domain.Booking) []BookingView {
	out := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingView{Booking: b, BookingID: b.ID})
	}
	return out
}

type SearchResponse struct {
	Success  bool          `json:"success"`
	Bookings []BookingView `json:"bookings"`
	Count    int           `json:"count"`
}
