package calendar

import (
	"github.com/shopspring/decimal"

	"github.com/MousScales/Momsites/internal/domain"
)

// SyncRequest is the booking as posted by the booking success page. The
// page sends either appointmentDate/appointmentTime or date/time.
type SyncRequest struct {
	BookingID       *string             `json:"bookingId"`
	Name            *string             `json:"name"`
	Phone           *string             `json:"phone"`
	Style           *string             `json:"style"`
	HairLength      *string             `json:"hairLength"`
	AppointmentDate *string             `json:"appointmentDate"`
	Date            *string             `json:"date"`
	AppointmentTime *string             `json:"appointmentTime"`
	Time            *string             `json:"time"`
	Duration        *domain.FlexString  `json:"duration"`
	Notes           *string             `json:"notes"`
	TotalPrice      decimal.NullDecimal `json:"totalPrice"`
	DepositAmount   decimal.NullDecimal `json:"depositAmount"`
	Status          *string             `json:"status"`
}

func (r SyncRequest) empty() bool {
	return r == SyncRequest{}
}

func (r SyncRequest) toBooking() domain.Booking {
	b := domain.Booking{
		Name:            r.Name,
		Phone:           r.Phone,
		Style:           r.Style,
		HairLength:      r.HairLength,
		AppointmentDate: firstSet(r.AppointmentDate, r.Date),
		AppointmentTime: firstSet(r.AppointmentTime, r.Time),
		Duration:        r.Duration.Ptr(),
		Notes:           r.Notes,
		TotalPrice:      floatPtr(r.TotalPrice),
		DepositAmount:   floatPtr(r.DepositAmount),
		Status:          domain.BookingPending,
	}
	if r.BookingID != nil {
		b.ID = *r.BookingID
	}
	if r.Status != nil && *r.Status != "" {
		b.Status = domain.BookingStatus(*r.Status)
	}
	return b
}

type SyncResponse struct {
	Success   bool   `json:"success"`
	EventID   string `json:"eventId"`
	EventLink string `json:"eventLink,omitempty"`
	Message   string `json:"message"`
}

type SyncAllResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TotalBookings int    `json:"totalBookings"`
	SuccessCount  int    `json:"successCount"`
	SkippedCount  int    `json:"skippedCount"`
	ErrorCount    int    `json:"errorCount"`
}

func firstSet(a, b *string) *string {
	if a != nil && *a != "" {
		return a
	}
	return b
}

func floatPtr(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
