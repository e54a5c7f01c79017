package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const BookingsCollection = "bookings"

// ErrBookingNotFound is returned by stores when an id does not exist.
var ErrBookingNotFound = errors.New("booking not found")

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
)

const DefaultPaymentMethod = "cash"

// Booking is a persisted appointment request. Pointer fields are nil when
// the submitted form did not carry them.
type Booking struct {
	ID              string        `json:"id"`
	Name            *string       `json:"name"`
	Phone           *string       `json:"phone"`
	Email           *string       `json:"email"`
	Style           *string       `json:"style"`
	HairLength      *string       `json:"hairLength"`
	HairOption      *string       `json:"hairOption"`
	AppointmentDate *string       `json:"appointmentDate"`
	AppointmentTime *string       `json:"appointmentTime"`
	Duration        *string       `json:"duration"`
	PreWash         *string       `json:"preWash"`
	Detangling      *string       `json:"detangling"`
	Notes           *string       `json:"notes"`
	TotalPrice      *float64      `json:"totalPrice"`
	DepositAmount   *float64      `json:"depositAmount"`
	DepositPaid     bool          `json:"depositPaid"`
	PaymentMethod   string        `json:"paymentMethod"`
	StyleImage      *string       `json:"styleImage"`
	HairImage       *string       `json:"hairImage"`
	Status          BookingStatus `json:"status"`
	CreatedAt       *time.Time    `json:"createdAt"`

	Rescheduled  bool       `json:"rescheduled,omitempty"`
	OriginalDate *string    `json:"originalDate,omitempty"`
	OriginalTime *string    `json:"originalTime,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// Schedule is the date/time change applied by a reschedule.
type Schedule struct {
	Date         string
	Time         string
	OriginalDate *string
	OriginalTime *string
	UpdatedAt    time.Time
}

// FlexString accepts a JSON string or number and keeps its text form.
// The booking form sends durations either way.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(b))
	}
	*f = FlexString(n.String())
	return nil
}

// Ptr returns nil for a nil receiver, otherwise the string value.
func (f *FlexString) Ptr() *string {
	if f == nil {
		return nil
	}
	s := string(*f)
	return &s
}
