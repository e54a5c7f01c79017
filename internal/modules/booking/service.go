package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MousScales/Momsites/internal/domain"
	"github.com/MousScales/Momsites/internal/pkg/validator"
)

var appointmentLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 3:04 PM",
	"2006-01-02 3:04PM",
}

type Service struct {
	store    Store
	events   EventPublisher
	calendar CalendarSync
	window   time.Duration
	now      func() time.Time
	loggerf  func(format string, args ...interface{})
}

// NewService builds the booking service. A nil store means the document
// database is not configured; events may be nil.
func NewService(store Store, events EventPublisher, rescheduleWindow time.Duration, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		store:   store,
		events:  events,
		window:  rescheduleWindow,
		now:     time.Now,
		loggerf: loggerf,
	}
}

// WithCalendar mirrors reschedules into the salon calendar.
func (s *Service) WithCalendar(c CalendarSync) *Service {
	s.calendar = c
	return s
}

func (s *Service) notConfigured() error {
	return domain.NotConfigured("Database is not configured.")
}

// SaveBooking stores a new pending booking and returns its id.
func (s *Service) SaveBooking(ctx context.Context, req SaveBookingRequest) (string, error) {
	if s.store == nil {
		return "", s.notConfigured()
	}

	b := toBooking(req)
	id, err := s.store.Create(ctx, &b)
	if err != nil {
		s.loggerf("level=error msg=save booking failed err=%v", err)
		return "", domain.UpstreamMsg("An error occurred while saving the booking: "+err.Error(), err)
	}
	b.ID = id
	s.loggerf("level=info msg=booking saved booking_id=%s date=%s", id, deref(b.AppointmentDate))

	if s.events != nil {
		if err := s.events.PublishBookingCreated(ctx, b); err != nil {
			s.loggerf("level=error msg=booking event publish failed booking_id=%s err=%v", id, err)
		}
	}
	return id, nil
}

// GetBookingsForDate returns every booking whose appointment date equals
// date. Order is whatever the store returns.
func (s *Service) GetBookingsForDate(ctx context.Context, date string) ([]domain.Booking, error) {
	if s.store == nil {
		return nil, s.notConfigured()
	}
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, domain.MissingParameter("Date parameter is required")
	}

	out, err := s.store.FindByDate(ctx, date)
	if err != nil {
		s.loggerf("level=error msg=fetch bookings for date failed date=%s err=%v", date, err)
		return nil, domain.UpstreamMsg("An error occurred: "+err.Error(), err)
	}
	return nonNil(out), nil
}

// SearchBookingsByPhone matches bookings whose phone starts with the
// digits of phone.
func (s *Service) SearchBookingsByPhone(ctx context.Context, phone string) ([]domain.Booking, error) {
	if s.store == nil {
		return nil, s.notConfigured()
	}
	digits := digitsOnly(phone)
	if digits == "" {
		return nil, domain.MissingParameter("Phone number is required")
	}

	out, err := s.store.FindByPhonePrefix(ctx, digits)
	if err != nil {
		s.loggerf("level=error msg=search bookings by phone failed err=%v", err)
		return nil, domain.UpstreamMsg("An error occurred while searching bookings: "+err.Error(), err)
	}
	s.loggerf("level=info msg=phone search count=%d", len(out))
	return nonNil(out), nil
}

// ListBookings returns bookings with status, or all bookings when status
// is empty.
func (s *Service) ListBookings(ctx context.Context, status string) ([]domain.Booking, error) {
	if s.store == nil {
		return nil, s.notConfigured()
	}
	out, err := s.store.FindByStatus(ctx, strings.ToLower(strings.TrimSpace(status)))
	if err != nil {
		return nil, domain.UpstreamMsg("An error occurred while listing bookings: "+err.Error(), err)
	}
	return nonNil(out), nil
}

// RescheduleBooking moves a booking to a new date and time unless its
// current slot is within the reschedule window.
func (s *Service) RescheduleBooking(ctx context.Context, req RescheduleRequest) (*RescheduleResponse, error) {
	if s.store == nil {
		return nil, s.notConfigured()
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, domain.MissingParameter("Missing required fields: " + strings.Join(validator.Fields(errs), ", "))
	}

	current, err := s.store.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, domain.NotFound("Booking")
		}
		return nil, domain.UpstreamMsg("An error occurred while updating booking: "+err.Error(), err)
	}

	// The stored slot is authoritative; the client copy only fills gaps
	// left by bookings saved without a date or time.
	origDate, origTime := current.AppointmentDate, current.AppointmentTime
	if origDate == nil {
		origDate = req.OriginalDate
	}
	if origTime == nil {
		origTime = req.OriginalTime
	}

	now := s.now()
	if at, ok := parseAppointment(deref(origDate), deref(origTime)); ok && at.Sub(now) <= s.window {
		return nil, domain.InvalidRequest(fmt.Sprintf(
			"Rescheduling is not available within %d hours of your appointment.", int(s.window.Hours())), nil)
	}

	sched := domain.Schedule{
		Date:         req.NewDate,
		Time:         req.NewTime,
		OriginalDate: origDate,
		OriginalTime: origTime,
		UpdatedAt:    now.UTC(),
	}
	if err := s.store.UpdateSchedule(ctx, req.BookingID, sched); err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return nil, domain.NotFound("Booking")
		}
		s.loggerf("level=error msg=reschedule failed booking_id=%s err=%v", req.BookingID, err)
		return nil, domain.UpstreamMsg("An error occurred while updating booking: "+err.Error(), err)
	}
	s.loggerf("level=info msg=booking rescheduled booking_id=%s from=%s %s to=%s %s",
		req.BookingID, deref(origDate), deref(origTime), req.NewDate, req.NewTime)

	if s.calendar != nil {
		updated := *current
		updated.ID = req.BookingID
		updated.AppointmentDate = &sched.Date
		updated.AppointmentTime = &sched.Time
		updated.Rescheduled = true
		updated.OriginalDate = origDate
		updated.OriginalTime = origTime
		updated.UpdatedAt = &sched.UpdatedAt
		if err := s.calendar.QueueResync(updated); err != nil {
			s.loggerf("level=error msg=calendar resync not queued booking_id=%s err=%v", req.BookingID, err)
		}
	}

	return &RescheduleResponse{
		Success:   true,
		Message:   "Booking updated successfully",
		BookingID: req.BookingID,
		NewDate:   req.NewDate,
		NewTime:   req.NewTime,
	}, nil
}

func toBooking(req SaveBookingRequest) domain.Booking {
	apptTime := req.Time
	if apptTime == nil {
		apptTime = req.AppointmentTime
	}
	paymentMethod := domain.DefaultPaymentMethod
	if req.PaymentMethod != nil && *req.PaymentMethod != "" {
		paymentMethod = *req.PaymentMethod
	}
	depositPaid := false
	if req.DepositPaid != nil {
		depositPaid = *req.DepositPaid
	}

	return domain.Booking{
		Name:            req.Name,
		Phone:           req.Phone,
		Email:           req.Email,
		Style:           req.Style,
		HairLength:      req.HairLength,
		HairOption:      req.HairOption,
		AppointmentDate: req.Date,
		AppointmentTime: apptTime,
		Duration:        req.Duration.Ptr(),
		PreWash:         req.PreWash,
		Detangling:      req.Detangling,
		Notes:           req.Notes,
		TotalPrice:      floatPtr(req.TotalPrice),
		DepositAmount:   floatPtr(req.DepositAmount),
		DepositPaid:     depositPaid,
		PaymentMethod:   paymentMethod,
		StyleImage:      req.StyleImage,
		HairImage:       req.HairImage,
		Status:          domain.BookingPending,
	}
}

func parseAppointment(date, clock string) (time.Time, bool) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return time.Time{}, false
	}
	for _, layout := range appointmentLayouts {
		if t, err := time.ParseInLocation(layout, date+" "+clock, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func floatPtr(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonNil(b []domain.Booking) []domain.Booking {
	if b == nil {
		return []domain.Booking{}
	}
	return b
}
