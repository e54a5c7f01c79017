package calendar

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	gcal "google.golang.org/api/calendar/v3"

	"github.com/MousScales/Momsites/internal/domain"
	"github.com/MousScales/Momsites/internal/pkg/worker"
)

const (
	eventSource     = "momsites-booking"
	defaultDuration = 2 * time.Hour

	colorConfirmed = "10"
	colorPending   = "11"

	resyncBuffer  = 32
	resyncTimeout = 30 * time.Second
)

var slotLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 3:04 PM",
	"2006-01-02 3:04PM",
}

type Service struct {
	events   EventStore
	bookings BookingLister
	loc      *time.Location
	queue    *worker.Queue[domain.Booking]
	loggerf  func(format string, args ...interface{})
}

// NewService builds the calendar sync. A nil events store means the
// calendar is not configured. Appointment slots are read in loc.
func NewService(events EventStore, bookings BookingLister, loc *time.Location, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	if loc == nil {
		loc = time.Local
	}
	s := &Service{events: events, bookings: bookings, loc: loc, loggerf: loggerf}
	if events != nil {
		s.queue = worker.New(resyncBuffer, resyncTimeout, s.resyncJob)
	}
	return s
}

func (s *Service) notConfigured() error {
	return domain.NotConfigured("Google Calendar not configured")
}

// SyncBooking creates the calendar event for b unless one tagged with its
// id already exists.
func (s *Service) SyncBooking(ctx context.Context, b domain.Booking) (*SyncResponse, error) {
	if s.events == nil {
		return nil, s.notConfigured()
	}
	ev, err := BuildEvent(b, s.loc)
	if err != nil {
		return nil, err
	}

	if b.ID != "" {
		existing, err := s.events.FindByBookingID(ctx, b.ID)
		if err != nil {
			return nil, syncError(err)
		}
		if len(existing) > 0 {
			s.loggerf("level=info msg=calendar event exists booking_id=%s event_id=%s", b.ID, existing[0].Id)
			return &SyncResponse{
				Success:   true,
				EventID:   existing[0].Id,
				EventLink: existing[0].HtmlLink,
				Message:   "Event already exists in Google Calendar",
			}, nil
		}
	}

	created, err := s.events.Insert(ctx, ev)
	if err != nil {
		s.loggerf("level=error msg=calendar insert failed booking_id=%s err=%v", b.ID, err)
		return nil, syncError(err)
	}
	s.loggerf("level=info msg=calendar event created booking_id=%s event_id=%s", b.ID, created.Id)
	return &SyncResponse{
		Success:   true,
		EventID:   created.Id,
		EventLink: created.HtmlLink,
		Message:   "Event created successfully in Google Calendar",
	}, nil
}

// RemoveBooking deletes every event tagged with bookingID.
func (s *Service) RemoveBooking(ctx context.Context, bookingID string) error {
	if s.events == nil {
		return s.notConfigured()
	}
	existing, err := s.events.FindByBookingID(ctx, bookingID)
	if err != nil {
		return syncError(err)
	}
	var firstErr error
	for _, ev := range existing {
		if err := s.events.Delete(ctx, ev.Id); err != nil {
			s.loggerf("level=error msg=calendar delete failed booking_id=%s event_id=%s err=%v", bookingID, ev.Id, err)
			if firstErr == nil {
				firstErr = syncError(err)
			}
		}
	}
	return firstErr
}

// ResyncBooking replaces the events of b with one for its current slot.
func (s *Service) ResyncBooking(ctx context.Context, b domain.Booking) error {
	if err := s.RemoveBooking(ctx, b.ID); err != nil {
		return err
	}
	_, err := s.SyncBooking(ctx, b)
	return err
}

// QueueResync schedules ResyncBooking in the background.
func (s *Service) QueueResync(b domain.Booking) error {
	if s.queue == nil {
		return s.notConfigured()
	}
	return s.queue.Enqueue(b)
}

func (s *Service) resyncJob(ctx context.Context, b domain.Booking) {
	if err := s.ResyncBooking(ctx, b); err != nil {
		s.loggerf("level=error msg=calendar resync failed booking_id=%s err=%v", b.ID, err)
	}
}

// SyncAll creates missing events for every stored booking. Bookings
// without a date or time are skipped; per-booking failures are counted,
// not returned.
func (s *Service) SyncAll(ctx context.Context) (*SyncAllResponse, error) {
	if s.events == nil {
		return nil, s.notConfigured()
	}
	if s.bookings == nil {
		return nil, domain.NotConfigured("Database is not configured.")
	}
	all, err := s.bookings.ListBookings(ctx, "")
	if err != nil {
		return nil, err
	}

	resp := &SyncAllResponse{Success: true, TotalBookings: len(all)}
	for _, b := range all {
		if strings.TrimSpace(deref(b.AppointmentDate)) == "" || strings.TrimSpace(deref(b.AppointmentTime)) == "" {
			resp.SkippedCount++
			continue
		}
		if _, err := s.SyncBooking(ctx, b); err != nil {
			s.loggerf("level=error msg=calendar sync failed booking_id=%s err=%v", b.ID, err)
			resp.ErrorCount++
			continue
		}
		resp.SuccessCount++
	}
	resp.Message = fmt.Sprintf("Successfully synced %d bookings to Google Calendar", resp.SuccessCount)
	s.loggerf("level=info msg=calendar sync complete total=%d synced=%d skipped=%d errors=%d",
		resp.TotalBookings, resp.SuccessCount, resp.SkippedCount, resp.ErrorCount)
	return resp, nil
}

// Close waits for queued resyncs, bounded by ctx.
func (s *Service) Close(ctx context.Context) error {
	if s.queue == nil {
		return nil
	}
	return s.queue.Close(ctx)
}

// BuildEvent renders b as a calendar event starting at its slot in loc.
// Duration is read as whole hours and defaults to two.
func BuildEvent(b domain.Booking, loc *time.Location) (*gcal.Event, error) {
	date, clock := strings.TrimSpace(deref(b.AppointmentDate)), strings.TrimSpace(deref(b.AppointmentTime))
	if date == "" || clock == "" {
		return nil, domain.MissingParameter("Missing appointment date or time")
	}
	start, ok := parseSlot(date, clock, loc)
	if !ok {
		return nil, domain.InvalidRequest("Invalid date/time format", nil)
	}
	end := start.Add(bookingDuration(b.Duration))

	private := map[string]string{"source": eventSource}
	if b.ID != "" {
		private["bookingId"] = b.ID
	}
	color := colorPending
	if b.Status == domain.BookingConfirmed {
		color = colorConfirmed
	}

	return &gcal.Event{
		Summary:     deref(b.Name) + " - " + deref(b.Style),
		Description: describe(b),
		Start:       &gcal.EventDateTime{DateTime: start.Format(time.RFC3339), TimeZone: loc.String()},
		End:         &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: loc.String()},
		ColorId:     color,
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: private,
		},
	}, nil
}

func describe(b domain.Booking) string {
	var sb strings.Builder
	sb.WriteString("CLIENT INFORMATION\n")
	fmt.Fprintf(&sb, "Name: %s\nPhone: %s\n\n", deref(b.Name), deref(b.Phone))

	sb.WriteString("STYLE DETAILS\n")
	fmt.Fprintf(&sb, "Style: %s\n", deref(b.Style))
	if b.HairLength != nil && *b.HairLength != "" {
		fmt.Fprintf(&sb, "Hair Length: %s\n", *b.HairLength)
	}
	sb.WriteString("\n")

	total, deposit := money(b.TotalPrice), money(b.DepositAmount)
	sb.WriteString("PRICING INFORMATION\n")
	fmt.Fprintf(&sb, "Total Price: $%s\nDeposit Paid: $%s\nRemaining Balance: $%s\n\n",
		total.StringFixed(2), deposit.StringFixed(2), total.Sub(deposit).StringFixed(2))

	sb.WriteString("ADDITIONAL NOTES\n")
	if b.Notes != nil && strings.TrimSpace(*b.Notes) != "" {
		sb.WriteString(*b.Notes)
	} else {
		sb.WriteString("None")
	}
	return sb.String()
}

func parseSlot(date, clock string, loc *time.Location) (time.Time, bool) {
	for _, layout := range slotLayouts {
		if t, err := time.ParseInLocation(layout, date+" "+clock, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// bookingDuration reads the leading whole number of hours, so "4" and
// "4 hours" both give four hours.
func bookingDuration(d *string) time.Duration {
	if d == nil {
		return defaultDuration
	}
	v := strings.TrimSpace(*d)
	end := 0
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil || n <= 0 {
		return defaultDuration
	}
	return time.Duration(n) * time.Hour
}

func money(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func syncError(err error) error {
	return domain.UpstreamMsg("An error occurred while syncing to Google Calendar: "+err.Error(), err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
