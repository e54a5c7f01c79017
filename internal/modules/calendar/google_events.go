package calendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const lookupLimit = 10

// GoogleEvents stores events in one Google Calendar.
type GoogleEvents struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleEvents authenticates with the service-account JSON in
// credentialsJSON, or with credentialsFile when that is empty.
func NewGoogleEvents(ctx context.Context, calendarID, credentialsJSON, credentialsFile string, extra ...option.ClientOption) (*GoogleEvents, error) {
	if calendarID == "" {
		return nil, errors.New("calendar id is empty")
	}
	opts := []option.ClientOption{option.WithScopes(gcal.CalendarScope)}
	switch {
	case credentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	case credentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, extra...)

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar client: %w", err)
	}
	return &GoogleEvents{svc: svc, calendarID: calendarID}, nil
}

func (g *GoogleEvents) FindByBookingID(ctx context.Context, bookingID string) ([]*gcal.Event, error) {
	res, err := g.svc.Events.List(g.calendarID).
		PrivateExtendedProperty("bookingId=" + bookingID).
		MaxResults(lookupLimit).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (g *GoogleEvents) Insert(ctx context.Context, ev *gcal.Event) (*gcal.Event, error) {
	return g.svc.Events.Insert(g.calendarID, ev).Context(ctx).Do()
}

func (g *GoogleEvents) Delete(ctx context.Context, eventID string) error {
	err := g.svc.Events.Delete(g.calendarID, eventID).Context(ctx).Do()
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == http.StatusGone || gerr.Code == http.StatusNotFound) {
		return nil
	}
	return err
}
