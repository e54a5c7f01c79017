package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MousScales/Momsites/internal/domain"
)

// FirestoreBookingRepository stores bookings as documents of the
// "bookings" collection with auto-generated ids.
type FirestoreBookingRepository struct {
	col *firestore.CollectionRef
}

func NewFirestoreBookingRepository(client *firestore.Client) *FirestoreBookingRepository {
	return &FirestoreBookingRepository{col: client.Collection(domain.BookingsCollection)}
}

type firestoreBooking struct {
	Name            *string    `firestore:"name"`
	Phone           *string    `firestore:"phone"`
	Email           *string    `firestore:"email"`
	Style           *string    `firestore:"style"`
	HairLength      *string    `firestore:"hairLength"`
	HairOption      *string    `firestore:"hairOption"`
	AppointmentDate *string    `firestore:"appointmentDate"`
	AppointmentTime *string    `firestore:"appointmentTime"`
	Duration        *string    `firestore:"duration"`
	PreWash         *string    `firestore:"preWash"`
	Detangling      *string    `firestore:"detangling"`
	Notes           *string    `firestore:"notes"`
	TotalPrice      *float64   `firestore:"totalPrice"`
	DepositAmount   *float64   `firestore:"depositAmount"`
	DepositPaid     bool       `firestore:"depositPaid"`
	PaymentMethod   string     `firestore:"paymentMethod"`
	StyleImage      *string    `firestore:"styleImage"`
	HairImage       *string    `firestore:"hairImage"`
	Status          string     `firestore:"status"`
	CreatedAt       time.Time  `firestore:"createdAt,serverTimestamp"`
	Rescheduled     bool       `firestore:"rescheduled,omitempty"`
	OriginalDate    *string    `firestore:"originalDate,omitempty"`
	OriginalTime    *string    `firestore:"originalTime,omitempty"`
	UpdatedAt       *time.Time `firestore:"updatedAt,omitempty"`
}

func toFirestoreBooking(b *domain.Booking) firestoreBooking {
	return firestoreBooking{
		Name:            b.Name,
		Phone:           b.Phone,
		Email:           b.Email,
		Style:           b.Style,
		HairLength:      b.HairLength,
		HairOption:      b.HairOption,
		AppointmentDate: b.AppointmentDate,
		AppointmentTime: b.AppointmentTime,
		Duration:        b.Duration,
		PreWash:         b.PreWash,
		Detangling:      b.Detangling,
		Notes:           b.Notes,
		TotalPrice:      b.TotalPrice,
		DepositAmount:   b.DepositAmount,
		DepositPaid:     b.DepositPaid,
		PaymentMethod:   b.PaymentMethod,
		StyleImage:      b.StyleImage,
		HairImage:       b.HairImage,
		Status:          string(b.Status),
	}
}

func (d firestoreBooking) toDomain(id string) domain.Booking {
	b := domain.Booking{
		ID:              id,
		Name:            d.Name,
		Phone:           d.Phone,
		Email:           d.Email,
		Style:           d.Style,
		HairLength:      d.HairLength,
		HairOption:      d.HairOption,
		AppointmentDate: d.AppointmentDate,
		AppointmentTime: d.AppointmentTime,
		Duration:        d.Duration,
		PreWash:         d.PreWash,
		Detangling:      d.Detangling,
		Notes:           d.Notes,
		TotalPrice:      d.TotalPrice,
		DepositAmount:   d.DepositAmount,
		DepositPaid:     d.DepositPaid,
		PaymentMethod:   d.PaymentMethod,
		StyleImage:      d.StyleImage,
		HairImage:       d.HairImage,
		Status:          domain.BookingStatus(d.Status),
		Rescheduled:     d.Rescheduled,
		OriginalDate:    d.OriginalDate,
		OriginalTime:    d.OriginalTime,
		UpdatedAt:       d.UpdatedAt,
	}
	if !d.CreatedAt.IsZero() {
		created := d.CreatedAt
		b.CreatedAt = &created
	}
	return b
}

// Create adds a document; createdAt is set by the server.
func (r *FirestoreBookingRepository) Create(ctx context.Context, b *domain.Booking) (string, error) {
	ref, _, err := r.col.Add(ctx, toFirestoreBooking(b))
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (r *FirestoreBookingRepository) FindByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	return r.collect(ctx, r.col.Where("appointmentDate", "==", date))
}

// FindByPhonePrefix uses a lexicographic range, which is how Firestore
// expresses prefix matches.
func (r *FirestoreBookingRepository) FindByPhonePrefix(ctx context.Context, prefix string) ([]domain.Booking, error) {
	return r.collect(ctx, r.col.
		Where("phone", ">=", prefix).
		Where("phone", "<=", prefix+"\uf8ff"))
}

func (r *FirestoreBookingRepository) FindByStatus(ctx context.Context, status string) ([]domain.Booking, error) {
	if status == "" {
		return r.collect(ctx, r.col.OrderBy("createdAt", firestore.Desc))
	}
	return r.collect(ctx, r.col.Where("status", "==", status))
}

func (r *FirestoreBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	snap, err := r.col.Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	var d firestoreBooking
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	b := d.toDomain(snap.Ref.ID)
	return &b, nil
}

func (r *FirestoreBookingRepository) UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error {
	_, err := r.col.Doc(id).Update(ctx, []firestore.Update{
		{Path: "appointmentDate", Value: s.Date},
		{Path: "appointmentTime", Value: s.Time},
		{Path: "originalDate", Value: s.OriginalDate},
		{Path: "originalTime", Value: s.OriginalTime},
		{Path: "rescheduled", Value: true},
		{Path: "updatedAt", Value: s.UpdatedAt},
	})
	if status.Code(err) == codes.NotFound {
		return domain.ErrBookingNotFound
	}
	return err
}

func (r *FirestoreBookingRepository) collect(ctx context.Context, q firestore.Query) ([]domain.Booking, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(snaps))
	for _, snap := range snaps {
		var d firestoreBooking
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		out = append(out, d.toDomain(snap.Ref.ID))
	}
	return out, nil
}
