package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MousScales/Momsites/internal/domain"
)

type MongoBookingRepository struct {
	col *mongo.Collection
}

func NewMongoBookingRepository(col *mongo.Collection) *MongoBookingRepository {
	return &MongoBookingRepository{col: col}
}

type mongoBooking struct {
	ID              string     `bson:"_id,omitempty"`
	Name            *string    `bson:"name"`
	Phone           *string    `bson:"phone"`
	Email           *string    `bson:"email"`
	Style           *string    `bson:"style"`
	HairLength      *string    `bson:"hairLength"`
	HairOption      *string    `bson:"hairOption"`
	AppointmentDate *string    `bson:"appointmentDate"`
	AppointmentTime *string    `bson:"appointmentTime"`
	Duration        *string    `bson:"duration"`
	PreWash         *string    `bson:"preWash"`
	Detangling      *string    `bson:"detangling"`
	Notes           *string    `bson:"notes"`
	TotalPrice      *float64   `bson:"totalPrice"`
	DepositAmount   *float64   `bson:"depositAmount"`
	DepositPaid     bool       `bson:"depositPaid"`
	PaymentMethod   string     `bson:"paymentMethod"`
	StyleImage      *string    `bson:"styleImage"`
	HairImage       *string    `bson:"hairImage"`
	Status          string     `bson:"status"`
	CreatedAt       *time.Time `bson:"createdAt,omitempty"`
	Rescheduled     bool       `bson:"rescheduled,omitempty"`
	OriginalDate    *string    `bson:"originalDate,omitempty"`
	OriginalTime    *string    `bson:"originalTime,omitempty"`
	UpdatedAt       *time.Time `bson:"updatedAt,omitempty"`
}

func (d mongoBooking) toDomain() domain.Booking {
	return domain.Booking{
		ID:              d.ID,
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
		CreatedAt:       d.CreatedAt,
		Rescheduled:     d.Rescheduled,
		OriginalDate:    d.OriginalDate,
		OriginalTime:    d.OriginalTime,
		UpdatedAt:       d.UpdatedAt,
	}
}

// Create upserts a new document under a fresh id and lets the server
// stamp createdAt.
func (r *MongoBookingRepository) Create(ctx context.Context, b *domain.Booking) (string, error) {
	id := uuid.NewString()
	doc := mongoBooking{
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
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$setOnInsert": doc,
			"$currentDate": bson.M{"createdAt": true},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *MongoBookingRepository) FindByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	return r.find(ctx, bson.M{"appointmentDate": date})
}

func (r *MongoBookingRepository) FindByPhonePrefix(ctx context.Context, prefix string) ([]domain.Booking, error) {
	return r.find(ctx, bson.M{"phone": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}})
}

func (r *MongoBookingRepository) FindByStatus(ctx context.Context, status string) ([]domain.Booking, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
}

func (r *MongoBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var d mongoBooking
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	b := d.toDomain()
	return &b, nil
}

func (r *MongoBookingRepository) UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"appointmentDate": s.Date,
		"appointmentTime": s.Time,
		"originalDate":    s.OriginalDate,
		"originalTime":    s.OriginalTime,
		"rescheduled":     true,
		"updatedAt":       s.UpdatedAt,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}

func (r *MongoBookingRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]domain.Booking, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var docs []mongoBooking
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
