package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MousScales/Momsites/internal/domain"
)

// BookingRepository keeps bookings in a SQL table through gorm.
type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              string     `gorm:"column:id;primaryKey;size:36"`
	Name            *string    `gorm:"column:name"`
	Phone           *string    `gorm:"column:phone;index"`
	Email           *string    `gorm:"column:email"`
	Style           *string    `gorm:"column:style"`
	HairLength      *string    `gorm:"column:hair_length"`
	HairOption      *string    `gorm:"column:hair_option"`
	AppointmentDate *string    `gorm:"column:appointment_date;index"`
	AppointmentTime *string    `gorm:"column:appointment_time"`
	Duration        *string    `gorm:"column:duration"`
	PreWash         *string    `gorm:"column:pre_wash"`
	Detangling      *string    `gorm:"column:detangling"`
	Notes           *string    `gorm:"column:notes"`
	TotalPrice      *float64   `gorm:"column:total_price"`
	DepositAmount   *float64   `gorm:"column:deposit_amount"`
	DepositPaid     bool       `gorm:"column:deposit_paid;not null;default:false"`
	PaymentMethod   string     `gorm:"column:payment_method"`
	StyleImage      *string    `gorm:"column:style_image"`
	HairImage       *string    `gorm:"column:hair_image"`
	Status          string     `gorm:"column:status;index"`
	CreatedAt       *time.Time `gorm:"column:created_at;autoCreateTime:false;default:CURRENT_TIMESTAMP"`
	Rescheduled     bool       `gorm:"column:rescheduled;not null;default:false"`
	OriginalDate    *string    `gorm:"column:original_date"`
	OriginalTime    *string    `gorm:"column:original_time"`
	UpdatedAt       *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (bookingModel) TableName() string { return domain.BookingsCollection }

// AutoMigrate creates or updates the bookings table.
func (r *BookingRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&bookingModel{})
}

func toDomainBooking(m bookingModel) domain.Booking {
	return domain.Booking{
		ID:              m.ID,
		Name:            m.Name,
		Phone:           m.Phone,
		Email:           m.Email,
		Style:           m.Style,
		HairLength:      m.HairLength,
		HairOption:      m.HairOption,
		AppointmentDate: m.AppointmentDate,
		AppointmentTime: m.AppointmentTime,
		Duration:        m.Duration,
		PreWash:         m.PreWash,
		Detangling:      m.Detangling,
		Notes:           m.Notes,
		TotalPrice:      m.TotalPrice,
		DepositAmount:   m.DepositAmount,
		DepositPaid:     m.DepositPaid,
		PaymentMethod:   m.PaymentMethod,
		StyleImage:      m.StyleImage,
		HairImage:       m.HairImage,
		Status:          domain.BookingStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		Rescheduled:     m.Rescheduled,
		OriginalDate:    m.OriginalDate,
		OriginalTime:    m.OriginalTime,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:              b.ID,
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

func toDomainBookings(ms []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, toDomainBooking(m))
	}
	return out
}

// Create inserts b under a fresh id. created_at is filled by the database.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (string, error) {
	m := toBookingModel(b)
	m.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return "", err
	}
	return m.ID, nil
}

func (r *BookingRepository) FindByDate(ctx context.Context, date string) ([]domain.Booking, error) {
	var ms []bookingModel
	if err := r.db.WithContext(ctx).Where("appointment_date = ?", date).Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(ms), nil
}

// FindByPhonePrefix expects prefix to be digits only.
func (r *BookingRepository) FindByPhonePrefix(ctx context.Context, prefix string) ([]domain.Booking, error) {
	var ms []bookingModel
	if err := r.db.WithContext(ctx).Where("phone LIKE ?", prefix+"%").Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) FindByStatus(ctx context.Context, status string) ([]domain.Booking, error) {
	var ms []bookingModel
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, err
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m bookingModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	b := toDomainBooking(m)
	return &b, nil
}

func (r *BookingRepository) UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error {
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).Updates(map[string]any{
		"appointment_date": s.Date,
		"appointment_time": s.Time,
		"original_date":    s.OriginalDate,
		"original_time":    s.OriginalTime,
		"rescheduled":      true,
		"updated_at":       s.UpdatedAt,
	})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrBookingNotFound
	}
	return nil
}
