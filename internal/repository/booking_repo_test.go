package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/MousScales/Momsites/internal/database"
	"github.com/MousScales/Momsites/internal/domain"
)

func newSQLiteRepo(t *testing.T) *BookingRepository {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "bookings.db"))
	require.NoError(t, err)
	repo := NewBookingRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func str(s string) *string { return &s }

func TestBookingRepository_CreateAndFindByDate(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	dates := []string{"2024-06-01", "2024-06-02", "2024-06-01", "2024-06-03", "2024-06-01"}
	ids := map[string]bool{}
	for i, d := range dates {
		id, err := repo.Create(ctx, &domain.Booking{
			Name:            str(fmt.Sprintf("client-%d", i)),
			AppointmentDate: str(d),
			PaymentMethod:   domain.DefaultPaymentMethod,
			Status:          domain.BookingPending,
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)
		ids[id] = true
	}
	assert.Len(t, ids, len(dates), "ids must be unique")

	got, err := repo.FindByDate(ctx, "2024-06-01")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, b := range got {
		assert.Equal(t, "2024-06-01", *b.AppointmentDate)
		assert.NotNil(t, b.CreatedAt, "created_at is assigned by the database")
		assert.Equal(t, domain.BookingPending, b.Status)
	}

	none, err := repo.FindByDate(ctx, "1999-01-01")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookingRepository_RoundTripKeepsNulls(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	price := 120.0

	id, err := repo.Create(ctx, &domain.Booking{
		Name:            str("Jane"),
		Style:           str("Box Braids"),
		TotalPrice:      &price,
		AppointmentDate: str("2024-06-01"),
		PaymentMethod:   "cash",
		Status:          domain.BookingPending,
	})
	require.NoError(t, err)

	b, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, "Jane", *b.Name)
	assert.Equal(t, "Box Braids", *b.Style)
	assert.Equal(t, 120.0, *b.TotalPrice)
	assert.Nil(t, b.Notes)
	assert.Nil(t, b.DepositAmount)
	assert.False(t, b.DepositPaid)
	assert.False(t, b.Rescheduled)
	assert.Nil(t, b.UpdatedAt)
}

func TestBookingRepository_FindByPhonePrefix(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, p := range []string{"8605550100", "8605559999", "2125550100"} {
		_, err := repo.Create(ctx, &domain.Booking{Phone: str(p), Status: domain.BookingPending})
		require.NoError(t, err)
	}

	got, err := repo.FindByPhonePrefix(ctx, "860555")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestBookingRepository_FindByStatus(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	for _, s := range []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingPending} {
		_, err := repo.Create(ctx, &domain.Booking{Status: s})
		require.NoError(t, err)
	}

	pending, err := repo.FindByStatus(ctx, "pending")
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	all, err := repo.FindByStatus(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBookingRepository_UpdateSchedule(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.Booking{
		AppointmentDate: str("2024-06-05"),
		AppointmentTime: str("10:00"),
		Status:          domain.BookingPending,
	})
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateSchedule(ctx, id, domain.Schedule{
		Date:         "2024-06-12",
		Time:         "11:30",
		OriginalDate: str("2024-06-05"),
		OriginalTime: str("10:00"),
		UpdatedAt:    now,
	}))

	b, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-12", *b.AppointmentDate)
	assert.Equal(t, "11:30", *b.AppointmentTime)
	assert.Equal(t, "2024-06-05", *b.OriginalDate)
	assert.True(t, b.Rescheduled)
	require.NotNil(t, b.UpdatedAt)
	assert.True(t, now.Equal(*b.UpdatedAt))

	err = repo.UpdateSchedule(ctx, "missing", domain.Schedule{Date: "x", Time: "y"})
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingRepository_GetByIDNotFound(t *testing.T) {
	repo := newSQLiteRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func newMockRepo(t *testing.T) (*BookingRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewBookingRepository(db), mock
}

func TestBookingRepository_QueryErrorPropagates(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "bookings" WHERE appointment_date = $1`)).
		WithArgs("2024-06-01").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.FindByDate(context.Background(), "2024-06-01")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_InsertErrorPropagates(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO "bookings"`).WillReturnError(errors.New("disk full"))

	_, err := repo.Create(context.Background(), &domain.Booking{Status: domain.BookingPending})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}
