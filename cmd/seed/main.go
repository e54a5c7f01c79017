package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MousScales/Momsites/internal/database"
	"github.com/MousScales/Momsites/internal/domain"
	"github.com/MousScales/Momsites/internal/modules/payment"
	"github.com/MousScales/Momsites/internal/repository"
)

// Seeds a few pending bookings into the SQL store for local development.
// Uses DATABASE_URL, or momsites.db when unset.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "momsites.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	repo := repository.NewBookingRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	styles := []struct {
		name  string
		price int64
		hours string
	}{
		{"Box Braids", 120, "5"},
		{"Cornrows", 60, "2"},
		{"Two Strand Twists", 90, "3"},
	}

	ctx := context.Background()
	day := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	for i, s := range styles {
		price := float64(s.price)
		cents, _ := payment.DepositCents(decimal.NewFromInt(s.price))
		deposit := decimal.New(cents, -2).InexactFloat64()
		b := &domain.Booking{
			Name:            ptr(fmt.Sprintf("Client %d", i+1)),
			Phone:           ptr(fmt.Sprintf("86055501%02d", i)),
			Style:           ptr(s.name),
			HairLength:      ptr("midback"),
			AppointmentDate: ptr(day),
			AppointmentTime: ptr(fmt.Sprintf("%02d:00", 9+i*3)),
			Duration:        ptr(s.hours),
			TotalPrice:      &price,
			DepositAmount:   &deposit,
			PaymentMethod:   domain.DefaultPaymentMethod,
			Status:          domain.BookingPending,
		}
		id, err := repo.Create(ctx, b)
		if err != nil {
			log.Fatalf("seed booking failed: %v", err)
		}
		log.Printf("booking created id=%s style=%s date=%s", id, s.name, day)
	}
}

func ptr(s string) *string { return &s }
