package admin

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MousScales/Momsites/internal/domain"
	"github.com/MousScales/Momsites/internal/pkg/validator"
)

const (
	RoleAdmin    = "admin"
	adminSubject = "salon-admin"
)

type Service struct {
	bookings     BookingLister
	tokens       TokenIssuer
	passwordHash []byte
	tokenTTL     time.Duration
	now          func() time.Time
	loggerf      func(format string, args ...interface{})
}

// NewService builds the admin service. Login is disabled when tokens is
// nil or passwordHash is empty.
func NewService(bookings BookingLister, tokens TokenIssuer, passwordHash string, tokenTTL time.Duration, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		bookings:     bookings,
		tokens:       tokens,
		passwordHash: []byte(passwordHash),
		tokenTTL:     tokenTTL,
		now:          time.Now,
		loggerf:      loggerf,
	}
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if s.tokens == nil || len(s.passwordHash) == 0 {
		return nil, domain.NotConfigured("Admin login is not configured.")
	}
	if errs := validator.Validate(req); errs != nil {
		return nil, domain.MissingParameter("Password is required")
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.loggerf("level=warn msg=admin login rejected")
			return nil, domain.Unauthorized("Invalid password")
		}
		return nil, domain.Internal(err)
	}

	issued := s.now()
	token, err := s.tokens.GenerateToken(adminSubject, RoleAdmin)
	if err != nil {
		return nil, domain.Internal(err)
	}
	s.loggerf("level=info msg=admin login ok")
	return &LoginResponse{Token: token, ExpiresAt: issued.Add(s.tokenTTL).UTC()}, nil
}

func (s *Service) ListBookings(ctx context.Context, status string) (*BookingListResponse, error) {
	out, err := s.bookings.ListBookings(ctx, status)
	if err != nil {
		return nil, err
	}
	return &BookingListResponse{Bookings: out, Count: len(out), Status: status}, nil
}
