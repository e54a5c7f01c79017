package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MousScales/Momsites/internal/domain"
	"github.com/MousScales/Momsites/internal/middleware"
	"github.com/MousScales/Momsites/internal/pkg/jwt"
)

type MockBookingLister struct {
	mock.Mock
}

func (m *MockBookingLister) ListBookings(ctx context.Context, status string) ([]domain.Booking, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func hashPassword(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	jwtService := jwt.New("secret", time.Hour)
	svc := NewService(nil, jwtService, hashPassword(t, "braids4life"), time.Hour, nil)

	resp, err := svc.Login(context.Background(), LoginRequest{Password: "braids4life"})
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewService(nil, jwt.New("secret", time.Hour), hashPassword(t, "right"), time.Hour, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Password: "wrong"})

	assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
}

func TestLogin_EmptyPassword(t *testing.T) {
	svc := NewService(nil, jwt.New("secret", time.Hour), hashPassword(t, "right"), time.Hour, nil)

	_, err := svc.Login(context.Background(), LoginRequest{})

	assert.True(t, domain.IsKind(err, domain.KindMissingParameter))
}

func TestLogin_NotConfigured(t *testing.T) {
	svc := NewService(nil, nil, "", time.Hour, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Password: "x"})

	assert.True(t, domain.IsKind(err, domain.KindNotConfigured))
}

func TestListBookings_PassesErrorsThrough(t *testing.T) {
	lister := new(MockBookingLister)
	lister.On("ListBookings", mock.Anything, "pending").Return(nil, domain.UpstreamMsg("boom", errors.New("boom")))
	svc := NewService(lister, nil, "", time.Hour, nil)

	_, err := svc.ListBookings(context.Background(), "pending")

	assert.True(t, domain.IsKind(err, domain.KindUpstream))
}

func setupAdminRouter(t *testing.T, lister BookingLister) (*gin.Engine, *jwt.Service) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.New("secret", time.Hour)
	h := NewHandler(NewService(lister, jwtService, hashPassword(t, "pw"), time.Hour, nil))

	r := gin.New()
	public := r.Group("/api/admin")
	protected := r.Group("/api/admin", middleware.JWTAuth(jwtService), middleware.AdminOnly())
	h.RegisterRoutes(public, protected)
	return r, jwtService
}

func TestAdminEndpoints(t *testing.T) {
	lister := new(MockBookingLister)
	lister.On("ListBookings", mock.Anything, "confirmed").Return([]domain.Booking{{ID: "a"}, {ID: "b"}}, nil)
	r, _ := setupAdminRouter(t, lister)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(`{"password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var login LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/admin/bookings?status=confirmed", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var list BookingListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	lister.AssertExpectations(t)
}

func TestAdminLoginEndpoint_WrongPassword(t *testing.T) {
	r, _ := setupAdminRouter(t, new(MockBookingLister))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(`{"password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid password"}`, w.Body.String())
}
