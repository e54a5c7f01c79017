package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MousScales/Momsites/internal/domain"
)

func setupTestRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(store, nil, 48*time.Hour, nil))
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSaveBookingEndpoint(t *testing.T) {
	r := setupTestRouter(newMemStore())

	w := doRequest(r, http.MethodPost, "/api/save-booking",
		`{"name":"Jane","style":"Box Braids","totalPrice":120,"date":"2024-06-01","status":"confirmed"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var saved SaveBookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.True(t, saved.Success)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, saved.ID, saved.BookingID)

	w = doRequest(r, http.MethodGet, "/api/get-bookings-for-date?date=2024-06-01", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0]["id"])
	assert.Equal(t, saved.ID, list[0]["bookingId"])
	assert.Equal(t, "Jane", list[0]["name"])
	assert.Equal(t, "Box Braids", list[0]["style"])
	assert.EqualValues(t, 120, list[0]["totalPrice"])
	assert.Equal(t, "pending", list[0]["status"])
	assert.Equal(t, "cash", list[0]["paymentMethod"])
	assert.Equal(t, false, list[0]["depositPaid"])
	assert.Contains(t, list[0], "notes")
	assert.Nil(t, list[0]["notes"])
}

func TestSaveBookingEndpoint_Malformed(t *testing.T) {
	r := setupTestRouter(newMemStore())

	w := doRequest(r, http.MethodPost, "/api/save-booking", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaveBookingEndpoint_NotConfigured(t *testing.T) {
	r := setupTestRouter(nil)

	w := doRequest(r, http.MethodPost, "/api/save-booking", `{"name":"Jane"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Database is not configured."}`, w.Body.String())
}

func TestGetBookingsForDateEndpoint_MissingDate(t *testing.T) {
	store := new(MockStore)
	r := setupTestRouter(store)

	w := doRequest(r, http.MethodGet, "/api/get-bookings-for-date", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Date parameter is required"}`, w.Body.String())
	store.AssertNotCalled(t, "FindByDate", mock.Anything, mock.Anything)
}

func TestGetBookingsForDateEndpoint_EmptyArray(t *testing.T) {
	r := setupTestRouter(newMemStore())

	w := doRequest(r, http.MethodGet, "/api/get-bookings-for-date?date=2024-01-01", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSearchBookingsByPhoneEndpoint(t *testing.T) {
	store := new(MockStore)
	store.On("FindByPhonePrefix", mock.Anything, "860555").
		Return([]domain.Booking{{ID: "a"}, {ID: "b"}}, nil)
	r := setupTestRouter(store)

	w := doRequest(r, http.MethodGet, "/api/search-bookings-by-phone?phone=860-555", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Count)
}

func TestUpdateBookingEndpoint_NotFound(t *testing.T) {
	r := setupTestRouter(newMemStore())

	w := doRequest(r, http.MethodPost, "/api/update-booking",
		`{"bookingId":"missing","newDate":"2030-01-01","newTime":"10:00"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Booking not found"}`, w.Body.String())
}

func TestUpdateBookingEndpoint_MissingFields(t *testing.T) {
	r := setupTestRouter(newMemStore())

	w := doRequest(r, http.MethodPost, "/api/update-booking", `{"bookingId":"a"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields: newDate, newTime"}`, w.Body.String())
}

func TestSearchBookingsByPhoneEndpoint_CarriesBookingID(t *testing.T) {
	store := new(MockStore)
	store.On("FindByPhonePrefix", mock.Anything, "860").
		Return([]domain.Booking{{ID: "abc", Phone: strPtr("8605550100")}}, nil)
	r := setupTestRouter(store)

	w := doRequest(r, http.MethodGet, "/api/search-bookings-by-phone?phone=860", "")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	bookings := body["bookings"].([]any)
	require.Len(t, bookings, 1)
	first := bookings[0].(map[string]any)
	assert.Equal(t, "abc", first["id"])
	assert.Equal(t, "abc", first["bookingId"])
	assert.Equal(t, "8605550100", first["phone"])
}
