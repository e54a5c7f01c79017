package payment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(gw Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(NewService(gw, "http://127.0.0.1:5500", nil), nil)
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateCheckoutSessionEndpoint_Success(t *testing.T) {
	gw := &stubGateway{result: &Session{ID: "cs_1", URL: "https://checkout.example/cs_1"}}
	r := setupTestRouter(gw)

	w := postJSON(r, "/api/create-checkout-session", `{"total_price": 120, "selected_style": "Cornrows"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://checkout.example/cs_1", decodeBody(t, w)["url"])
	assert.Equal(t, 1, gw.calls)
}

func TestCreateCheckoutSessionEndpoint_NumericString(t *testing.T) {
	gw := &stubGateway{}
	r := setupTestRouter(gw)

	w := postJSON(r, "/api/create-checkout-session", `{"total_price": "85.00"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2550, gw.last.LineItem.UnitAmount)
}

func TestCreateCheckoutSessionEndpoint_TooLow(t *testing.T) {
	gw := &stubGateway{}
	r := setupTestRouter(gw)

	w := postJSON(r, "/api/create-checkout-session", `{"total_price": 1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Deposit amount is too low to process.", decodeBody(t, w)["error"])
	assert.Zero(t, gw.calls)
}

func TestCreateCheckoutSessionEndpoint_Malformed(t *testing.T) {
	gw := &stubGateway{}
	r := setupTestRouter(gw)

	for _, body := range []string{`{"total_price": "abc"}`, `{not json`} {
		w := postJSON(r, "/api/create-checkout-session", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, decodeBody(t, w), "error")
	}
	assert.Zero(t, gw.calls)
}

func TestCreateCheckoutSessionEndpoint_NotConfigured(t *testing.T) {
	r := setupTestRouter(nil)

	w := postJSON(r, "/api/create-checkout-session", `{"total_price": 120}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.Contains(decodeBody(t, w)["error"].(string), "not configured"))
}

func TestCreatePaymentIntentEndpoint(t *testing.T) {
	gw := &stubGateway{}
	r := setupTestRouter(gw)

	w := postJSON(r, "/api/create-payment-intent", `{"amount": 3600, "bookingData": {"bookingId": "b1"}}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pi_test_1_secret_x", decodeBody(t, w)["clientSecret"])
	assert.EqualValues(t, 3600, gw.lastIntent.Amount)
}

func TestCreatePaymentIntentEndpoint_TooLow(t *testing.T) {
	gw := &stubGateway{}
	r := setupTestRouter(gw)

	w := postJSON(r, "/api/create-payment-intent", `{"amount": 49}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Deposit amount is too low", decodeBody(t, w)["error"])
	assert.Zero(t, gw.intents)
}
