package payment

import (
	"github.com/gin-gonic/gin"

	"github.com/MousScales/Momsites/internal/domain"
	"github.com/MousScales/Momsites/internal/pkg/response"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/create-checkout-session", h.CreateCheckoutSession)
	rg.POST("/create-payment-intent", h.CreatePaymentIntent)
}

// CreateCheckoutSession godoc
// @Summary      Create deposit checkout session
// @Description  Opens a checkout session for 30% of the booking total and returns its redirect URL
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        body body CheckoutRequest true "Booking form"
// @Success      200 {object} CheckoutResponse
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /create-checkout-session [post]
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.loggerf("level=error msg=invalid checkout payload err=%v", err)
		response.FromError(c, domain.InvalidRequest("Invalid booking payload.", err))
		return
	}

	resp, err := h.service.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}

// CreatePaymentIntent godoc
// @Summary      Create deposit payment intent
// @Description  Opens an in-page card payment for an amount in cents and returns its client secret
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        body body PaymentIntentRequest true "Amount and booking"
// @Success      200 {object} PaymentIntentResponse
// @Failure      400 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /create-payment-intent [post]
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.loggerf("level=error msg=invalid payment intent payload err=%v", err)
		response.FromError(c, domain.InvalidRequest("Invalid payment payload.", err))
		return
	}

	resp, err := h.service.CreatePaymentIntent(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, resp)
}
