package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MousScales/Momsites/internal/domain"
)

const (
	currencyUSD = "usd"

	// Smallest and largest single charge the provider accepts.
	minChargeCents = 50
	maxChargeCents = 99999999

	depositItemName    = "Appointment Deposit"
	defaultStyleLabel  = "a hairstyle"
	checkoutSessionVar = "{CHECKOUT_SESSION_ID}"
)

// 30% of one currency unit, in cents.
var depositCentsPerUnit = decimal.NewFromInt(30)

var maxChargeDecimal = decimal.NewFromInt(maxChargeCents)

type Service struct {
	gateway Gateway
	origin  string
	loggerf func(format string, args ...interface{})
}

// NewService builds the checkout service. A nil gateway means the payment
// provider is not configured and every call fails with NotConfigured.
func NewService(gateway Gateway, frontendOrigin string, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{gateway: gateway, origin: frontendOrigin, loggerf: loggerf}
}

// DepositCents returns floor(total * 0.30 * 100), computed exactly. ok is
// false when the deposit is above the largest charge the provider takes.
func DepositCents(total decimal.Decimal) (cents int64, ok bool) {
	return chargeCents(total.Mul(depositCentsPerUnit).Floor())
}

func chargeCents(cents decimal.Decimal) (int64, bool) {
	if cents.GreaterThan(maxChargeDecimal) {
		return 0, false
	}
	return cents.IntPart(), true
}

// checkCharge rejects amounts the provider would refuse, before any call.
func checkCharge(cents int64, ok bool, tooLow string) error {
	if !ok {
		return domain.InvalidAmount("Deposit amount is too high to process.")
	}
	if cents < minChargeCents {
		return domain.InvalidAmount(tooLow)
	}
	return nil
}

func (s *Service) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	if s.gateway == nil {
		return nil, domain.NotConfigured("Payment service is not configured on the server.")
	}

	total := decimal.Zero
	if req.TotalPrice.Valid {
		total = req.TotalPrice.Decimal
	}
	deposit, ok := DepositCents(total)
	if err := checkCharge(deposit, ok, "Deposit amount is too low to process."); err != nil {
		s.loggerf("level=info msg=deposit rejected total_price=%s deposit_cents=%d", total.String(), deposit)
		return nil, err
	}

	params := SessionParams{
		Currency: currencyUSD,
		LineItem: LineItem{
			Name:        depositItemName,
			Description: "Deposit for " + valueOr(req.SelectedStyle, defaultStyleLabel),
			UnitAmount:  deposit,
			Quantity:    1,
		},
		SuccessURL: s.origin + "/?session_id=" + checkoutSessionVar,
		CancelURL:  s.origin + "/",
		Metadata:   sessionMetadata(req, total),
	}

	session, err := s.gateway.CreateSession(ctx, params)
	if err != nil {
		s.loggerf("level=error msg=checkout session create failed deposit_cents=%d err=%v", deposit, err)
		return nil, domain.Upstream(err)
	}
	s.loggerf("level=info msg=checkout session created session_id=%s deposit_cents=%d", session.ID, deposit)
	return &CheckoutResponse{URL: session.URL}, nil
}

// CreatePaymentIntent opens an in-page card payment for an amount the
// booking page has already computed, in cents.
func (s *Service) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	if s.gateway == nil {
		return nil, domain.NotConfigured("Payment service is not configured on the server.")
	}

	amount := decimal.Zero
	if req.Amount.Valid {
		amount = req.Amount.Decimal
	}
	cents, ok := chargeCents(amount.Round(0))
	if err := checkCharge(cents, ok, "Deposit amount is too low"); err != nil {
		s.loggerf("level=info msg=payment intent rejected amount=%s", amount.String())
		return nil, err
	}

	bd := req.BookingData
	md := map[string]string{
		"depositAmount": decimal.New(cents, -2).String(),
	}
	if bd.TotalPrice.Valid {
		md["totalPrice"] = bd.TotalPrice.Decimal.String()
	}
	for key, v := range map[string]*string{
		"bookingId":    bd.BookingID,
		"customerName": bd.Name,
		"service":      bd.Style,
	} {
		if v != nil {
			md[key] = *v
		}
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, IntentParams{
		Currency: currencyUSD,
		Amount:   cents,
		Metadata: md,
	})
	if err != nil {
		s.loggerf("level=error msg=payment intent create failed amount_cents=%d err=%v", cents, err)
		return nil, domain.UpstreamMsg("An error occurred while creating payment intent: "+err.Error(), err)
	}
	s.loggerf("level=info msg=payment intent created intent_id=%s amount_cents=%d", intent.ID, cents)
	return &PaymentIntentResponse{ClientSecret: intent.ClientSecret}, nil
}

// sessionMetadata carries the booking details on the session so the
// provider hands them back after payment. Absent fields are left out.
func sessionMetadata(req CheckoutRequest, total decimal.Decimal) map[string]string {
	md := map[string]string{
		"totalPrice": total.String(),
	}
	put := func(key string, v *string) {
		if v != nil {
			md[key] = *v
		}
	}
	put("customerName", req.Name)
	put("phoneNumber", req.Phone)
	put("email", req.Email)
	put("appointmentDateTime", req.AppointmentDateTime)
	put("selectedStyle", req.SelectedStyle)
	put("hairLength", req.HairLength)
	put("hairOption", req.HairOption)
	put("preWashOption", req.PreWashOption)
	put("detanglingOption", req.DetanglingOption)
	put("notes", req.Notes)
	put("duration", req.Duration.Ptr())
	put("currentHairImageURL", req.CurrentHairImageURL)
	put("referenceImageURL", req.ReferenceImageURL)
	put("boxBraidsVariation", req.BoxBraidsVariation)
	put("cornrowsVariation", req.CornrowsVariation)
	put("twoStrandTwistsVariation", req.TwoStrandTwistsVariation)
	return md
}

func valueOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}
