package payment

import (
	"github.com/shopspring/decimal"

	"github.com/MousScales/Momsites/internal/domain"
)

// CheckoutRequest is the booking form as posted to the checkout endpoint.
// Every field is optional.
type CheckoutRequest struct {
	Name                     *string             `json:"name"`
	Phone                    *string             `json:"phone"`
	Email                    *string             `json:"email"`
	AppointmentDateTime      *string             `json:"appointment-datetime"`
	SelectedStyle            *string             `json:"selected_style"`
	HairLength               *string             `json:"hair_length"`
	HairOption               *string             `json:"hair_option"`
	PreWashOption            *string             `json:"pre_wash_option"`
	DetanglingOption         *string             `json:"detangling_option"`
	Notes                    *string             `json:"notes"`
	TotalPrice               decimal.NullDecimal `json:"total_price"`
	Duration                 *domain.FlexString  `json:"duration"`
	CurrentHairImageURL      *string             `json:"currentHairImageURL"`
	ReferenceImageURL        *string             `json:"referenceImageURL"`
	BoxBraidsVariation       *string             `json:"box_braids_variation"`
	CornrowsVariation        *string             `json:"cornrows_variation"`
	TwoStrandTwistsVariation *string             `json:"two_strand_twists_variation"`
}

type CheckoutResponse struct {
	URL string `json:"url" example:"https://checkout.stripe.com/c/pay/cs_test_a1b2"`
}

// LineItem is the single deposit item charged by a session.
type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

// SessionParams is what the gateway needs to open a checkout session.
type SessionParams struct {
	Currency   string
	LineItem   LineItem
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// Session is the provider-side checkout session.
type Session struct {
	ID  string
	URL string
}

// PaymentIntentRequest is posted by the in-page card form. Amount is in
// cents and may carry a fractional part.
type PaymentIntentRequest struct {
	Amount      decimal.NullDecimal  `json:"amount"`
	BookingData PaymentIntentBooking `json:"bookingData"`
}

type PaymentIntentBooking struct {
	BookingID  *string             `json:"bookingId"`
	Name       *string             `json:"name"`
	Style      *string             `json:"style"`
	TotalPrice decimal.NullDecimal `json:"totalPrice"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret" example:"pi_3Nxyz_secret_abc"`
}

type IntentParams struct {
	Currency string
	Amount   int64
	Metadata map[string]string
}

type Intent struct {
	ID           string
	ClientSecret string
}
