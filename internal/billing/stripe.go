package billing

import (
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	sub "github.com/stripe/stripe-go/v76/subscription"
)

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct{}

// NewStripeProvider configures the Stripe client with the secret key.
func NewStripeProvider(secretKey string) *StripeProvider {
	stripe.Key = secretKey

	return &StripeProvider{}
}

// CreateCheckoutSession opens a monthly PRO subscription checkout.
func (provider *StripeProvider) CreateCheckoutSession(email, successURL, cancelURL string) (CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		CustomerEmail:      stripe.String(email),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("try"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("BİRİKİO PRO Abonelik"),
						Description: stripe.String("Aylık PRO üyelik - Sınırsız varlık, Fiyat alarmları, Reklamsız deneyim"),
					},
					UnitAmount: stripe.Int64(ProPriceTRY),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String("month"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
	}

	checkout, err := session.New(params)

	if err != nil {
		return CheckoutSession{}, err
	}

	return CheckoutSession{ID: checkout.ID, URL: checkout.URL}, nil
}

// VerifySession asks Stripe whether a checkout session was paid.
func (provider *StripeProvider) VerifySession(sessionID string) (PaymentResult, error) {
	checkout, err := session.Get(sessionID, nil)

	if err != nil {
		return PaymentResult{}, err
	}

	result := PaymentResult{
		Paid: checkout.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}

	if checkout.Customer != nil {
		result.CustomerID = checkout.Customer.ID
	}

	if checkout.Subscription != nil {
		result.SubscriptionID = checkout.Subscription.ID
	}

	return result, nil
}

// CancelSubscription cancels a recurring subscription immediately.
func (provider *StripeProvider) CancelSubscription(subscriptionID string) error {
	_, err := sub.Cancel(subscriptionID, nil)

	return err
}
