// Package billing integrates the external payment provider and derives
// subscription entitlements from its answers.
package billing

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/birikio/birikio/internal/entitlement"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/pkg/log"
)

// ProPriceTRY is the monthly PRO price in kuruş (50.00 TRY).
const ProPriceTRY = 5000

// proTerm is how long a verified payment extends a subscription.
const proTerm = 30 * 24 * time.Hour

// CheckoutSession is a started checkout the user gets redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentResult is the provider's answer when verifying a session.
type PaymentResult struct {
	Paid           bool
	CustomerID     string
	SubscriptionID string
}

// Provider is the external payment service.
type Provider interface {
	CreateCheckoutSession(email, successURL, cancelURL string) (CheckoutSession, error)
	VerifySession(sessionID string) (PaymentResult, error)
	CancelSubscription(subscriptionID string) error
}

// SubscriptionStore persists billing records.
type SubscriptionStore interface {
	GetSubscription(userID int) (model.Subscription, error)
	UpsertSubscription(subscription *model.Subscription) error
}

// Service ties the payment provider to subscription persistence.
type Service struct {
	Store    SubscriptionStore
	Provider Provider
	NotFound func(error) bool
}

// Status resolves the user's current entitlements.
//
// Any failure falls back to the free-tier defaults; an error here can
// hide a paid plan for one page load but can never grant one.
func (service *Service) Status(userID int) entitlement.Status {
	subscription, err := service.Store.GetSubscription(userID)

	if err != nil {
		if !service.NotFound(err) {
			log.Errorf("subscription status for user %d: %+v", userID, err)
		}

		return entitlement.FreeStatus()
	}

	return entitlement.Resolve(&subscription, time.Now())
}

// StartCheckout opens a checkout session and returns the URL to
// redirect the user to.
func (service *Service) StartCheckout(user *model.User, successURL, cancelURL string) (string, error) {
	checkout, err := service.Provider.CreateCheckoutSession(user.Username, successURL, cancelURL)

	if err != nil {
		return "", errors.Wrap(err, "create checkout session")
	}

	return checkout.URL, nil
}

// VerifyPayment checks a checkout session with the provider and, when
// it was paid, records an active PRO subscription.
func (service *Service) VerifyPayment(userID int, sessionID string) (bool, error) {
	result, err := service.Provider.VerifySession(sessionID)

	if err != nil {
		return false, errors.Wrap(err, "verify payment session")
	}

	if !result.Paid {
		return false, nil
	}

	now := time.Now()
	subscription := model.Subscription{
		UserID:               userID,
		PlanType:             "pro",
		IsPro:                true,
		StripeCustomerID:     nullString(result.CustomerID),
		StripeSubscriptionID: nullString(result.SubscriptionID),
		SubscriptionStart:    sql.NullTime{Time: now, Valid: true},
		SubscriptionEnd:      sql.NullTime{Time: now.Add(proTerm), Valid: true},
	}

	if err := service.Store.UpsertSubscription(&subscription); err != nil {
		return false, errors.Wrap(err, "record pro subscription")
	}

	log.Infof("user %d upgraded to pro until %s", userID, subscription.SubscriptionEnd.Time)

	return true, nil
}

// Cancel ends the user's PRO subscription with the provider and
// downgrades the stored record to the free plan.
func (service *Service) Cancel(userID int) error {
	subscription, err := service.Store.GetSubscription(userID)

	if err != nil {
		if service.NotFound(err) {
			return nil
		}

		return errors.Wrap(err, "load subscription")
	}

	if subscription.StripeSubscriptionID.Valid {
		if err := service.Provider.CancelSubscription(subscription.StripeSubscriptionID.String); err != nil {
			return errors.Wrap(err, "cancel with provider")
		}
	}

	subscription.IsPro = false
	subscription.PlanType = "free"
	subscription.SubscriptionEnd = sql.NullTime{}

	if err := service.Store.UpsertSubscription(&subscription); err != nil {
		return errors.Wrap(err, "record cancellation")
	}

	log.Infof("user %d cancelled pro subscription", userID)

	return nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
