// Package entitlement derives what a user's subscription allows.
package entitlement

import (
	"time"

	"github.com/birikio/birikio/internal/model"
)

// FreeAssetLimit is how many non-sold assets a free user may hold.
const FreeAssetLimit = 5

// UnlimitedAssets marks a status with no asset ceiling.
const UnlimitedAssets = -1

// Status is the derived view of a subscription: what the plan permits.
type Status struct {
	IsPro           bool
	PlanType        string
	SubscriptionEnd time.Time
	AssetLimit      int
	AlertsEnabled   bool
	AdsEnabled      bool
}

// FreeStatus returns the conservative free-tier defaults.
//
// This is also the fallback whenever status can't be determined; a
// failed fetch must never grant paid entitlements.
func FreeStatus() Status {
	return Status{
		IsPro:         false,
		PlanType:      "free",
		AssetLimit:    FreeAssetLimit,
		AlertsEnabled: false,
		AdsEnabled:    true,
	}
}

// ProStatus returns the entitlements of an active PRO subscription.
func ProStatus(subscriptionEnd time.Time) Status {
	return Status{
		IsPro:           true,
		PlanType:        "pro",
		SubscriptionEnd: subscriptionEnd,
		AssetLimit:      UnlimitedAssets,
		AlertsEnabled:   true,
		AdsEnabled:      false,
	}
}

// Resolve derives a Status from a subscription record.
//
// A user is PRO only while the subscription has an end date in the
// future. A missing record, a free plan, or an expired or open-ended
// PRO row all resolve to the free tier.
func Resolve(subscription *model.Subscription, now time.Time) Status {
	if subscription == nil || !subscription.IsPro {
		return FreeStatus()
	}

	if subscription.SubscriptionEnd.Valid && subscription.SubscriptionEnd.Time.After(now) {
		return ProStatus(subscription.SubscriptionEnd.Time)
	}

	return FreeStatus()
}

// CheckAssetLimit reports whether a user holding `count` non-sold
// assets may add another one.
func (status Status) CheckAssetLimit(count int) bool {
	if status.IsPro {
		return true
	}

	return count < status.AssetLimit
}

// CanUseAlerts reports whether price alerts are available.
func (status Status) CanUseAlerts() bool {
	return status.AlertsEnabled
}

// ShouldShowAds reports whether ads are shown to this user.
func (status Status) ShouldShowAds() bool {
	return status.AdsEnabled
}
