package entitlement_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/birikio/birikio/internal/entitlement"
	"github.com/birikio/birikio/internal/model"
)

func TestFreeStatus(t *testing.T) {
	status := entitlement.FreeStatus()

	if status.IsPro {
		t.Error("free status must not be pro")
	}

	if !status.CheckAssetLimit(4) {
		t.Error("expected a 5th asset to be allowed")
	}

	if status.CheckAssetLimit(5) {
		t.Error("expected a 6th asset to be blocked")
	}

	if status.CanUseAlerts() {
		t.Error("free users must not have alerts")
	}

	if !status.ShouldShowAds() {
		t.Error("free users must see ads")
	}
}

func TestProStatus(t *testing.T) {
	status := entitlement.ProStatus(time.Now().Add(time.Hour))

	if !status.CheckAssetLimit(1000) {
		t.Error("pro users have no asset limit")
	}

	if !status.CanUseAlerts() {
		t.Error("pro users have alerts")
	}

	if status.ShouldShowAds() {
		t.Error("pro users must not see ads")
	}
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	futureEnd := sql.NullTime{Time: now.Add(24 * time.Hour), Valid: true}
	pastEnd := sql.NullTime{Time: now.Add(-24 * time.Hour), Valid: true}

	table := []struct {
		name         string
		subscription *model.Subscription
		expectPro    bool
	}{
		{"no record", nil, false},
		{"free plan", &model.Subscription{IsPro: false}, false},
		{"active pro", &model.Subscription{IsPro: true, SubscriptionEnd: futureEnd}, true},
		{"expired pro", &model.Subscription{IsPro: true, SubscriptionEnd: pastEnd}, false},
		{"pro with no end date", &model.Subscription{IsPro: true}, false},
	}

	for _, entry := range table {
		status := entitlement.Resolve(entry.subscription, now)

		if status.IsPro != entry.expectPro {
			t.Errorf("%s: expected IsPro=%v, got %v", entry.name, entry.expectPro, status.IsPro)
		}
	}
}
