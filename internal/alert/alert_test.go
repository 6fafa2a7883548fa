package alert_test

import (
	"testing"

	"github.com/birikio/birikio/internal/alert"
	"github.com/birikio/birikio/internal/model"
)

func TestClassify(t *testing.T) {
	alertList := []model.PriceAlert{
		{ID: 1, IsActive: true},
		{ID: 2, IsActive: false},
		{ID: 3, IsActive: true, IsTriggered: true},
		{ID: 4, IsActive: true},
		// A stopped alert that fired earlier still counts as triggered.
		{ID: 5, IsActive: false, IsTriggered: true},
	}

	buckets := alert.Classify(alertList)

	if len(buckets.Triggered) != 2 || len(buckets.Active) != 2 || len(buckets.Inactive) != 1 {
		t.Fatalf(
			"expected 2/2/1, got %d/%d/%d",
			len(buckets.Triggered),
			len(buckets.Active),
			len(buckets.Inactive),
		)
	}

	if buckets.Triggered[0].ID != 3 || buckets.Triggered[1].ID != 5 {
		t.Error("triggered bucket must preserve input order")
	}

	if buckets.Active[0].ID != 1 || buckets.Active[1].ID != 4 {
		t.Error("active bucket must preserve input order")
	}

	if buckets.Size() != len(alertList) {
		t.Errorf("expected size %d, got %d", len(alertList), buckets.Size())
	}
}

func TestClassifyEmpty(t *testing.T) {
	buckets := alert.Classify(nil)

	if buckets.Size() != 0 {
		t.Errorf("expected empty buckets, got size %d", buckets.Size())
	}
}
