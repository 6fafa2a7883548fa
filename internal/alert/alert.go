// Package alert groups price alerts for display.
package alert

import (
	"github.com/birikio/birikio/internal/model"
)

// Buckets partitions alerts for the grouped list view. Every alert
// lands in exactly one bucket.
type Buckets struct {
	Triggered []model.PriceAlert
	Active    []model.PriceAlert
	Inactive  []model.PriceAlert
}

// Classify splits alerts into triggered, active and inactive buckets,
// preserving the input order within each bucket.
//
// A triggered alert stays triggered regardless of its active flag; the
// flag only distinguishes the untriggered alerts.
func Classify(alertList []model.PriceAlert) Buckets {
	var buckets Buckets

	for _, alert := range alertList {
		switch {
		case alert.IsTriggered:
			buckets.Triggered = append(buckets.Triggered, alert)
		case alert.IsActive:
			buckets.Active = append(buckets.Active, alert)
		default:
			buckets.Inactive = append(buckets.Inactive, alert)
		}
	}

	return buckets
}

// Size returns the total number of alerts across all buckets.
func (buckets Buckets) Size() int {
	return len(buckets.Triggered) + len(buckets.Active) + len(buckets.Inactive)
}
