// Package ads rotates promotional banners for free-tier users.
package ads

import (
	"time"
)

// Slide is one banner in the rotation.
type Slide struct {
	Title string
	Text  string
	URL   string
}

// Carousel selects a slide purely from the clock, so every render of a
// page picks the same slide within an interval without any client-side
// polling or stored rotation state.
type Carousel struct {
	Slides   []Slide
	Interval time.Duration
}

// Current returns the slide to show at the given time.
func (carousel *Carousel) Current(now time.Time) Slide {
	if len(carousel.Slides) == 0 {
		return Slide{}
	}

	interval := carousel.Interval

	if interval <= 0 {
		interval = time.Minute
	}

	index := int(now.Unix()/int64(interval.Seconds())) % len(carousel.Slides)

	return carousel.Slides[index]
}

// ShowInterstitial reports whether a full-screen ad is due after the
// given number of completed gated actions. Every third action shows one.
func ShowInterstitial(actionCount int) bool {
	return actionCount > 0 && actionCount%3 == 0
}

// DefaultCarousel is the banner set shown to free users.
var DefaultCarousel = &Carousel{
	Slides: []Slide{
		{
			Title: "BİRİKİO PRO",
			Text:  "Sınırsız varlık, fiyat alarmları ve reklamsız deneyim",
			URL:   "/pro",
		},
		{
			Title: "Fiyat Alarmları",
			Text:  "Hedef fiyatlara ulaşıldığında haberdar olun",
			URL:   "/pro",
		},
		{
			Title: "Reklamları Kaldır",
			Text:  "PRO ile kesintisiz takip",
			URL:   "/pro",
		},
	},
	Interval: 30 * time.Second,
}
