package ads_test

import (
	"testing"
	"time"

	"github.com/birikio/birikio/internal/ads"
)

func TestCarouselCurrent(t *testing.T) {
	carousel := &ads.Carousel{
		Slides: []ads.Slide{
			{Title: "a"},
			{Title: "b"},
			{Title: "c"},
		},
		Interval: 30 * time.Second,
	}

	start := time.Unix(0, 0)

	if slide := carousel.Current(start); slide.Title != "a" {
		t.Errorf("expected slide a, got %s", slide.Title)
	}

	// Within the same interval the slide must not change.
	if slide := carousel.Current(start.Add(29 * time.Second)); slide.Title != "a" {
		t.Errorf("expected slide a at 29s, got %s", slide.Title)
	}

	if slide := carousel.Current(start.Add(30 * time.Second)); slide.Title != "b" {
		t.Errorf("expected slide b at 30s, got %s", slide.Title)
	}

	// The rotation wraps around.
	if slide := carousel.Current(start.Add(90 * time.Second)); slide.Title != "a" {
		t.Errorf("expected slide a at 90s, got %s", slide.Title)
	}
}

func TestCarouselEmpty(t *testing.T) {
	carousel := &ads.Carousel{}

	if slide := carousel.Current(time.Now()); slide.Title != "" {
		t.Errorf("expected empty slide, got %s", slide.Title)
	}
}

func TestShowInterstitial(t *testing.T) {
	expected := map[int]bool{0: false, 1: false, 2: false, 3: true, 4: false, 6: true, 9: true}

	for count, want := range expected {
		if got := ads.ShowInterstitial(count); got != want {
			t.Errorf("ShowInterstitial(%d): expected %v, got %v", count, want, got)
		}
	}
}
