package model_test

import (
	"testing"

	"github.com/birikio/birikio/internal/model"
)

func TestCategoryInfo(t *testing.T) {
	info := model.CategoryGold.Info()

	if info.Label != "Altın" {
		t.Errorf("expected Altın, got %s", info.Label)
	}

	if info.Color != "#D4AF37" {
		t.Errorf("expected #D4AF37, got %s", info.Color)
	}
}

func TestCategoryInfoUnknown(t *testing.T) {
	info := model.Category("vintage-cars").Info()

	if info.Label != "vintage-cars" {
		t.Errorf("expected raw name as label, got %s", info.Label)
	}

	if info.Color != "#6B7280" {
		t.Errorf("expected neutral color, got %s", info.Color)
	}
}

func TestCategoriesOrder(t *testing.T) {
	categories := model.Categories()

	if len(categories) != 5 {
		t.Fatalf("expected 5 categories, got %d", len(categories))
	}

	if categories[0] != model.CategoryGold || categories[4] != model.CategoryOther {
		t.Errorf("unexpected display order: %v", categories)
	}
}

func TestCategoryValid(t *testing.T) {
	if !model.CategoryCrypto.Valid() {
		t.Error("expected crypto to be valid")
	}

	if model.Category("bonds").Valid() {
		t.Error("expected bonds to be invalid")
	}
}
