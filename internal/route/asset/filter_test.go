package asset

import (
	"testing"

	"github.com/birikio/birikio/internal/model"
)

func TestMatchAsset(t *testing.T) {
	gold := model.Asset{Name: "Çeyrek Altın", Category: model.CategoryGold}

	if !matchAsset(&gold, "", "") {
		t.Error("No filters should match every asset")
	}

	if !matchAsset(&gold, "altın", "") {
		t.Error("The search should match case-insensitively")
	}

	if matchAsset(&gold, "bitcoin", "") {
		t.Error("A non-matching search should filter the asset out")
	}

	if !matchAsset(&gold, "", model.CategoryGold) {
		t.Error("The matching category should keep the asset")
	}

	if matchAsset(&gold, "", model.CategoryCrypto) {
		t.Error("A different category should filter the asset out")
	}

	if !matchAsset(&gold, "", "bogus") {
		t.Error("An unknown category should not filter anything")
	}
}
