package portfolio_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/portfolio"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func makeAsset(quantity, purchasePrice, currentPrice string) model.Asset {
	return model.Asset{
		Quantity:      dec(quantity),
		PurchasePrice: dec(purchasePrice),
		CurrentPrice:  dec(currentPrice),
	}
}

func TestSummarizeEmptyPortfolio(t *testing.T) {
	summary := portfolio.Summarize(nil)

	if !summary.TotalValue.IsZero() {
		t.Errorf("expected zero total value, got %s", summary.TotalValue)
	}

	if !summary.ChangePercent.IsZero() {
		t.Errorf("expected zero change percent, got %s", summary.ChangePercent)
	}
}

func TestSummarize(t *testing.T) {
	assetList := []model.Asset{
		makeAsset("2", "100", "150"),
		makeAsset("1", "50", "40"),
	}

	summary := portfolio.Summarize(assetList)

	if summary.TotalValue.String() != "340" {
		t.Errorf("expected total value 340, got %s", summary.TotalValue)
	}

	if summary.TotalCost.String() != "250" {
		t.Errorf("expected total cost 250, got %s", summary.TotalCost)
	}

	if summary.Change.String() != "90" {
		t.Errorf("expected change 90, got %s", summary.Change)
	}

	if summary.ChangePercent.StringFixed(2) != "36.00" {
		t.Errorf("expected change percent 36.00, got %s", summary.ChangePercent)
	}
}

func TestSummarizeSkipsSoldAssets(t *testing.T) {
	sold := makeAsset("10", "10", "20")
	sold.IsSold = true

	summary := portfolio.Summarize([]model.Asset{
		sold,
		makeAsset("1", "100", "110"),
	})

	if summary.TotalValue.String() != "110" {
		t.Errorf("expected sold asset excluded, got total %s", summary.TotalValue)
	}
}

func TestSummarizeZeroCostBasis(t *testing.T) {
	summary := portfolio.Summarize([]model.Asset{
		makeAsset("1", "0", "100"),
	})

	if !summary.ChangePercent.IsZero() {
		t.Errorf("expected zero percent on zero cost basis, got %s", summary.ChangePercent)
	}
}

func TestProfitLoss(t *testing.T) {
	asset := makeAsset("2", "100", "150")
	profitLoss := portfolio.ProfitLoss(&asset)

	if profitLoss.String() != "100" {
		t.Errorf("expected profit 100, got %s", profitLoss)
	}

	percent := portfolio.ProfitLossPercent(&asset)

	if percent.StringFixed(2) != "50.00" {
		t.Errorf("expected percent 50.00, got %s", percent)
	}
}

func TestBreakdownOrderAndColors(t *testing.T) {
	gold := makeAsset("1", "100", "100")
	gold.Category = model.CategoryGold
	crypto := makeAsset("1", "200", "200")
	crypto.Category = model.CategoryCrypto

	// Crypto comes first in the input but gold leads the display order.
	sliceList := portfolio.Breakdown([]model.Asset{crypto, gold})

	if len(sliceList) != 2 {
		t.Fatalf("expected 2 slices, got %d", len(sliceList))
	}

	if sliceList[0].Category != model.CategoryGold {
		t.Errorf("expected gold first, got %s", sliceList[0].Category)
	}

	if sliceList[0].Color != "#D4AF37" {
		t.Errorf("expected gold color #D4AF37, got %s", sliceList[0].Color)
	}

	if sliceList[1].Color != "#F7931A" {
		t.Errorf("expected crypto color #F7931A, got %s", sliceList[1].Color)
	}
}

func TestBreakdownOmitsAbsentCategories(t *testing.T) {
	stock := makeAsset("1", "10", "10")
	stock.Category = model.CategoryStock

	sliceList := portfolio.Breakdown([]model.Asset{stock})

	if len(sliceList) != 1 {
		t.Fatalf("expected only held categories, got %d slices", len(sliceList))
	}
}

func TestMakeBuyTransaction(t *testing.T) {
	asset := makeAsset("2", "100", "150")
	asset.ID = 7
	asset.Name = "Çeyrek Altın"
	asset.UserID = 3

	boughtAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	transaction := portfolio.MakeBuyTransaction(&asset, boughtAt)

	if transaction.Type != model.TransactionBuy {
		t.Errorf("expected buy type, got %s", transaction.Type)
	}

	if transaction.TotalAmount.String() != "200" {
		t.Errorf("expected total 200, got %s", transaction.TotalAmount)
	}

	if transaction.ProfitLoss.Valid {
		t.Errorf("expected no realised profit on a buy, got %v", transaction.ProfitLoss)
	}

	if !transaction.AssetID.Valid || transaction.AssetID.Int64 != 7 {
		t.Errorf("expected asset id 7, got %v", transaction.AssetID)
	}

	if !transaction.TransactionDate.Equal(boughtAt) {
		t.Errorf("expected transaction date %s, got %s", boughtAt, transaction.TransactionDate)
	}
}

func TestMakeSellTransaction(t *testing.T) {
	asset := makeAsset("2", "100", "150")
	asset.ID = 7
	asset.Name = "Çeyrek Altın"
	asset.Category = model.CategoryGold

	soldAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	transaction := portfolio.MakeSellTransaction(&asset, dec("160"), soldAt)

	if transaction.Type != model.TransactionSell {
		t.Errorf("expected sell type, got %s", transaction.Type)
	}

	if transaction.TotalAmount.String() != "320" {
		t.Errorf("expected total 320, got %s", transaction.TotalAmount)
	}

	if !transaction.ProfitLoss.Valid || transaction.ProfitLoss.Decimal.String() != "120" {
		t.Errorf("expected profit 120, got %v", transaction.ProfitLoss)
	}

	if !transaction.AssetID.Valid || transaction.AssetID.Int64 != 7 {
		t.Errorf("expected asset id 7, got %v", transaction.AssetID)
	}

	if !transaction.TransactionDate.Equal(soldAt) {
		t.Errorf("expected transaction date %s, got %s", soldAt, transaction.TransactionDate)
	}
}
