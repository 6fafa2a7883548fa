// Package portfolio computes valuation figures for a user's holdings.
package portfolio

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the aggregate figures for a set of holdings.
//
// Values are summed as-is across per-asset currencies and shown in the
// user's base currency. That approximation is deliberate; no FX
// conversion happens during aggregation.
type Summary struct {
	TotalValue    decimal.Decimal
	TotalCost     decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
}

// Summarize computes the totals over all non-sold assets.
//
// An empty list yields all-zero totals.
func Summarize(assetList []model.Asset) Summary {
	summary := Summary{
		TotalValue:    decimal.Zero,
		TotalCost:     decimal.Zero,
		Change:        decimal.Zero,
		ChangePercent: decimal.Zero,
	}

	for _, asset := range assetList {
		if asset.IsSold {
			continue
		}

		summary.TotalValue = summary.TotalValue.Add(asset.Quantity.Mul(asset.CurrentPrice))
		summary.TotalCost = summary.TotalCost.Add(asset.Quantity.Mul(asset.PurchasePrice))
	}

	summary.Change = summary.TotalValue.Sub(summary.TotalCost)

	if !summary.TotalCost.IsZero() {
		summary.ChangePercent = summary.Change.Div(summary.TotalCost).Mul(hundred)
	}

	return summary
}

// Slice is one category's share of the portfolio, tagged with its
// display metadata for the pie chart.
type Slice struct {
	Category model.Category
	Label    string
	Color    string
	Value    decimal.Decimal
}

// Breakdown groups non-sold assets by category, summing current value
// per group. Known categories come out in display order, unknown ones
// after, in first-seen order. Categories with no assets are omitted,
// so an empty list produces an empty breakdown.
func Breakdown(assetList []model.Asset) []Slice {
	values := map[model.Category]decimal.Decimal{}
	var unknownOrder []model.Category

	for _, asset := range assetList {
		if asset.IsSold {
			continue
		}

		if _, seen := values[asset.Category]; !seen && !asset.Category.Valid() {
			unknownOrder = append(unknownOrder, asset.Category)
		}

		value := asset.Quantity.Mul(asset.CurrentPrice)
		values[asset.Category] = values[asset.Category].Add(value)
	}

	order := append(model.Categories(), unknownOrder...)
	sliceList := make([]Slice, 0, len(values))

	for _, category := range order {
		value, ok := values[category]

		if !ok {
			continue
		}

		info := category.Info()
		sliceList = append(sliceList, Slice{
			Category: category,
			Label:    info.Label,
			Color:    info.Color,
			Value:    value,
		})
	}

	return sliceList
}

// ProfitLoss returns the unrealised gain of a single holding.
func ProfitLoss(asset *model.Asset) decimal.Decimal {
	return asset.CurrentPrice.Sub(asset.PurchasePrice).Mul(asset.Quantity)
}

// ProfitLossPercent returns the unrealised gain relative to the
// purchase cost, or zero when nothing was paid for the holding.
func ProfitLossPercent(asset *model.Asset) decimal.Decimal {
	cost := asset.PurchasePrice.Mul(asset.Quantity)

	if cost.IsZero() {
		return decimal.Zero
	}

	return ProfitLoss(asset).Div(cost).Mul(hundred)
}

// MakeBuyTransaction builds the transaction record for acquiring a
// holding. Buys carry no realised profit.
func MakeBuyTransaction(asset *model.Asset, boughtAt time.Time) model.Transaction {
	return model.Transaction{
		UserID:          asset.UserID,
		AssetID:         sql.NullInt64{Int64: int64(asset.ID), Valid: true},
		AssetName:       asset.Name,
		Type:            model.TransactionBuy,
		Quantity:        asset.Quantity,
		PricePerUnit:    asset.PurchasePrice,
		TotalAmount:     asset.PurchasePrice.Mul(asset.Quantity),
		Currency:        asset.Currency,
		TransactionDate: boughtAt,
	}
}

// MakeSellTransaction builds the immutable transaction record for
// selling a holding at the given unit price.
func MakeSellTransaction(asset *model.Asset, soldPrice decimal.Decimal, soldAt time.Time) model.Transaction {
	return model.Transaction{
		UserID:          asset.UserID,
		AssetID:         sql.NullInt64{Int64: int64(asset.ID), Valid: true},
		AssetName:       asset.Name,
		Type:            model.TransactionSell,
		Quantity:        asset.Quantity,
		PricePerUnit:    soldPrice,
		TotalAmount:     soldPrice.Mul(asset.Quantity),
		Currency:        asset.Currency,
		ProfitLoss:      decimal.NewNullDecimal(soldPrice.Sub(asset.PurchasePrice).Mul(asset.Quantity)),
		TransactionDate: soldAt,
	}
}
