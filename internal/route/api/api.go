// Package api defines the JSON endpoints used by the mobile clients.
package api

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/currency"
	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/portfolio"
	"github.com/birikio/birikio/internal/session"
	"github.com/birikio/birikio/internal/store"
	"github.com/birikio/birikio/pkg/lax"
)

// AssetItem is one asset in the mobile asset list.
type AssetItem struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	CategoryLabel string          `json:"category_label"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Currency      string          `json:"currency"`
	ProfitLoss    decimal.Decimal `json:"profit_loss"`
}

// PortfolioSummary is the mobile portfolio overview.
type PortfolioSummary struct {
	TotalValue    decimal.Decimal  `json:"total_value"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	Change        decimal.Decimal  `json:"change"`
	ChangePercent decimal.Decimal  `json:"change_percent"`
	Currency      string           `json:"currency"`
	Breakdown     []BreakdownSlice `json:"breakdown"`
}

// BreakdownSlice is one category in the portfolio breakdown.
type BreakdownSlice struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Color    string          `json:"color"`
	Value    decimal.Decimal `json:"value"`
}

func loadUser(conn *database.Conn, request *lax.Request, user *model.User) *lax.Response {
	found, err := session.LoadUserFromSession(conn, request.Request, user)

	if err != nil {
		return lax.MakeResponse(http.StatusInternalServerError, "Internal Server Error")
	}

	if !found {
		return lax.MakeResponse(http.StatusUnauthorized, "Unauthorized")
	}

	return nil
}

// HandleAssetList serves the asset list for the mobile app.
func HandleAssetList(conn *database.Conn) http.HandlerFunc {
	return lax.Wrap(lax.View{
		Get: func(request *lax.Request) interface{} {
			var user model.User

			if response := loadUser(conn, request, &user); response != nil {
				return response
			}

			filter := store.AssetFilter{}

			if category := model.Category(request.URL.Query().Get("category")); category.Valid() {
				filter.Category = category
			}

			assetList, err := store.New(conn).ListAssets(user.ID, filter)

			if err != nil {
				return err
			}

			itemList := make([]AssetItem, 0, len(assetList))

			for i := range assetList {
				asset := &assetList[i]
				itemList = append(itemList, AssetItem{
					ID:            asset.ID,
					Name:          asset.Name,
					Category:      string(asset.Category),
					CategoryLabel: asset.Category.Info().Label,
					Quantity:      asset.Quantity,
					PurchasePrice: asset.PurchasePrice,
					CurrentPrice:  asset.CurrentPrice,
					Currency:      string(asset.Currency),
					ProfitLoss:    portfolio.ProfitLoss(asset),
				})
			}

			return itemList
		},
	})
}

// HandlePortfolio serves the portfolio summary for the mobile app.
func HandlePortfolio(conn *database.Conn) http.HandlerFunc {
	return lax.Wrap(lax.View{
		Get: func(request *lax.Request) interface{} {
			var user model.User

			if response := loadUser(conn, request, &user); response != nil {
				return response
			}

			assetList, err := store.New(conn).ListAssets(user.ID, store.AssetFilter{})

			if err != nil {
				return err
			}

			baseCurrency := currency.TRY

			if userSettings, err := store.New(conn).GetSettings(user.ID); err == nil {
				baseCurrency = userSettings.BaseCurrency
			}

			summary := portfolio.Summarize(assetList)
			sliceList := portfolio.Breakdown(assetList)
			breakdown := make([]BreakdownSlice, 0, len(sliceList))

			for _, slice := range sliceList {
				breakdown = append(breakdown, BreakdownSlice{
					Category: string(slice.Category),
					Label:    slice.Label,
					Color:    slice.Color,
					Value:    slice.Value,
				})
			}

			return PortfolioSummary{
				TotalValue:    summary.TotalValue,
				TotalCost:     summary.TotalCost,
				Change:        summary.Change,
				ChangePercent: summary.ChangePercent,
				Currency:      string(baseCurrency),
				Breakdown:     breakdown,
			}
		},
	})
}
