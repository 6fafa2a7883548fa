// Package asset defines routes for managing holdings
package asset

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/ads"
	"github.com/birikio/birikio/internal/billing"
	"github.com/birikio/birikio/internal/currency"
	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/entitlement"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/portfolio"
	"github.com/birikio/birikio/internal/route/util"
	"github.com/birikio/birikio/internal/session"
	"github.com/birikio/birikio/internal/store"
	"github.com/birikio/birikio/internal/template"
)

var billingService *billing.Service

// Init wires the asset routes to the billing service.
func Init(service *billing.Service) {
	billingService = service
}

func loadUser(conn *database.Conn, writer http.ResponseWriter, request *http.Request, user *model.User) bool {
	found, err := session.LoadUserFromSession(conn, request, user)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return false
	}

	return found
}

// AssetView is one holding prepared for display.
type AssetView struct {
	ID                int
	Name              string
	CategoryLabel     string
	CategoryColor     string
	Quantity          string
	PurchasePrice     string
	CurrentPrice      string
	Value             string
	ProfitLoss        string
	ProfitLossPercent string
	Positive          bool
	IsSold            bool
	SoldPrice         string
	Notes             string
}

func makeAssetView(asset *model.Asset) AssetView {
	info := asset.Category.Info()
	profitLoss := portfolio.ProfitLoss(asset)

	view := AssetView{
		ID:                asset.ID,
		Name:              asset.Name,
		CategoryLabel:     info.Label,
		CategoryColor:     info.Color,
		Quantity:          asset.Quantity.String(),
		PurchasePrice:     currency.Format(asset.PurchasePrice, asset.Currency),
		CurrentPrice:      currency.Format(asset.CurrentPrice, asset.Currency),
		Value:             currency.Format(asset.Quantity.Mul(asset.CurrentPrice), asset.Currency),
		ProfitLoss:        currency.Format(profitLoss, asset.Currency),
		ProfitLossPercent: portfolio.ProfitLossPercent(asset).StringFixed(2),
		Positive:          !profitLoss.IsNegative(),
		IsSold:            asset.IsSold,
		Notes:             asset.Notes,
	}

	if asset.SoldPrice.Valid {
		view.SoldPrice = currency.Format(asset.SoldPrice.Decimal, asset.Currency)
	}

	return view
}

type AssetListPageData struct {
	User          model.User
	Assets        []AssetView
	SearchQuery   string
	Category      model.Category
	Categories    []model.Category
	IsPro         bool
	AssetCount    int
	AssetLimit    int
	ShowAds       bool
	Ad            ads.Slide
	LimitExceeded bool
}

// HandleAssetList shows a user's non-sold holdings with search and
// category filtering.
func HandleAssetList(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User

	if !loadUser(conn, writer, request, &user) {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return
	}

	searchQuery := request.URL.Query().Get("q")
	category := model.Category(request.URL.Query().Get("category"))

	// Load every non-sold asset so the count behind the free-tier
	// limit banner ignores the search and category filters.
	s := store.New(conn)
	assetList, err := s.ListAssets(user.ID, store.AssetFilter{})

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	status := billingService.Status(user.ID)

	data := AssetListPageData{
		User:        user,
		SearchQuery: searchQuery,
		Category:    category,
		Categories:  model.Categories(),
		IsPro:       status.IsPro,
		AssetCount:  len(assetList),
		AssetLimit:  entitlement.FreeAssetLimit,
		ShowAds:     status.ShouldShowAds(),
	}
	data.LimitExceeded = !status.CheckAssetLimit(data.AssetCount)

	if data.ShowAds {
		data.Ad = ads.DefaultCarousel.Current(time.Now())
	}

	for i := range assetList {
		asset := &assetList[i]

		if matchAsset(asset, searchQuery, category) {
			data.Assets = append(data.Assets, makeAssetView(asset))
		}
	}

	template.Render(template.AssetList, writer, data)
}

// matchAsset applies the list page's search and category filters.
func matchAsset(asset *model.Asset, searchQuery string, category model.Category) bool {
	if category.Valid() && asset.Category != category {
		return false
	}

	if searchQuery != "" && !strings.Contains(
		strings.ToLower(asset.Name),
		strings.ToLower(searchQuery),
	) {
		return false
	}

	return true
}

type AssetFormPageData struct {
	User       model.User
	Asset      model.Asset
	Categories []model.Category
	Currencies []currency.Currency
	IsNew      bool
}

// HandleViewNewAssetForm shows the empty form for adding a holding.
func HandleViewNewAssetForm(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	data := AssetFormPageData{
		Categories: model.Categories(),
		Currencies: currency.List(),
		IsNew:      true,
	}
	data.Asset.Currency = currency.TRY

	if !loadUser(conn, writer, request, &data.User) {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return
	}

	template.Render(template.AssetForm, writer, data)
}

func loadAssetForRequest(
	conn *database.Conn,
	writer http.ResponseWriter,
	request *http.Request,
	user *model.User,
	asset *model.Asset,
) bool {
	assetID, err := strconv.Atoi(mux.Vars(request)["id"])

	if err != nil {
		util.RespondNotFound(writer)

		return false
	}

	*asset, err = store.New(conn).GetAsset(user.ID, assetID)

	if err != nil {
		if store.IsNotFound(err) {
			util.RespondNotFound(writer)
		} else {
			util.RespondInternalServerError(writer, err)
		}

		return false
	}

	return true
}

// HandleViewAssetForm shows the form for editing a holding.
func HandleViewAssetForm(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	data := AssetFormPageData{
		Categories: model.Categories(),
		Currencies: currency.List(),
	}

	if !loadUser(conn, writer, request, &data.User) {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return
	}

	if loadAssetForRequest(conn, writer, request, &data.User, &data.Asset) {
		template.Render(template.AssetForm, writer, data)
	}
}

func loadAssetFromForm(
	writer http.ResponseWriter,
	request *http.Request,
	asset *model.Asset,
) bool {
	request.ParseForm()

	asset.Name = strings.TrimSpace(request.Form.Get("name"))

	if asset.Name == "" {
		util.RespondValidationError(writer, "Name is required")

		return false
	}

	asset.Category = model.Category(request.Form.Get("category"))

	if !asset.Category.Valid() {
		util.RespondValidationError(writer, "Invalid category")

		return false
	}

	var err error
	asset.Quantity, err = decimal.NewFromString(request.Form.Get("quantity"))

	if err != nil || asset.Quantity.IsNegative() {
		util.RespondValidationError(writer, "Quantity must be a non-negative number")

		return false
	}

	asset.PurchasePrice, err = decimal.NewFromString(request.Form.Get("purchase_price"))

	if err != nil || asset.PurchasePrice.IsNegative() {
		util.RespondValidationError(writer, "Invalid purchase price")

		return false
	}

	asset.CurrentPrice, err = decimal.NewFromString(request.Form.Get("current_price"))

	if err != nil || asset.CurrentPrice.IsNegative() {
		util.RespondValidationError(writer, "Invalid current price")

		return false
	}

	asset.Currency = currency.Currency(request.Form.Get("currency"))

	if !asset.Currency.Valid() {
		util.RespondValidationError(writer, "Invalid currency")

		return false
	}

	if dateValue := request.Form.Get("purchase_date"); dateValue != "" {
		parsed, err := time.Parse("2006-01-02", dateValue)

		if err != nil {
			util.RespondValidationError(writer, "Invalid purchase date")

			return false
		}

		asset.PurchaseDate = sql.NullTime{Time: parsed, Valid: true}
	}

	asset.Notes = request.Form.Get("notes")

	return true
}

// HandleSubmitAsset creates a holding, enforcing the free-tier cap on
// the count of non-sold assets.
func HandleSubmitAsset(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User
	var asset model.Asset

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	s := store.New(conn)
	assetList, err := s.ListAssets(user.ID, store.AssetFilter{})

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	status := billingService.Status(user.ID)

	if !status.CheckAssetLimit(len(assetList)) {
		http.Redirect(writer, request, "/pro", http.StatusFound)

		return
	}

	if !loadAssetFromForm(writer, request, &asset) {
		return
	}

	asset.UserID = user.ID

	if !asset.PurchaseDate.Valid {
		asset.PurchaseDate = nullTimeNow()
	}

	if err := s.CreateAsset(&asset); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	transaction := portfolio.MakeBuyTransaction(&asset, asset.PurchaseDate.Time)

	if err := s.CreateTransaction(&transaction); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	maybeShowInterstitial(writer, request, status, "/asset")
}

// HandleUpdateAsset saves edits to a held asset. Sold assets are
// read-only.
func HandleUpdateAsset(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User
	var asset model.Asset

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	if !loadAssetForRequest(conn, writer, request, &user, &asset) {
		return
	}

	if asset.IsSold {
		util.RespondValidationError(writer, "Sold assets can no longer be edited")

		return
	}

	if !loadAssetFromForm(writer, request, &asset) {
		return
	}

	if err := store.New(conn).UpdateAsset(&asset); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	http.Redirect(writer, request, "/asset", http.StatusFound)
}

// HandleSellAsset marks a holding sold and appends the matching
// immutable sell transaction.
func HandleSellAsset(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User
	var asset model.Asset

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	if !loadAssetForRequest(conn, writer, request, &user, &asset) {
		return
	}

	if asset.IsSold {
		util.RespondValidationError(writer, "Asset is already sold")

		return
	}

	request.ParseForm()
	soldPrice, err := decimal.NewFromString(request.Form.Get("sold_price"))

	if err != nil || soldPrice.IsNegative() {
		util.RespondValidationError(writer, "Invalid sale price")

		return
	}

	s := store.New(conn)
	soldAt := time.Now()

	// A double-submitted sell loses the race inside MarkAssetSold, so
	// only the winning request records a sell transaction.
	if err := s.MarkAssetSold(user.ID, asset.ID, soldPrice, soldAt); err != nil {
		if store.IsNotFound(err) {
			util.RespondValidationError(writer, "Asset is already sold")
		} else {
			util.RespondInternalServerError(writer, err)
		}

		return
	}

	transaction := portfolio.MakeSellTransaction(&asset, soldPrice, soldAt)

	if err := s.CreateTransaction(&transaction); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	status := billingService.Status(user.ID)
	maybeShowInterstitial(writer, request, status, "/asset")
}

// HandleDeleteAsset removes a holding.
func HandleDeleteAsset(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User
	var asset model.Asset

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	if !loadAssetForRequest(conn, writer, request, &user, &asset) {
		return
	}

	if err := store.New(conn).DeleteAsset(user.ID, asset.ID); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

func nullTimeNow() sql.NullTime {
	return sql.NullTime{Time: time.Now(), Valid: true}
}

// maybeShowInterstitial redirects to the interstitial ad page every
// third gated action for ad-supported users, otherwise straight on.
func maybeShowInterstitial(
	writer http.ResponseWriter,
	request *http.Request,
	status entitlement.Status,
	next string,
) {
	if status.ShouldShowAds() {
		count := session.BumpActionCount(writer, request)

		if ads.ShowInterstitial(count) {
			http.Redirect(writer, request, "/pro?interstitial=1", http.StatusFound)

			return
		}
	}

	http.Redirect(writer, request, next, http.StatusFound)
}
