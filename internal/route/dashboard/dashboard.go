// Package dashboard defines the portfolio overview page
package dashboard

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/ads"
	"github.com/birikio/birikio/internal/billing"
	"github.com/birikio/birikio/internal/currency"
	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/portfolio"
	"github.com/birikio/birikio/internal/route/util"
	"github.com/birikio/birikio/internal/session"
	"github.com/birikio/birikio/internal/snapshot"
	"github.com/birikio/birikio/internal/store"
	"github.com/birikio/birikio/internal/template"
	"github.com/birikio/birikio/pkg/log"
)

var hundred = decimal.NewFromInt(100)

var billingService *billing.Service
var snapshots *snapshot.Conn

// Init wires the dashboard to billing and the snapshot history store.
//
// The snapshot connection may be nil; the page then renders without a
// wealth history section.
func Init(service *billing.Service, snapshotConn *snapshot.Conn) {
	billingService = service
	snapshots = snapshotConn
}

type SliceView struct {
	Label   string
	Color   string
	Value   string
	Percent string
}

type HistoryPointView struct {
	Date  string
	Value string
}

type DashboardPageData struct {
	User          model.User
	HasAssets     bool
	TotalValue    string
	Change        string
	ChangePercent string
	Positive      bool
	Slices        []SliceView
	History       []HistoryPointView
	ShowAds       bool
	Ad            ads.Slide
}

// HandleDashboard shows the aggregated portfolio for a user.
func HandleDashboard(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User
	found, err := session.LoadUserFromSession(conn, request, &user)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	if !found {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return
	}

	s := store.New(conn)
	baseCurrency := currency.TRY

	if userSettings, err := s.GetSettings(user.ID); err == nil {
		if userSettings.PinEnabled && !session.PinVerified(request) {
			http.Redirect(writer, request, "/unlock", http.StatusFound)

			return
		}

		baseCurrency = userSettings.BaseCurrency
	} else if !store.IsNotFound(err) {
		util.RespondInternalServerError(writer, err)

		return
	}

	assetList, err := s.ListAssets(user.ID, store.AssetFilter{})

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	summary := portfolio.Summarize(assetList)
	sliceList := portfolio.Breakdown(assetList)
	status := billingService.Status(user.ID)

	data := DashboardPageData{
		User:          user,
		HasAssets:     len(assetList) > 0,
		TotalValue:    currency.Format(summary.TotalValue, baseCurrency),
		Change:        currency.Format(summary.Change, baseCurrency),
		ChangePercent: summary.ChangePercent.StringFixed(2),
		Positive:      !summary.Change.IsNegative(),
		ShowAds:       status.ShouldShowAds(),
	}

	if data.ShowAds {
		data.Ad = ads.DefaultCarousel.Current(time.Now())
	}

	for _, slice := range sliceList {
		view := SliceView{
			Label: slice.Label,
			Color: slice.Color,
			Value: currency.Format(slice.Value, baseCurrency),
		}

		if !summary.TotalValue.IsZero() {
			percent := slice.Value.Div(summary.TotalValue).Mul(hundred)
			view.Percent = percent.StringFixed(1)
		}

		data.Slices = append(data.Slices, view)
	}

	if snapshots != nil {
		pointList, err := snapshots.History(user.ID, 180)

		if err != nil {
			// History is decoration; the dashboard still works without it.
			log.Warnf("snapshot history for user %d: %s", user.ID, err)
		}

		for _, point := range pointList {
			data.History = append(data.History, HistoryPointView{
				Date:  point.Time.Format("2006-01-02"),
				Value: currency.Format(point.TotalValue, baseCurrency),
			})
		}
	}

	template.Render(template.Dashboard, writer, data)
}
