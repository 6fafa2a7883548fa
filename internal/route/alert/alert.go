// Package alert defines routes for price alerts
package alert

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	alertgroup "github.com/birikio/birikio/internal/alert"
	"github.com/birikio/birikio/internal/billing"
	"github.com/birikio/birikio/internal/currency"
	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/route/util"
	"github.com/birikio/birikio/internal/session"
	"github.com/birikio/birikio/internal/store"
	"github.com/birikio/birikio/internal/template"
)

var billingService *billing.Service

// Init wires the alert routes to the billing service.
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

// AlertView is one alert prepared for display.
type AlertView struct {
	ID            int
	AssetName     string
	CategoryLabel string
	TargetPrice   string
	Direction     string
	IsActive      bool
	IsTriggered   bool
	TriggeredAt   string
}

func makeAlertView(alert *model.PriceAlert) AlertView {
	view := AlertView{
		ID:            alert.ID,
		AssetName:     alert.AssetName,
		CategoryLabel: alert.AssetCategory.Info().Label,
		TargetPrice:   currency.Format(alert.TargetPrice, alert.Currency),
		Direction:     "below",
		IsActive:      alert.IsActive,
		IsTriggered:   alert.IsTriggered,
	}

	if alert.Above {
		view.Direction = "above"
	}

	if alert.TriggeredAt.Valid {
		view.TriggeredAt = alert.TriggeredAt.Time.Format("2006-01-02 15:04")
	}

	return view
}

func makeAlertViewList(alertList []model.PriceAlert) []AlertView {
	viewList := make([]AlertView, 0, len(alertList))

	for i := range alertList {
		viewList = append(viewList, makeAlertView(&alertList[i]))
	}

	return viewList
}

type AlertListPageData struct {
	User          model.User
	AlertsEnabled bool
	Triggered     []AlertView
	Active        []AlertView
	Inactive      []AlertView
	Categories    []model.Category
	Currencies    []currency.Currency
}

// HandleAlertList shows a user's alerts grouped into triggered, active
// and inactive buckets.
func HandleAlertList(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	data := AlertListPageData{
		Categories: model.Categories(),
		Currencies: currency.List(),
	}

	if !loadUser(conn, writer, request, &data.User) {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return
	}

	status := billingService.Status(data.User.ID)
	data.AlertsEnabled = status.CanUseAlerts()

	if data.AlertsEnabled {
		alertList, err := store.New(conn).ListAlerts(data.User.ID)

		if err != nil {
			util.RespondInternalServerError(writer, err)

			return
		}

		buckets := alertgroup.Classify(alertList)
		data.Triggered = makeAlertViewList(buckets.Triggered)
		data.Active = makeAlertViewList(buckets.Active)
		data.Inactive = makeAlertViewList(buckets.Inactive)
	}

	template.Render(template.AlertList, writer, data)
}

func loadAlertFromForm(
	writer http.ResponseWriter,
	request *http.Request,
	alert *model.PriceAlert,
) bool {
	request.ParseForm()

	alert.AssetName = request.Form.Get("asset_name")

	if alert.AssetName == "" {
		util.RespondValidationError(writer, "Asset name is required")

		return false
	}

	alert.AssetCategory = model.Category(request.Form.Get("asset_category"))

	if !alert.AssetCategory.Valid() {
		util.RespondValidationError(writer, "Invalid category")

		return false
	}

	var err error
	alert.TargetPrice, err = decimal.NewFromString(request.Form.Get("target_price"))

	if err != nil || !alert.TargetPrice.IsPositive() {
		util.RespondValidationError(writer, "Target price must be positive")

		return false
	}

	direction := request.Form.Get("direction")

	if direction != "above" && direction != "below" {
		util.RespondValidationError(writer, "Invalid direction")

		return false
	}

	alert.Above = direction == "above"
	alert.Currency = currency.Currency(request.Form.Get("currency"))

	if !alert.Currency.Valid() {
		util.RespondValidationError(writer, "Invalid currency")

		return false
	}

	return true
}

// HandleSubmitAlert creates an alert, which requires a plan with
// alerts enabled.
func HandleSubmitAlert(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User
	var alert model.PriceAlert

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	status := billingService.Status(user.ID)

	if !status.CanUseAlerts() {
		http.Redirect(writer, request, "/pro", http.StatusFound)

		return
	}

	if !loadAlertFromForm(writer, request, &alert) {
		return
	}

	alert.UserID = user.ID

	if err := store.New(conn).CreateAlert(&alert); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	http.Redirect(writer, request, "/alert", http.StatusFound)
}

func loadAlertForRequest(
	conn *database.Conn,
	writer http.ResponseWriter,
	request *http.Request,
	user *model.User,
	alert *model.PriceAlert,
) bool {
	alertID, err := strconv.Atoi(mux.Vars(request)["id"])

	if err != nil {
		util.RespondNotFound(writer)

		return false
	}

	*alert, err = store.New(conn).GetAlert(user.ID, alertID)

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

// HandleToggleAlert flips an alert between active and inactive. The
// triggered flag is never changed from here.
func HandleToggleAlert(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User
	var alert model.PriceAlert

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	if !loadAlertForRequest(conn, writer, request, &user, &alert) {
		return
	}

	if err := store.New(conn).SetAlertActive(user.ID, alert.ID, !alert.IsActive); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	http.Redirect(writer, request, "/alert", http.StatusFound)
}

// HandleDeleteAlert removes an alert.
func HandleDeleteAlert(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User
	var alert model.PriceAlert

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	if !loadAlertForRequest(conn, writer, request, &user, &alert) {
		return
	}

	if err := store.New(conn).DeleteAlert(user.ID, alert.ID); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	writer.WriteHeader(http.StatusNoContent)
}
