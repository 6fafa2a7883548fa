// Package billing defines routes for the PRO subscription
package billing

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/billing"
	"github.com/birikio/birikio/internal/currency"
	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/route/util"
	"github.com/birikio/birikio/internal/session"
	"github.com/birikio/birikio/internal/template"
)

var billingService *billing.Service

// Init wires the billing routes to the billing service.
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

type ProPageData struct {
	User            model.User
	IsPro           bool
	SubscriptionEnd string
	MonthlyPrice    string
	Interstitial    bool
}

// HandleViewProPage shows the PRO upgrade page, or the manage page for
// users who already subscribe.
func HandleViewProPage(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	data := ProPageData{
		MonthlyPrice: currency.Format(
			decimal.New(billing.ProPriceTRY, -2),
			currency.TRY,
		),
		Interstitial: request.URL.Query().Get("interstitial") == "1",
	}

	if !loadUser(conn, writer, request, &data.User) {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return
	}

	status := billingService.Status(data.User.ID)
	data.IsPro = status.IsPro

	if !status.SubscriptionEnd.IsZero() {
		data.SubscriptionEnd = status.SubscriptionEnd.Format("2006-01-02")
	}

	template.Render(template.Pro, writer, data)
}

// HandleCheckout starts a payment session and sends the user to the
// payment provider.
func HandleCheckout(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	baseURL := "https://" + request.Host

	checkoutURL, err := billingService.StartCheckout(
		&user,
		baseURL+"/payment/success?session_id={CHECKOUT_SESSION_ID}",
		baseURL+"/pro",
	)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	http.Redirect(writer, request, checkoutURL, http.StatusSeeOther)
}

type PaymentResultPageData struct {
	User model.User
}

// HandlePaymentReturn verifies payment after the provider sends the
// user back, and records the subscription when it went through.
func HandlePaymentReturn(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var data PaymentResultPageData

	if !loadUser(conn, writer, request, &data.User) {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return
	}

	sessionID := request.URL.Query().Get("session_id")

	if sessionID == "" {
		template.Render(template.PaymentFailure, writer, data)

		return
	}

	paid, err := billingService.VerifyPayment(data.User.ID, sessionID)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	if !paid {
		template.Render(template.PaymentFailure, writer, data)

		return
	}

	template.Render(template.PaymentSuccess, writer, data)
}

// HandleCancel cancels the user's subscription.
func HandleCancel(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	if err := billingService.Cancel(user.ID); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	http.Redirect(writer, request, "/pro", http.StatusFound)
}
