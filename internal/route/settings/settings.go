// Package settings defines routes for user preferences
package settings

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/birikio/birikio/internal/currency"
	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/route/util"
	"github.com/birikio/birikio/internal/session"
	"github.com/birikio/birikio/internal/store"
	"github.com/birikio/birikio/internal/template"
)

type SettingsPageData struct {
	User                 model.User
	BaseCurrency         currency.Currency
	Currencies           []currency.Currency
	Theme                string
	NotificationsEnabled bool
	PinEnabled           bool
}

func loadUser(conn *database.Conn, writer http.ResponseWriter, request *http.Request, user *model.User) bool {
	found, err := session.LoadUserFromSession(conn, request, user)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return false
	}

	return found
}

// HandleViewSettings shows a user's preferences, creating the default
// row for users who have none yet.
func HandleViewSettings(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	data := SettingsPageData{Currencies: currency.List()}

	if !loadUser(conn, writer, request, &data.User) {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return
	}

	userSettings, err := store.New(conn).EnsureSettings(data.User.ID)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	data.BaseCurrency = userSettings.BaseCurrency
	data.Theme = userSettings.Theme
	data.NotificationsEnabled = userSettings.NotificationsEnabled
	data.PinEnabled = userSettings.PinEnabled

	template.Render(template.Settings, writer, data)
}

// HandleUpdateSettings saves a user's preferences. The PIN is only
// replaced when a new one is submitted.
func HandleUpdateSettings(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User

	if !loadUser(conn, writer, request, &user) {
		util.RespondForbidden(writer)

		return
	}

	userSettings, err := store.New(conn).EnsureSettings(user.ID)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	request.ParseForm()

	baseCurrency := currency.Currency(request.Form.Get("base_currency"))

	if !baseCurrency.Valid() {
		util.RespondValidationError(writer, "Invalid currency")

		return
	}

	theme := request.Form.Get("theme")

	if theme != "dark" && theme != "light" {
		util.RespondValidationError(writer, "Invalid theme")

		return
	}

	userSettings.BaseCurrency = baseCurrency
	userSettings.Theme = theme
	userSettings.NotificationsEnabled = request.Form.Get("notifications_enabled") == "on"

	switch {
	case request.Form.Get("pin_enabled") != "on":
		userSettings.PinEnabled = false
		userSettings.PinCode = ""
	case request.Form.Get("pin_code") != "":
		pinCode := request.Form.Get("pin_code")

		if len(pinCode) < 4 {
			util.RespondValidationError(writer, "PIN must be at least 4 digits")

			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(pinCode), bcrypt.DefaultCost)

		if err != nil {
			util.RespondInternalServerError(writer, err)

			return
		}

		userSettings.PinEnabled = true
		userSettings.PinCode = string(hash)
	case !userSettings.PinEnabled:
		util.RespondValidationError(writer, "A PIN is required to enable the PIN lock")

		return
	}

	if err := store.New(conn).UpdateSettings(&userSettings); err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	http.Redirect(writer, request, "/settings", http.StatusFound)
}
