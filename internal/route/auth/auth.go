// Package auth defines routes for logging in and out
package auth

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/route/util"
	"github.com/birikio/birikio/internal/session"
	"github.com/birikio/birikio/internal/store"
	"github.com/birikio/birikio/internal/template"
)

type LoginPageData struct {
	ErrorMessage string
}

func HandleViewLoginForm(writer http.ResponseWriter, request *http.Request) {
	template.Render(template.Login, writer, LoginPageData{})
}

func HandleLogin(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	request.ParseForm()
	username := request.Form.Get("username")
	password := request.Form.Get("password")

	loginValid := false
	s := store.New(conn)

	if len(username) > 0 && len(password) > 0 {
		user, passwordHash, err := s.GetUserByUsername(username)

		if err == nil {
			if bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil {
				loginValid = true

				if err := session.SaveUserInSession(writer, request, &user); err != nil {
					util.RespondInternalServerError(writer, err)

					return
				}
			}
		} else if !store.IsNotFound(err) {
			util.RespondInternalServerError(writer, err)

			return
		}
	}

	if loginValid {
		http.Redirect(writer, request, "/", http.StatusFound)
	} else {
		template.Render(template.Login, writer, LoginPageData{
			ErrorMessage: "Geçersiz kullanıcı adı veya şifre",
		})
	}
}

func HandleLogout(writer http.ResponseWriter, request *http.Request) {
	session.ClearSession(writer, request)
	http.Redirect(writer, request, "/login", http.StatusFound)
}

type UnlockPageData struct {
	ErrorMessage string
}

func loadUserForUnlock(
	conn *database.Conn,
	writer http.ResponseWriter,
	request *http.Request,
	user *model.User,
) bool {
	found, err := session.LoadUserFromSession(conn, request, user)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return false
	}

	if !found {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return false
	}

	return true
}

// HandleViewUnlockForm shows the PIN prompt for sessions that have not
// passed the PIN lock yet.
func HandleViewUnlockForm(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User

	if !loadUserForUnlock(conn, writer, request, &user) {
		return
	}

	template.Render(template.Unlock, writer, UnlockPageData{})
}

// HandleUnlock compares the submitted PIN against the stored hash and
// unlocks the session on a match.
func HandleUnlock(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var user model.User

	if !loadUserForUnlock(conn, writer, request, &user) {
		return
	}

	userSettings, err := store.New(conn).GetSettings(user.ID)

	if err != nil {
		if store.IsNotFound(err) {
			// No settings row means no PIN lock to pass.
			http.Redirect(writer, request, "/", http.StatusFound)
		} else {
			util.RespondInternalServerError(writer, err)
		}

		return
	}

	if !userSettings.PinEnabled {
		http.Redirect(writer, request, "/", http.StatusFound)

		return
	}

	request.ParseForm()
	pinCode := request.Form.Get("pin_code")

	if bcrypt.CompareHashAndPassword([]byte(userSettings.PinCode), []byte(pinCode)) == nil {
		if err := session.MarkPinVerified(writer, request); err != nil {
			util.RespondInternalServerError(writer, err)

			return
		}

		http.Redirect(writer, request, "/", http.StatusFound)

		return
	}

	template.Render(template.Unlock, writer, UnlockPageData{
		ErrorMessage: "Hatalı PIN",
	})
}
