// Package session handles saving/loading users to/from sessions
package session

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/sessions"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
)

var sessionStore *sessions.CookieStore

// InitSessionStorage starts up session storage or crashes the program with an error
func InitSessionStorage() {
	secretKey := os.Getenv("SECRET_KEY")

	if len(secretKey) == 0 {
		fmt.Fprintf(os.Stderr, "No SECRET_KEY variable set!\n")
		os.Exit(1)
	}

	sessionStore = sessions.NewCookieStore([]byte(secretKey))
}

// LoadUserFromSession loads the logged-in user, returning false when
// there is no valid session.
func LoadUserFromSession(conn database.Queryable, request *http.Request, user *model.User) (bool, error) {
	session, sessionError := sessionStore.Get(request, "sessionid")

	if sessionError != nil {
		return false, nil
	}

	userID, ok := session.Values["userID"].(int)

	if !ok {
		return false, nil
	}

	row := conn.QueryRow(
		"select username from birikio_user where id = $1",
		userID,
	)

	var username string

	if err := row.Scan(&username); err != nil {
		if err == database.ErrNoRows {
			return false, nil
		}

		return false, err
	}

	user.ID = userID
	user.Username = username

	return true, nil
}

func SaveUserInSession(writer http.ResponseWriter, request *http.Request, user *model.User) error {
	session, _ := sessionStore.Get(request, "sessionid")
	session.Values["userID"] = user.ID
	// A fresh login has to pass the PIN lock again.
	delete(session.Values, "pinVerified")

	return session.Save(request, writer)
}

// MarkPinVerified records that this session passed the PIN lock.
func MarkPinVerified(writer http.ResponseWriter, request *http.Request) error {
	session, _ := sessionStore.Get(request, "sessionid")
	session.Values["pinVerified"] = true

	return session.Save(request, writer)
}

// PinVerified reports whether this session passed the PIN lock.
func PinVerified(request *http.Request) bool {
	session, err := sessionStore.Get(request, "sessionid")

	if err != nil {
		return false
	}

	verified, _ := session.Values["pinVerified"].(bool)

	return verified
}

func ClearSession(writer http.ResponseWriter, request *http.Request) error {
	session, _ := sessionStore.Get(request, "sessionid")

	for key := range session.Values {
		delete(session.Values, key)
	}

	return session.Save(request, writer)
}

// BumpActionCount increments the per-session counter of gated actions
// used to pace interstitial ads, returning the new count.
func BumpActionCount(writer http.ResponseWriter, request *http.Request) int {
	session, _ := sessionStore.Get(request, "sessionid")
	count, _ := session.Values["actionCount"].(int)
	count++
	session.Values["actionCount"] = count
	session.Save(request, writer)

	return count
}
