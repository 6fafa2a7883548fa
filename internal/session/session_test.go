package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/session"
)

// requestWithCookies builds a fresh request carrying the cookies the
// previous response set, simulating the browser's next request.
func requestWithCookies(t *testing.T, recorder *httptest.ResponseRecorder) *http.Request {
	t.Helper()

	request := httptest.NewRequest("GET", "/", nil)

	for _, cookie := range recorder.Result().Cookies() {
		request.AddCookie(cookie)
	}

	return request
}

func TestPinVerifiedLifecycle(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	session.InitSessionStorage()

	request := httptest.NewRequest("GET", "/", nil)

	if session.PinVerified(request) {
		t.Fatal("A fresh session should not count as PIN-verified")
	}

	recorder := httptest.NewRecorder()

	if err := session.MarkPinVerified(recorder, request); err != nil {
		t.Fatalf("MarkPinVerified failed: %s", err)
	}

	unlockedRequest := requestWithCookies(t, recorder)

	if !session.PinVerified(unlockedRequest) {
		t.Fatal("The session should be PIN-verified after unlocking")
	}

	// Logging in again must drop the unlock so the next dashboard
	// visit challenges the PIN once more.
	loginRecorder := httptest.NewRecorder()

	if err := session.SaveUserInSession(loginRecorder, unlockedRequest, &model.User{ID: 1}); err != nil {
		t.Fatalf("SaveUserInSession failed: %s", err)
	}

	if session.PinVerified(requestWithCookies(t, loginRecorder)) {
		t.Fatal("A fresh login should have to pass the PIN lock again")
	}
}
