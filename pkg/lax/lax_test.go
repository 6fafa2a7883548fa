package lax_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/birikio/birikio/pkg/lax"
)

func TestWrapGet(t *testing.T) {
	handler := lax.Wrap(lax.View{
		Get: func(request *lax.Request) interface{} {
			return map[string]string{"hello": "world"}
		},
	})

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("GET", "/", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", recorder.Code)
	}

	if contentType := recorder.Header().Get("Content-Type"); contentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", contentType)
	}

	var body map[string]string

	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %s", err)
	}

	if body["hello"] != "world" {
		t.Errorf("unexpected body: %v", body)
	}
}

func TestWrapPostDefaultStatus(t *testing.T) {
	handler := lax.Wrap(lax.View{
		Post: func(request *lax.Request) interface{} {
			var input struct {
				Name string `json:"name"`
			}

			if err := request.JSON(&input); err != nil {
				return lax.MakeBadRequestResponse(err)
			}

			return input
		},
	})

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x"}`)))

	if recorder.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", recorder.Code)
	}
}

func TestWrapMethodNotAllowed(t *testing.T) {
	handler := lax.Wrap(lax.View{
		Get: func(request *lax.Request) interface{} {
			return "ok"
		},
	})

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("DELETE", "/", nil))

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", recorder.Code)
	}
}

func TestWrapExplicitResponse(t *testing.T) {
	handler := lax.Wrap(lax.View{
		Get: func(request *lax.Request) interface{} {
			return lax.MakeNotFoundResponse()
		},
	})

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest("GET", "/", nil))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", recorder.Code)
	}
}
