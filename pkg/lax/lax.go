// Package lax implements tools for building easy RESTful APIs.
//
//      ^ ^
//  ("\(-_-)/")
//  )(       )(
// ((...) (...))
//
// Take it easy!
package lax

import (
	"encoding/json"
	"net/http"
)

// A flag for debugging the server.
var debug bool

// EnableDebugMode enables debugging for the API, so error detail is printed.
func EnableDebugMode() {
	debug = true
}

// Request wraps http.Request to provide convenience methods.
type Request struct {
	*http.Request
}

// JSON loads JSON data from a request into the given address.
func (request *Request) JSON(ptr interface{}) error {
	return json.NewDecoder(request.Body).Decode(ptr)
}

// MethodHandler is a handler for an HTTP method.
type MethodHandler = func(request *Request) interface{}

// View represents a view for a RESTful API.
type View struct {
	// The handler for GET requests.
	Get MethodHandler
	// The handler for POST requests.
	Post MethodHandler
	// The handler for PUT requests.
	Put MethodHandler
	// The handler for DELETE requests.
	Delete MethodHandler
}

// Response represents a response to return.
type Response struct {
	Status int
	Data   interface{}
}

// MakeResponse creates a response with a status code and data.
func MakeResponse(status int, data interface{}) *Response {
	return &Response{status, data}
}

// MakeBadRequestResponse creates a 400 error response from one object.
func MakeBadRequestResponse(data interface{}) *Response {
	if err, ok := data.(error); ok {
		// Get the string from errors for 400 responses.
		return &Response{http.StatusBadRequest, err.Error()}
	}

	return &Response{http.StatusBadRequest, data}
}

// MakeNotFoundResponse creates a 404 error response.
func MakeNotFoundResponse() *Response {
	return &Response{http.StatusNotFound, "Not Found"}
}

// Get the handler for the HTTP request method.
func dispatch(view *View, requestMethod string) (MethodHandler, int) {
	var handler MethodHandler
	defaultStatus := http.StatusOK

	switch requestMethod {
	case http.MethodGet:
		handler = view.Get
	case http.MethodPost:
		handler = view.Post
		defaultStatus = http.StatusCreated
	case http.MethodPut:
		handler = view.Put
	case http.MethodDelete:
		handler = view.Delete
		defaultStatus = http.StatusNoContent
	}

	if handler == nil {
		handler = func(request *Request) interface{} {
			return &Response{http.StatusMethodNotAllowed, "Method Not Allowed"}
		}
		defaultStatus = http.StatusMethodNotAllowed
	}

	return handler, defaultStatus
}

// Normalise response data so we can consume it.
func normalise(response interface{}, defaultStatus int) (*Response, error) {
	switch v := response.(type) {
	case *Response:
		return v, nil
	case error:
		return &Response{http.StatusInternalServerError, nil}, v
	default:
		return &Response{defaultStatus, v}, nil
	}
}

// Wrap creates an http.HandlerFunc from a View.
func Wrap(view View) http.HandlerFunc {
	return func(writer http.ResponseWriter, httpRequest *http.Request) {
		request := Request{httpRequest}
		method, defaultStatus := dispatch(&view, request.Method)
		response, responseErr := normalise(method(&request), defaultStatus)

		if responseErr != nil {
			if debug {
				http.Error(writer, responseErr.Error(), response.Status)
			} else {
				http.Error(writer, "Internal Server Error", response.Status)
			}

			return
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(response.Status)

		outputEncoder := json.NewEncoder(writer)
		outputEncoder.SetEscapeHTML(false)

		if err := outputEncoder.Encode(response.Data); err != nil && debug {
			http.Error(writer, err.Error(), http.StatusInternalServerError)
		}
	}
}
