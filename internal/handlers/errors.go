package handlers

import (
	"fmt"
	"net/http"
)

// NewNotFoundHandler answers unknown routes with a JSON 404.
func NewNotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	}
}

// NewMethodNotAllowedHandler answers unsupported verbs with a JSON 405.
func NewMethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, fmt.Sprintf("Method %q not allowed.", r.Method))
	}
}
