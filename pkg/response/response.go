// Package response writes JSON responses in the API's envelope conventions:
// successful reads return the resource itself; failures return a payload with
// a success flag and a message or error detail.
package response

import (
	"encoding/json"
	"net/http"
)

type failure struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusCreated, data)
}

// OK sends a 200 with a success flag and message, used by operations that
// have no resource to return (e.g. deletes).
func OK(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, failure{Success: true, Message: message})
}

// Fail sends a JSON failure payload with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, failure{Success: false, Message: message})
}

// FailErr sends a 500 failure payload carrying the error detail.
func FailErr(w http.ResponseWriter, err error) {
	JSON(w, http.StatusInternalServerError, failure{Success: false, Error: err.Error()})
}

// ValidationError sends a 422 with a field-level error map.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	JSON(w, http.StatusUnprocessableEntity, failure{
		Success: false,
		Message: "Validation failed",
		Errors:  errs,
	})
}

// NotFound sends a 404 failure payload.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Not found"
	}
	Fail(w, http.StatusNotFound, message)
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Fail(w, http.StatusUnauthorized, "The user is not authorised")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Fail(w, http.StatusForbidden, "Forbidden")
}
