// Package apierr writes the API's structured error responses.
//
// Every failure surfaces as one JSON shape:
//
//	{"error": {"code": "...", "message": "...", "fields": {...}}}
//
// Codes map to HTTP statuses:
//   - validation_error, invalid_reference, invalid_role → 400
//   - unauthorized → 401
//   - forbidden → 403
//   - not_found → 404
//   - internal → 500
//
// Authorization and validation failures are always detected before any
// mutation, so a non-2xx response implies storage was untouched.
package apierr

import (
	"encoding/json"
	"net/http"
)

// Error codes on the wire.
const (
	CodeValidation       = "validation_error"
	CodeInvalidReference = "invalid_reference"
	CodeInvalidRole      = "invalid_role"
	CodeUnauthorized     = "unauthorized"
	CodeForbidden        = "forbidden"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal"
)

type payload struct {
	Error body `json:"error"`
}

type body struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func write(w http.ResponseWriter, status int, code, msg string, fields map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload{Error: body{Code: code, Message: msg, Fields: fields}})
}

// NotFound responds 404: the entity id did not resolve.
func NotFound(w http.ResponseWriter, msg string) {
	write(w, http.StatusNotFound, CodeNotFound, msg, nil)
}

// Forbidden responds 403: an authorization predicate denied the actor.
// msg is the fixed reason string identifying the violated rule.
func Forbidden(w http.ResponseWriter, msg string) {
	write(w, http.StatusForbidden, CodeForbidden, msg, nil)
}

// Unauthorized responds 401: no valid credential accompanied the request.
func Unauthorized(w http.ResponseWriter, msg string) {
	write(w, http.StatusUnauthorized, CodeUnauthorized, msg, nil)
}

// Validation responds 400 with a field-keyed reason map.
func Validation(w http.ResponseWriter, fields map[string]string) {
	write(w, http.StatusBadRequest, CodeValidation, "request validation failed", fields)
}

// InvalidReference responds 400: the named field referenced a user id
// that does not resolve to an existing user.
func InvalidReference(w http.ResponseWriter, field, msg string) {
	write(w, http.StatusBadRequest, CodeInvalidReference, msg, map[string]string{field: msg})
}

// InvalidRole responds 400: the referenced user exists but is not the
// board owner or a board member, so it cannot hold the requested role.
func InvalidRole(w http.ResponseWriter, field, msg string) {
	write(w, http.StatusBadRequest, CodeInvalidRole, msg, map[string]string{field: msg})
}

// Internal responds 500 without leaking the underlying error.
func Internal(w http.ResponseWriter) {
	write(w, http.StatusInternalServerError, CodeInternal, "an internal error occurred", nil)
}
