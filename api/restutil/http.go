// Copyright (c) 2018 LockTrip
// Distributed under the MIT software license, see the accompanying
// file COPYING or http://www.opensource.org/licenses/mit-license.php.

package restutil

import (
	"encoding/json"
	"net/http"
)

// HandlerFunc like http.HandlerFunc, but it returns an error.
// Errors created by BadRequest/ServiceUnavailable respond with their status,
// any other error responds http.StatusInternalServerError.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc converts HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			status := http.StatusInternalServerError
			if he, ok := err.(*httpError); ok {
				status = he.status
			}
			http.Error(w, err.Error(), status)
		}
	}
}

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// BadRequest rejects malformed request input.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusBadRequest,
	}
}

// ServiceUnavailable reports a failed governance or oracle read.
func ServiceUnavailable(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusServiceUnavailable,
	}
}

// JSONContentType the content type of JSON responses.
const JSONContentType = "application/json; charset=utf-8"

// WriteJSON responds an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// M shortcut for type map[string]any.
type M map[string]any
