// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

type httpError struct {
	cause  error
	status int
}

func (e *httpError) Error() string {
	return e.cause.Error()
}

// HTTPError create an error with http status code.
func HTTPError(cause error, status int) error {
	return &httpError{
		cause:  cause,
		status: status,
	}
}

// BadRequest convenience method to create http bad request error.
func BadRequest(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusBadRequest,
	}
}

// NotFound convenience method to create http not found error.
func NotFound(cause error) error {
	return &httpError{
		cause:  cause,
		status: http.StatusNotFound,
	}
}

// StatusOf maps an error to the http status it is responded with.
// Missing registrars and voters are 404, other reverts 400.
func StatusOf(err error) int {
	var he *httpError
	if errors.As(err, &he) {
		return he.status
	}
	switch {
	case errors.Is(err, reverts.ErrRegistrarNotFound), errors.Is(err, reverts.ErrVoterNotFound):
		return http.StatusNotFound
	case reverts.IsRevertErr(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// HandlerFunc like http.HandlerFunc, but it returns an error.
// The error is responded with the status given by StatusOf.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

// WrapHandlerFunc convert HandlerFunc to http.HandlerFunc.
func WrapHandlerFunc(f HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			http.Error(w, err.Error(), StatusOf(err))
		}
	}
}

// content types
const (
	JSONContentType = "application/json; charset=utf-8"
)

// ParseJSON decodes a request body, rejecting unknown fields.
func ParseJSON(r io.Reader, v any) error {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// WriteJSON response an object in JSON encoding.
func WriteJSON(w http.ResponseWriter, obj any) error {
	w.Header().Set("Content-Type", JSONContentType)
	return json.NewEncoder(w).Encode(obj)
}

// ParseAddress parses an address path or query parameter.
func ParseAddress(name, s string) (vsr.Address, error) {
	addr, err := vsr.ParseAddress(s)
	if err != nil {
		return vsr.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}

// ParseUint parses an optional unsigned query parameter, returning def when empty.
func ParseUint(name, s string, def uint64) (uint64, error) {
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, BadRequest(errors.WithMessage(err, name))
	}
	return v, nil
}

// M shortcut for type map[string]any.
type M map[string]any
