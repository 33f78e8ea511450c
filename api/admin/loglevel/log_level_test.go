// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package loglevel

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelHandler(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		body           any
		expectedStatus int
		expectedLevel  string
		expectedError  string
	}{
		{"set level to debug", http.MethodPost, Request{Level: "debug"}, http.StatusOK, "DEBUG", ""},
		{"set level to warn", http.MethodPost, Request{Level: "warn"}, http.StatusOK, "WARN", ""},
		{"invalid level", http.MethodPost, Request{Level: "loud"}, http.StatusBadRequest, "", "Invalid verbosity level"},
		{"unknown field", http.MethodPost, map[string]string{"verbosity": "debug"}, http.StatusBadRequest, "", ""},
		{"get current level", http.MethodGet, nil, http.StatusOK, "INFO", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logLevel slog.LevelVar
			logLevel.Set(slog.LevelInfo)

			var body []byte
			if tt.body != nil {
				var err error
				body, err = json.Marshal(tt.body)
				require.NoError(t, err)
			}
			req, err := http.NewRequest(tt.method, "/admin/loglevel", bytes.NewBuffer(body))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			router := mux.NewRouter()
			New(&logLevel).Mount(router, "/admin/loglevel")
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedLevel != "" {
				var res Response
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
				assert.Equal(t, tt.expectedLevel, res.CurrentLevel)
				assert.Equal(t, tt.expectedLevel, logLevel.Level().String())
			} else if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, strings.Trim(rr.Body.String(), "\n"))
			}
		})
	}
}
