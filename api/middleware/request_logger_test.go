// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aitoothbrush/brusho-vsr/log"
)

// mockLogger is a simple logger implementation for testing purposes
type mockLogger struct {
	loggedData []any
}

func (m *mockLogger) With(_ ...any) log.Logger  { return m }
func (m *mockLogger) Trace(_ string, _ ...any)  {}
func (m *mockLogger) Debug(_ string, _ ...any)  {}
func (m *mockLogger) Error(_ string, _ ...any)  {}
func (m *mockLogger) Crit(_ string, _ ...any)   {}
func (m *mockLogger) Info(_ string, ctx ...any) { m.loggedData = append(m.loggedData, ctx...) }
func (m *mockLogger) Warn(_ string, ctx ...any) { m.loggedData = append(m.loggedData, ctx...) }
func (m *mockLogger) GetLoggedData() []any      { return m.loggedData }

func respond(code int, delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(delay)
		w.WriteHeader(code)
		w.Write([]byte(http.StatusText(code)))
	}
}

func TestRequestLoggerHandler(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		enabled   bool
		opts      LoggerOptions
		shouldLog bool
	}{
		{"all logging enabled", respond(http.StatusOK, 0), true, LoggerOptions{}, true},
		{"all logging disabled", respond(http.StatusOK, 0), false, LoggerOptions{}, false},
		{"slow query over threshold", respond(http.StatusOK, 15*time.Millisecond), false, LoggerOptions{SlowQueriesThreshold: 10 * time.Millisecond}, true},
		{"fast query under threshold", respond(http.StatusOK, 0), false, LoggerOptions{SlowQueriesThreshold: time.Second}, false},
		{"5xx logged", respond(http.StatusInternalServerError, 0), false, LoggerOptions{Log5xxErrors: true}, true},
		{"5xx not logged", respond(http.StatusInternalServerError, 0), false, LoggerOptions{}, false},
		{"4xx not logged", respond(http.StatusBadRequest, 0), false, LoggerOptions{Log5xxErrors: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &mockLogger{}
			var enabled atomic.Bool
			enabled.Store(tt.enabled)

			handler := RequestLoggerMiddleware(logger, &enabled, tt.opts)(tt.handler)

			req := httptest.NewRequest(http.MethodPost, "/registrars/x?from=1", strings.NewReader(`{"a":1}`))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			data := logger.GetLoggedData()
			if !tt.shouldLog {
				assert.Empty(t, data)
				return
			}
			assert.Contains(t, data, "URI")
			assert.Contains(t, data, "/registrars/x?from=1")
			assert.Contains(t, data, "Method")
			assert.Contains(t, data, http.MethodPost)
			assert.Contains(t, data, "Body")
			assert.Contains(t, data, `{"a":1}`)
			assert.Contains(t, data, rr.Code)
		})
	}
}

func TestRequestLoggerKeepsBody(t *testing.T) {
	var enabled atomic.Bool
	enabled.Store(true)

	var got string
	handler := RequestLoggerMiddleware(&mockLogger{}, &enabled, LoggerOptions{})(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			buf := new(strings.Builder)
			_, _ = buf.ReadFrom(r.Body)
			got = buf.String()
		}),
	)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader("payload")))
	assert.Equal(t, "payload", got)
}
