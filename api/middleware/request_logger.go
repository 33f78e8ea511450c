// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package middleware

import (
	"bufio"
	"bytes"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/log"
)

// LoggerOptions selects which requests are logged when general logging is off.
type LoggerOptions struct {
	// requests slower than this are logged, 0 disables
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
}

// statusWriter captures the status code written by the wrapped handler.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

func (s *statusWriter) WriteHeader(code int) {
	s.statusCode = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through.
func (s *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijack not supported")
	}
	return h.Hijack()
}

// RequestLoggerMiddleware returns a middleware logging requests while enabled,
// and slow or failed ones as LoggerOptions asks.
func RequestLoggerMiddleware(logger log.Logger, enabled *atomic.Bool, opts LoggerOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled.Load() && opts.SlowQueriesThreshold == 0 && !opts.Log5xxErrors {
				next.ServeHTTP(w, r)
				return
			}
			// the body can be read only once, so it is buffered for the handler
			var bodyBytes []byte
			if r.Body != nil {
				var err error
				bodyBytes, err = io.ReadAll(r.Body)
				if err != nil {
					logger.Warn("unexpected body read error", "err", err)
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			}

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			slow := opts.SlowQueriesThreshold > 0 && duration > opts.SlowQueriesThreshold
			failed := opts.Log5xxErrors && sw.statusCode >= http.StatusInternalServerError
			if enabled.Load() || slow || failed {
				logger.Info("API Request",
					"DurationMs", duration.Milliseconds(),
					"Timestamp", time.Now().Unix(),
					"URI", r.URL.String(),
					"Method", r.Method,
					"StatusCode", sw.statusCode,
					"Body", string(bodyBytes),
				)
			}
		})
	}
}
