// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	healthAPI "github.com/aitoothbrush/brusho-vsr/api/admin/health"
	"github.com/aitoothbrush/brusho-vsr/api/middleware"
	"github.com/aitoothbrush/brusho-vsr/api/registrars"
	"github.com/aitoothbrush/brusho-vsr/api/subscriptions"
	"github.com/aitoothbrush/brusho-vsr/health"
	"github.com/aitoothbrush/brusho-vsr/log"
	"github.com/aitoothbrush/brusho-vsr/registry"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins string
	PprofOn        bool
	EnableMetrics  bool
	EventsLimit    uint64
	Health         *health.Health

	// toggled at runtime through the admin API, nil disables request logs
	EnableReqLogger *atomic.Bool
	LoggerOptions   middleware.LoggerOptions
}

// New return api router
func New(reg *registry.Registry, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	registrars.New(reg, opts.EventsLimit).
		Mount(router, "/registrars")
	subs := subscriptions.New(reg, origins)
	subs.Mount(router, "/subscriptions")
	if opts.Health != nil {
		healthAPI.New(opts.Health).
			Mount(router, "/health")
	}

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)

	if opts.EnableReqLogger != nil {
		handler = middleware.RequestLoggerMiddleware(logger, opts.EnableReqLogger, opts.LoggerOptions)(handler)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
