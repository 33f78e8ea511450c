// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/aitoothbrush/brusho-vsr/api/admin/apilogs"
	"github.com/aitoothbrush/brusho-vsr/api/admin/loglevel"
	"github.com/aitoothbrush/brusho-vsr/health"

	healthAPI "github.com/aitoothbrush/brusho-vsr/api/admin/health"
)

// New returns the handler of the admin API, served under /admin.
func New(logLevel *slog.LevelVar, apiLogsToggle *atomic.Bool, health *health.Health) http.HandlerFunc {
	router := mux.NewRouter()
	subRouter := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(subRouter, "/loglevel")
	apilogs.New(apiLogsToggle).Mount(subRouter, "/apilogs")
	healthAPI.New(health).Mount(subRouter, "/health")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
