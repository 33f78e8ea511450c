// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/api/admin"
	"github.com/aitoothbrush/brusho-vsr/health"
)

func StartAdminServer(
	addr string,
	logLevel *slog.LevelVar,
	apiLogs *atomic.Bool,
	health *health.Health,
) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", addr)
	}

	srv := &http.Server{
		Handler:           admin.New(logLevel, apiLogs, health),
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
	}
	return "http://" + listener.Addr().String() + "/admin", serve(srv, listener), nil
}
