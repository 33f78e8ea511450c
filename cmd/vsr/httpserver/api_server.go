// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const maxRequestBodySize = 200 * 1024

// StartAPIServer serves handler on addr. It returns the base url and a
// function shutting the server down.
func StartAPIServer(addr string, handler http.Handler, timeout time.Duration) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	if timeout > 0 {
		handler = handleAPITimeout(handler, timeout)
	}
	handler = requestBodyLimit(handler)

	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	return "http://" + listener.Addr().String() + "/", serve(srv, listener), nil
}

// serve runs srv on listener until the returned function is called.
func serve(srv *http.Server, listener net.Listener) func() {
	var g errgroup.Group
	g.Go(func() error {
		if err := srv.Serve(listener); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	return func() {
		srv.Close()
		if err := g.Wait(); err != nil {
			logger.Warn("server stopped", "addr", listener.Addr(), "err", err)
		}
	}
}

func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// websocket connections are long lived
		if r.Header.Get("Upgrade") == "websocket" {
			h.ServeHTTP(w, r)
			return
		}
		http.TimeoutHandler(h, timeout, "request timeout").ServeHTTP(w, r)
	})
}

func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		h.ServeHTTP(w, r)
	})
}
