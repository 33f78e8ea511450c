// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/aitoothbrush/brusho-vsr/api"
	"github.com/aitoothbrush/brusho-vsr/api/middleware"
	"github.com/aitoothbrush/brusho-vsr/cmd/vsr/httpserver"
	"github.com/aitoothbrush/brusho-vsr/health"
	"github.com/aitoothbrush/brusho-vsr/metrics"
)

var serveCommand = cli.Command{
	Name:  "serve",
	Usage: "serve the read API and event subscriptions",
	Flags: []cli.Flag{
		apiAddrFlag,
		apiCorsFlag,
		apiTimeoutFlag,
		apiEventsLimitFlag,
		apiEnableReqLoggerFlag,
		apiSlowQueriesThresholdFlag,
		apiLog5xxErrorsFlag,
		pprofFlag,
		enableMetricsFlag,
		metricsAddrFlag,
		enableAdminFlag,
		adminAddrFlag,
	},
	Action: serveAction,
}

func serveAction(ctx *cli.Context) error {
	exitSignal, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg, closeRegistry, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer closeRegistry()

	h := health.New(nil)
	h.StoreReady(true)

	var apiLogs atomic.Bool
	apiLogs.Store(ctx.Bool(apiEnableReqLoggerFlag.Name))

	metricsOn := ctx.Bool(enableMetricsFlag.Name)
	if metricsOn {
		metrics.InitializePrometheusMetrics()
		url, closeMetrics, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping metrics server..."); closeMetrics() }()
		logger.Info("metrics server started", "url", url)
	}

	if ctx.Bool(enableAdminFlag.Name) {
		url, closeAdmin, err := httpserver.StartAdminServer(ctx.String(adminAddrFlag.Name), &logLevel, &apiLogs, h)
		if err != nil {
			return err
		}
		defer func() { logger.Info("stopping admin server..."); closeAdmin() }()
		logger.Info("admin server started", "url", url)
	}

	handler, closeSubs := api.New(reg, api.Options{
		AllowedOrigins:  ctx.String(apiCorsFlag.Name),
		PprofOn:         ctx.Bool(pprofFlag.Name),
		EnableMetrics:   metricsOn,
		EventsLimit:     ctx.Uint64(apiEventsLimitFlag.Name),
		Health:          h,
		EnableReqLogger: &apiLogs,
		LoggerOptions: middleware.LoggerOptions{
			SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond,
			Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		},
	})
	defer func() { logger.Info("closing subscriptions..."); closeSubs() }()

	apiURL, stopAPI, err := httpserver.StartAPIServer(
		ctx.String(apiAddrFlag.Name),
		handler,
		time.Duration(ctx.Uint64(apiTimeoutFlag.Name))*time.Millisecond,
	)
	if err != nil {
		return err
	}
	defer func() { logger.Info("stopping API server..."); stopAPI() }()

	fmt.Fprintf(ctx.App.Writer, "Starting vsr %v\n    API portal   [ %v ]\n    Data dir     [ %v ]\n",
		fullVersion(), apiURL, ctx.GlobalString(dataDirFlag.Name))

	g, gctx := errgroup.WithContext(exitSignal)
	g.Go(func() error {
		return h.Watch(gctx, reg)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("exiting...")
	return nil
}
