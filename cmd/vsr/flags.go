// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/aitoothbrush/brusho-vsr/api/registrars"
	"github.com/aitoothbrush/brusho-vsr/registry"
)

// global flags
var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the registry database",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML file with registrar defaults",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache-size",
		Value: 128,
		Usage: "megabytes of ram allocated to the database cache",
	}
	voterCacheSizeFlag = cli.IntFlag{
		Name:  "voter-cache-size",
		Value: registry.DefaultVoterCacheSize,
		Usage: "number of voters kept decoded in memory",
	}
)

// serve flags
var (
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8679",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	apiEventsLimitFlag = cli.Uint64Flag{
		Name:  "api-events-limit",
		Value: registrars.DefaultEventsLimit,
		Usage: "limit the number of events returned by /registrars/{registrar}/events",
	}
	apiEnableReqLoggerFlag = cli.BoolFlag{
		Name:  "api-enable-reqlogger",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Usage: "all queries with execution time(ms) above threshold will be logged",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log all requests resulting in 5xx status codes",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	enableAdminFlag = cli.BoolFlag{
		Name:  "enable-admin",
		Usage: "enables admin server",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Value: "localhost:2113",
		Usage: "admin service listening address",
	}
)

// operation flags
var (
	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address signing the operation",
	}
	registrarFlag = cli.StringFlag{
		Name:  "registrar",
		Usage: "registrar address",
	}
	authorityFlag = cli.StringFlag{
		Name:  "authority",
		Usage: "voter authority address",
	}
	depositorFlag = cli.StringFlag{
		Name:  "depositor",
		Usage: "owner of the token account funding the deposit",
	}
	destinationFlag = cli.StringFlag{
		Name:  "destination",
		Usage: "owner of the token account receiving the tokens",
	}
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "governing token mint address",
	}
	realmFlag = cli.StringFlag{
		Name:  "realm",
		Usage: "governance realm address",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "token account owner address",
	}
	labelFlag = cli.StringFlag{
		Name:  "label",
		Usage: "text the address is derived from",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "token amount in native units",
	}
	decimalsFlag = cli.UintFlag{
		Name:  "decimals",
		Value: 6,
		Usage: "decimals of the mint",
	}
	indexFlag = cli.UintFlag{
		Name:  "index",
		Usage: "deposit entry index",
	}
	targetFlag = cli.UintFlag{
		Name:  "target",
		Usage: "deposit entry index receiving the released amount",
	}
	periodsFlag = cli.Uint64Flag{
		Name:  "periods",
		Usage: "lockup length in units",
	}
	unitFlag = cli.StringFlag{
		Name:  "unit",
		Value: "day",
		Usage: "lockup unit (day|month)",
	}
	offsetFlag = cli.Int64Flag{
		Name:  "offset",
		Usage: "seconds added to the registrar clock",
	}
	fromFlag = cli.Uint64Flag{
		Name:  "from",
		Usage: "first event sequence to return",
	}
	limitFlag = cli.IntFlag{
		Name:  "limit",
		Value: registrars.DefaultEventsLimit,
		Usage: "maximum number of events to return",
	}
)
