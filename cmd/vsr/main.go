// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/aitoothbrush/brusho-vsr/log"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "vsr")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "vsr"
	app.Usage = "Voter stake registry of the governance token"
	app.Flags = []cli.Flag{
		dataDirFlag,
		configFlag,
		verbosityFlag,
		jsonLogsFlag,
		cacheSizeFlag,
		voterCacheSizeFlag,
	}
	app.Before = initLogger
	app.Commands = []cli.Command{
		serveCommand,
		addressCommand,
		mintCommand,
		registrarCommand,
		voterCommand,
		depositCommand,
		claimCommand,
		eventsCommand,
		inspectCommand,
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
