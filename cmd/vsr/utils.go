// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/aitoothbrush/brusho-vsr/log"
	"github.com/aitoothbrush/brusho-vsr/lvldb"
	"github.com/aitoothbrush/brusho-vsr/registry"
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// logLevel is shared with the admin API, which changes it at runtime.
var logLevel slog.LevelVar

func initLogger(ctx *cli.Context) error {
	verbosity := ctx.GlobalUint64(verbosityFlag.Name)
	if verbosity > 5 {
		return errors.Errorf("%s: must be between 0 and 5", verbosityFlag.Name)
	}
	logLevel.Set(log.FromVerbosity(int(verbosity)))

	if ctx.GlobalBool(jsonLogsFlag.Name) {
		log.SetDefault(log.NewJSONHandler(os.Stderr, &logLevel))
		return nil
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	log.SetDefault(log.NewTerminalHandler(os.Stderr, &logLevel, useColor))
	return nil
}

// copy from go-ethereum
func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.brusho.vsr")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.brusho.vsr")
		default:
			return filepath.Join(home, ".org.brusho.vsr")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// openRegistry opens the registry stored under the data dir.
func openRegistry(ctx *cli.Context) (*registry.Registry, func(), error) {
	dataDir := ctx.GlobalString(dataDirFlag.Name)
	if dataDir == "" {
		return nil, nil, errors.Errorf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, nil, errors.Wrapf(err, "create data dir at '%v'", dataDir)
	}

	path := filepath.Join(dataDir, "registry.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize: ctx.GlobalInt(cacheSizeFlag.Name),
		OpenFiles: 64,
	})
	if err != nil {
		return nil, nil, errors.WithMessagef(err, "open registry database at '%v'", path)
	}
	reg, err := registry.New(db, registry.Options{
		VoterCacheSize: ctx.GlobalInt(voterCacheSizeFlag.Name),
	})
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return reg, func() {
		reg.Close()
		if err := db.Close(); err != nil {
			logger.Warn("close registry database", "err", err)
		}
	}, nil
}

// withRegistry wraps an action needing the registry.
func withRegistry(action func(ctx *cli.Context, reg *registry.Registry) error) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		reg, closeRegistry, err := openRegistry(ctx)
		if err != nil {
			return err
		}
		defer closeRegistry()
		return action(ctx, reg)
	}
}

// addressFlag parses the required address flag name.
func addressFlag(ctx *cli.Context, name string) (vsr.Address, error) {
	return addressOr(ctx, name, "")
}

// addressOr parses the address flag name, falling back to def when unset.
func addressOr(ctx *cli.Context, name, def string) (vsr.Address, error) {
	s := ctx.String(name)
	if s == "" {
		s = def
	}
	if s == "" {
		return vsr.Address{}, errors.Errorf("%s: required", name)
	}
	addr, err := vsr.ParseAddress(s)
	if err != nil {
		return vsr.Address{}, errors.WithMessage(err, name)
	}
	return addr, nil
}

func entryIndexFlag(ctx *cli.Context, name string) (uint8, error) {
	v := ctx.Uint(name)
	if v > math.MaxUint8 {
		return 0, errors.Errorf("%s: out of range", name)
	}
	return uint8(v), nil
}

func durationFlag(ctx *cli.Context) (lockup.Duration, error) {
	var unit lockup.TimeUnit
	if err := unit.UnmarshalText([]byte(ctx.String(unitFlag.Name))); err != nil {
		return lockup.Duration{}, errors.WithMessage(err, unitFlag.Name)
	}
	return lockup.Duration{Periods: ctx.Uint64(periodsFlag.Name), Unit: unit}, nil
}

// printJSON writes v to the app output.
func printJSON(ctx *cli.Context, v any) error {
	enc := json.NewEncoder(ctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
