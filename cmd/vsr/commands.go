// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/aitoothbrush/brusho-vsr/registry"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var addressCommand = cli.Command{
	Name:  "address",
	Usage: "print the address derived from a label",
	Flags: []cli.Flag{labelFlag},
	Action: func(ctx *cli.Context) error {
		label := ctx.String(labelFlag.Name)
		if label == "" {
			return errors.Errorf("%s: required", labelFlag.Name)
		}
		_, err := ctx.App.Writer.Write([]byte(vsr.BytesToAddress([]byte(label)).String() + "\n"))
		return err
	},
}

var mintCommand = cli.Command{
	Name:  "mint",
	Usage: "governing token mints and accounts",
	Subcommands: []cli.Command{
		{
			Name:  "create",
			Usage: "register a mint with the caller as its authority",
			Flags: []cli.Flag{callerFlag, mintFlag, decimalsFlag},
			Action: withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
				caller, err := addressFlag(ctx, callerFlag.Name)
				if err != nil {
					return err
				}
				mint, err := addressFlag(ctx, mintFlag.Name)
				if err != nil {
					return err
				}
				decimals := ctx.Uint(decimalsFlag.Name)
				if decimals > math.MaxUint8 {
					return errors.Errorf("%s: out of range", decimalsFlag.Name)
				}
				return reg.CreateMint(caller, mint, uint8(decimals))
			}),
		},
		{
			Name:  "to",
			Usage: "issue tokens to an owner",
			Flags: []cli.Flag{callerFlag, mintFlag, ownerFlag, amountFlag},
			Action: withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
				caller, err := addressFlag(ctx, callerFlag.Name)
				if err != nil {
					return err
				}
				mint, err := addressFlag(ctx, mintFlag.Name)
				if err != nil {
					return err
				}
				owner, err := addressFlag(ctx, ownerFlag.Name)
				if err != nil {
					return err
				}
				return reg.MintTo(caller, mint, owner, ctx.Uint64(amountFlag.Name))
			}),
		},
		{
			Name:  "balance",
			Usage: "print the token balance of an owner",
			Flags: []cli.Flag{mintFlag, ownerFlag},
			Action: withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
				mint, err := addressFlag(ctx, mintFlag.Name)
				if err != nil {
					return err
				}
				owner, err := addressFlag(ctx, ownerFlag.Name)
				if err != nil {
					return err
				}
				balance, err := reg.BalanceOf(mint, owner)
				if err != nil {
					return err
				}
				return printJSON(ctx, map[string]any{"owner": owner, "balance": balance})
			}),
		},
	},
}

var claimCommand = cli.Command{
	Name:  "claim",
	Usage: "claim voter rewards through the payout breaker, all claimable when no amount is given",
	Flags: []cli.Flag{callerFlag, registrarFlag, amountFlag, destinationFlag},
	Action: withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
		caller, err := addressFlag(ctx, callerFlag.Name)
		if err != nil {
			return err
		}
		registrarAddr, err := addressFlag(ctx, registrarFlag.Name)
		if err != nil {
			return err
		}
		destination, err := addressOr(ctx, destinationFlag.Name, ctx.String(callerFlag.Name))
		if err != nil {
			return err
		}
		var amount *uint64
		if ctx.IsSet(amountFlag.Name) {
			v := ctx.Uint64(amountFlag.Name)
			amount = &v
		}
		claimed, err := reg.ClaimReward(caller, registrarAddr, amount, destination)
		if err != nil {
			return err
		}
		return printJSON(ctx, map[string]any{"claimed": claimed, "destination": destination})
	}),
}

var eventsCommand = cli.Command{
	Name:  "events",
	Usage: "print the event log of a registrar",
	Flags: []cli.Flag{registrarFlag, fromFlag, limitFlag},
	Action: withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
		registrarAddr, err := addressFlag(ctx, registrarFlag.Name)
		if err != nil {
			return err
		}
		records, err := reg.Events(registrarAddr, ctx.Uint64(fromFlag.Name), ctx.Int(limitFlag.Name))
		if err != nil {
			return err
		}
		if records == nil {
			return printJSON(ctx, []any{})
		}
		return printJSON(ctx, records)
	}),
}
