// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/aitoothbrush/brusho-vsr/registry"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// depositAction parses the depositor, registrar and voter authority flags.
// Both the depositor and the authority default to the caller.
func depositAction(action func(ctx *cli.Context, reg *registry.Registry, depositor, registrarAddr, authority vsr.Address) error) cli.ActionFunc {
	return withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
		depositor, err := addressOr(ctx, depositorFlag.Name, ctx.String(callerFlag.Name))
		if err != nil {
			return err
		}
		registrarAddr, err := addressFlag(ctx, registrarFlag.Name)
		if err != nil {
			return err
		}
		authority, err := addressOr(ctx, authorityFlag.Name, depositor.String())
		if err != nil {
			return err
		}
		return action(ctx, reg, depositor, registrarAddr, authority)
	})
}

var depositCommand = cli.Command{
	Name:  "deposit",
	Usage: "voter deposit entries",
	Subcommands: []cli.Command{
		{
			Name:  "node",
			Usage: "lock the node security deposit into entry 0",
			Flags: []cli.Flag{depositorFlag, registrarFlag, authorityFlag},
			Action: depositAction(func(_ *cli.Context, reg *registry.Registry, depositor, registrarAddr, authority vsr.Address) error {
				return reg.NodeDeposit(depositor, registrarAddr, authority)
			}),
		},
		{
			Name:  "ordinary",
			Usage: "create or top up an ordinary deposit entry",
			Flags: []cli.Flag{depositorFlag, registrarFlag, authorityFlag, indexFlag, amountFlag, periodsFlag, unitFlag},
			Action: depositAction(func(ctx *cli.Context, reg *registry.Registry, depositor, registrarAddr, authority vsr.Address) error {
				index, err := entryIndexFlag(ctx, indexFlag.Name)
				if err != nil {
					return err
				}
				duration, err := durationFlag(ctx)
				if err != nil {
					return err
				}
				return reg.OrdinaryDeposit(depositor, registrarAddr, authority, index, ctx.Uint64(amountFlag.Name), duration)
			}),
		},
		{
			Name:  "release",
			Usage: "move locked tokens of an ordinary entry into a vesting target entry",
			Flags: []cli.Flag{callerFlag, registrarFlag, indexFlag, targetFlag, amountFlag},
			Action: voterAction(func(ctx *cli.Context, reg *registry.Registry, registrarAddr, caller vsr.Address) error {
				index, err := entryIndexFlag(ctx, indexFlag.Name)
				if err != nil {
					return err
				}
				target, err := entryIndexFlag(ctx, targetFlag.Name)
				if err != nil {
					return err
				}
				return reg.OrdinaryReleaseDeposit(caller, registrarAddr, index, target, ctx.Uint64(amountFlag.Name))
			}),
		},
		{
			Name:  "node-release",
			Usage: "move the expired node deposit into a vesting target entry",
			Flags: []cli.Flag{callerFlag, registrarFlag, targetFlag},
			Action: voterAction(func(ctx *cli.Context, reg *registry.Registry, registrarAddr, caller vsr.Address) error {
				target, err := entryIndexFlag(ctx, targetFlag.Name)
				if err != nil {
					return err
				}
				return reg.NodeReleaseDeposit(caller, registrarAddr, target)
			}),
		},
		{
			Name:  "withdraw",
			Usage: "withdraw unlocked tokens of an entry",
			Flags: []cli.Flag{callerFlag, registrarFlag, indexFlag, amountFlag, destinationFlag},
			Action: voterAction(func(ctx *cli.Context, reg *registry.Registry, registrarAddr, caller vsr.Address) error {
				index, err := entryIndexFlag(ctx, indexFlag.Name)
				if err != nil {
					return err
				}
				destination, err := addressOr(ctx, destinationFlag.Name, caller.String())
				if err != nil {
					return err
				}
				return reg.Withdraw(caller, registrarAddr, index, ctx.Uint64(amountFlag.Name), destination)
			}),
		},
	},
}
