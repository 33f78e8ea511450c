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

// voterAction parses the registrar flag and the voter authority, taken from
// the caller when no authority is given.
func voterAction(action func(ctx *cli.Context, reg *registry.Registry, registrarAddr, authority vsr.Address) error) cli.ActionFunc {
	return withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
		registrarAddr, err := addressFlag(ctx, registrarFlag.Name)
		if err != nil {
			return err
		}
		authority, err := addressOr(ctx, authorityFlag.Name, ctx.String(callerFlag.Name))
		if err != nil {
			return err
		}
		return action(ctx, reg, registrarAddr, authority)
	})
}

var voterCommand = cli.Command{
	Name:  "voter",
	Usage: "voter lifecycle and projections",
	Subcommands: []cli.Command{
		{
			Name:  "create",
			Usage: "create the voter of the caller",
			Flags: []cli.Flag{callerFlag, registrarFlag},
			Action: voterAction(func(ctx *cli.Context, reg *registry.Registry, registrarAddr, caller vsr.Address) error {
				addr, err := reg.CreateVoter(caller, registrarAddr)
				if err != nil {
					return err
				}
				return printJSON(ctx, map[string]any{"voter": addr})
			}),
		},
		{
			Name:  "close",
			Usage: "close the voter of the caller",
			Flags: []cli.Flag{callerFlag, registrarFlag},
			Action: voterAction(func(_ *cli.Context, reg *registry.Registry, registrarAddr, caller vsr.Address) error {
				return reg.CloseVoter(caller, registrarAddr)
			}),
		},
		{
			Name:  "update-weight",
			Usage: "refresh and print the voter weight record",
			Flags: []cli.Flag{registrarFlag, authorityFlag},
			Action: voterAction(func(ctx *cli.Context, reg *registry.Registry, registrarAddr, authority vsr.Address) error {
				rec, err := reg.UpdateVoterWeightRecord(registrarAddr, authority)
				if err != nil {
					return err
				}
				return printJSON(ctx, rec)
			}),
		},
		{
			Name:  "info",
			Usage: "log and print the per entry projection of a voter",
			Flags: []cli.Flag{registrarFlag, authorityFlag},
			Action: voterAction(func(ctx *cli.Context, reg *registry.Registry, registrarAddr, authority vsr.Address) error {
				info, err := reg.LogVoterInfo(registrarAddr, authority)
				if err != nil {
					return err
				}
				return printJSON(ctx, info)
			}),
		},
		{
			Name:  "show",
			Usage: "print the stored voter",
			Flags: []cli.Flag{registrarFlag, authorityFlag},
			Action: voterAction(func(ctx *cli.Context, reg *registry.Registry, registrarAddr, authority vsr.Address) error {
				v, err := reg.Voter(registrarAddr, authority)
				if err != nil {
					return err
				}
				return printJSON(ctx, v)
			}),
		},
	},
}
