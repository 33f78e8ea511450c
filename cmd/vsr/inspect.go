// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/davecgh/go-spew/spew"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/aitoothbrush/brusho-vsr/registry"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

var inspectCommand = cli.Command{
	Name:  "inspect",
	Usage: "dump the stored state of a registrar, or of one of its voters when an authority is given",
	Flags: []cli.Flag{registrarFlag, authorityFlag},
	Action: withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
		registrarAddr, err := addressFlag(ctx, registrarFlag.Name)
		if err != nil {
			return err
		}
		if ctx.String(authorityFlag.Name) == "" {
			r, err := reg.Registrar(registrarAddr)
			if err != nil {
				return err
			}
			b, err := reg.RewardBreaker(registrarAddr)
			if err != nil {
				return err
			}
			maxWeight, err := reg.MaxVoteWeightRecord(registrarAddr)
			if err != nil {
				return err
			}
			dumpConfig.Fdump(ctx.App.Writer, r, b, maxWeight)
			return nil
		}

		authority, err := addressFlag(ctx, authorityFlag.Name)
		if err != nil {
			return err
		}
		v, err := reg.Voter(registrarAddr, authority)
		if err != nil {
			return err
		}
		rec, err := reg.VoterWeightRecord(registrarAddr, authority)
		if err != nil {
			return err
		}
		dumpConfig.Fdump(ctx.App.Writer, v, rec)
		return nil
	}),
}
