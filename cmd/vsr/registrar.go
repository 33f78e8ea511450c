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

// registrarAction parses the caller and registrar flags, then loads the config.
func registrarAction(action func(ctx *cli.Context, reg *registry.Registry, cfg *config, caller, registrarAddr vsr.Address) error) cli.ActionFunc {
	return withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
		cfg, err := loadConfig(ctx.GlobalString(configFlag.Name))
		if err != nil {
			return err
		}
		caller, err := addressOr(ctx, callerFlag.Name, cfg.RealmAuthority)
		if err != nil {
			return err
		}
		registrarAddr, err := addressFlag(ctx, registrarFlag.Name)
		if err != nil {
			return err
		}
		return action(ctx, reg, cfg, caller, registrarAddr)
	})
}

var registrarCommand = cli.Command{
	Name:  "registrar",
	Usage: "registrar setup and administration",
	Subcommands: []cli.Command{
		{
			Name:  "create",
			Usage: "create a registrar from the config file, the caller becomes its realm authority",
			Flags: []cli.Flag{callerFlag, realmFlag, mintFlag},
			Action: withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
				cfg, err := loadConfig(ctx.GlobalString(configFlag.Name))
				if err != nil {
					return err
				}
				caller, err := addressOr(ctx, callerFlag.Name, cfg.RealmAuthority)
				if err != nil {
					return err
				}
				realm, err := addressOr(ctx, realmFlag.Name, cfg.Realm)
				if err != nil {
					return err
				}
				mint, err := addressOr(ctx, mintFlag.Name, cfg.Mint)
				if err != nil {
					return err
				}
				addr, err := reg.CreateRegistrar(caller, realm, mint, cfg.Voting, cfg.Deposit, cfg.Breaker)
				if err != nil {
					return err
				}
				return printJSON(ctx, map[string]any{"registrar": addr})
			}),
		},
		{
			Name:  "update-voting",
			Usage: "replace the voting config with the one of the config file",
			Flags: []cli.Flag{callerFlag, registrarFlag},
			Action: registrarAction(func(_ *cli.Context, reg *registry.Registry, cfg *config, caller, registrarAddr vsr.Address) error {
				return reg.UpdateVotingConfig(caller, registrarAddr, cfg.Voting)
			}),
		},
		{
			Name:  "update-deposit",
			Usage: "replace the deposit config with the one of the config file",
			Flags: []cli.Flag{callerFlag, registrarFlag},
			Action: registrarAction(func(_ *cli.Context, reg *registry.Registry, cfg *config, caller, registrarAddr vsr.Address) error {
				return reg.UpdateDepositConfig(caller, registrarAddr, cfg.Deposit)
			}),
		},
		{
			Name:  "update-breaker",
			Usage: "replace the reward payout breaker config with the one of the config file",
			Flags: []cli.Flag{callerFlag, registrarFlag},
			Action: registrarAction(func(_ *cli.Context, reg *registry.Registry, cfg *config, caller, registrarAddr vsr.Address) error {
				return reg.UpdateBreaker(caller, registrarAddr, cfg.Breaker)
			}),
		},
		{
			Name:  "set-time-offset",
			Usage: "shift the registrar clock",
			Flags: []cli.Flag{callerFlag, registrarFlag, offsetFlag},
			Action: registrarAction(func(ctx *cli.Context, reg *registry.Registry, _ *config, caller, registrarAddr vsr.Address) error {
				return reg.SetTimeOffset(caller, registrarAddr, ctx.Int64(offsetFlag.Name))
			}),
		},
		{
			Name:  "fund",
			Usage: "transfer reward tokens from the caller into the reward vault",
			Flags: []cli.Flag{callerFlag, registrarFlag, amountFlag},
			Action: registrarAction(func(ctx *cli.Context, reg *registry.Registry, _ *config, caller, registrarAddr vsr.Address) error {
				return reg.FundRewards(caller, registrarAddr, ctx.Uint64(amountFlag.Name))
			}),
		},
		{
			Name:  "update-max-weight",
			Usage: "store the max voter weight record, the mint defaults to the governing token",
			Flags: []cli.Flag{registrarFlag, mintFlag},
			Action: withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
				registrarAddr, err := addressFlag(ctx, registrarFlag.Name)
				if err != nil {
					return err
				}
				r, err := reg.Registrar(registrarAddr)
				if err != nil {
					return err
				}
				mint, err := addressOr(ctx, mintFlag.Name, r.GoverningTokenMint.String())
				if err != nil {
					return err
				}
				rec, err := reg.UpdateMaxVoteWeight(registrarAddr, mint)
				if err != nil {
					return err
				}
				return printJSON(ctx, rec)
			}),
		},
		{
			Name:  "show",
			Usage: "print the registrar",
			Flags: []cli.Flag{registrarFlag},
			Action: withRegistry(func(ctx *cli.Context, reg *registry.Registry) error {
				registrarAddr, err := addressFlag(ctx, registrarFlag.Name)
				if err != nil {
					return err
				}
				r, err := reg.Registrar(registrarAddr)
				if err != nil {
					return err
				}
				return printJSON(ctx, r)
			}),
		},
	},
}
