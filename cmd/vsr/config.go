// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/aitoothbrush/brusho-vsr/breaker"
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// config holds the registrar defaults. Command line flags take precedence.
type config struct {
	RealmAuthority string                  `yaml:"realm-authority"`
	Realm          string                  `yaml:"realm"`
	Mint           string                  `yaml:"mint"`
	Voting         registrar.VotingConfig  `yaml:"voting"`
	Deposit        registrar.DepositConfig `yaml:"deposit"`
	Breaker        breaker.Config          `yaml:"breaker"`
}

func defaultConfig() *config {
	return &config{
		Voting: registrar.VotingConfig{
			BaselineVoteWeightScaledFactor:       vsr.ScaledFactorBase,
			MaxExtraLockupVoteWeightScaledFactor: vsr.ScaledFactorBase,
			LockupSaturationSecs:                 vsr.SecsPerYear,
		},
		Deposit: registrar.DepositConfig{
			OrdinaryDepositMinLockupDuration: lockup.Days(15),
			NodeDepositLockupDuration:        lockup.Months(6),
			NodeSecurityDeposit:              10_000_000_000,
		},
		// at most 10% of the reward vault per day
		Breaker: breaker.Config{
			WindowSizeSeconds: vsr.SecsPerDay,
			ThresholdType:     breaker.Percent,
			Threshold:         breaker.PercentBase / 10,
		},
	}
}

// loadConfig reads the file at path over the defaults. An empty path gives the defaults.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %v", path)
	}
	if err := cfg.Voting.Validate(); err != nil {
		return nil, errors.WithMessage(err, "voting")
	}
	if err := cfg.Deposit.Validate(); err != nil {
		return nil, errors.WithMessage(err, "deposit")
	}
	if err := cfg.Breaker.Validate(); err != nil {
		return nil, errors.WithMessage(err, "breaker")
	}
	return cfg, nil
}
