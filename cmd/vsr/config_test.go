// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoothbrush/brusho-vsr/breaker"
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.NoError(t, cfg.Voting.Validate())
	assert.NoError(t, cfg.Deposit.Validate())
	assert.NoError(t, cfg.Breaker.Validate())
	assert.Equal(t, lockup.Months(6), cfg.Deposit.NodeDepositLockupDuration)
	assert.Equal(t, breaker.Percent, cfg.Breaker.ThresholdType)
	assert.Empty(t, cfg.RealmAuthority)
}

func TestLoadConfig(t *testing.T) {
	authority := vsr.BytesToAddress([]byte("realm-authority"))
	path := writeConfig(t, `
realm-authority: "`+authority.String()+`"
voting:
  lockup-saturation-secs: 86400
deposit:
  ordinary-deposit-min-lockup-duration:
    periods: 2
    unit: months
breaker:
  threshold-type: absolute
  threshold: 5000
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, authority.String(), cfg.RealmAuthority)
	assert.Equal(t, vsr.SecsPerDay, cfg.Voting.LockupSaturationSecs)
	// untouched keys keep their defaults
	assert.Equal(t, vsr.ScaledFactorBase, cfg.Voting.BaselineVoteWeightScaledFactor)
	assert.Equal(t, lockup.Months(2), cfg.Deposit.OrdinaryDepositMinLockupDuration)
	assert.Equal(t, lockup.Months(6), cfg.Deposit.NodeDepositLockupDuration)
	assert.Equal(t, breaker.Absolute, cfg.Breaker.ThresholdType)
	assert.Equal(t, uint64(5000), cfg.Breaker.Threshold)
	assert.Equal(t, vsr.SecsPerDay, cfg.Breaker.WindowSizeSeconds)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", "realm-owner: abc\n"},
		{"unknown unit", "deposit:\n  node-deposit-lockup-duration:\n    periods: 1\n    unit: week\n"},
		{"unknown threshold type", "breaker:\n  threshold-type: ratio\n"},
		{"invalid breaker", "breaker:\n  window-size-seconds: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
