// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoothbrush/brusho-vsr/registry/events"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/voter"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

type cliRunner struct {
	t       *testing.T
	dataDir string
}

func (c *cliRunner) run(args ...string) (string, error) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	err := app.Run(append([]string{"vsr", "--data-dir", c.dataDir, "--verbosity", "0"}, args...))
	return out.String(), err
}

func (c *cliRunner) mustRun(args ...string) string {
	out, err := c.run(args...)
	require.NoError(c.t, err, "vsr %s\n%s", strings.Join(args, " "), out)
	return out
}

func (c *cliRunner) address(label string) string {
	return strings.TrimSpace(c.mustRun("address", "--label", label))
}

func TestCommands(t *testing.T) {
	c := &cliRunner{t: t, dataDir: t.TempDir()}

	admin := c.address("realm-authority")
	alice := c.address("alice")
	mint := c.address("mint")
	realm := c.address("realm")
	assert.Equal(t, vsr.BytesToAddress([]byte("alice")).String(), alice)

	c.mustRun("mint", "create", "--caller", admin, "--mint", mint)
	c.mustRun("mint", "to", "--caller", admin, "--mint", mint, "--owner", admin, "--amount", "1000000")
	c.mustRun("mint", "to", "--caller", admin, "--mint", mint, "--owner", alice, "--amount", "20000000000")

	var created struct {
		Registrar vsr.Address `json:"registrar"`
	}
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("registrar", "create", "--caller", admin, "--realm", realm, "--mint", mint)), &created))
	reg := created.Registrar.String()

	c.mustRun("registrar", "fund", "--caller", admin, "--registrar", reg, "--amount", "1000000")
	c.mustRun("voter", "create", "--caller", alice, "--registrar", reg)
	c.mustRun("deposit", "node", "--depositor", alice, "--registrar", reg)
	c.mustRun("deposit", "ordinary", "--depositor", alice, "--registrar", reg,
		"--index", "1", "--amount", "5000", "--periods", "30", "--unit", "days")

	var records []*events.Record
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("events", "--registrar", reg)), &records))
	require.Len(t, records, 2)
	assert.IsType(t, &events.NodeDeposit{}, records[0].Payload)
	assert.IsType(t, &events.OrdinaryDeposit{}, records[1].Payload)

	var r registrar.Registrar
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("registrar", "show", "--registrar", reg)), &r))
	assert.Equal(t, admin, r.RealmAuthority.String())
	assert.Equal(t, mint, r.GoverningTokenMint.String())

	var info voter.Info
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("voter", "info", "--registrar", reg, "--authority", alice)), &info))
	assert.Equal(t, uint64(10_000_005_000), info.VotingPowerBaseline)
	require.NotNil(t, info.DepositEntries[0])
	require.NotNil(t, info.DepositEntries[1])
	assert.Nil(t, info.DepositEntries[2])

	var balance struct {
		Balance uint64 `json:"balance"`
	}
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("mint", "balance", "--mint", mint, "--owner", alice)), &balance))
	assert.Equal(t, uint64(9_999_995_000), balance.Balance)

	out := c.mustRun("events", "--registrar", reg, "--from", "100")
	assert.JSONEq(t, "[]", out)

	var claim struct {
		Destination vsr.Address `json:"destination"`
	}
	require.NoError(t, json.Unmarshal([]byte(c.mustRun("claim", "--caller", alice, "--registrar", reg, "--amount", "0")), &claim))
	assert.Equal(t, alice, claim.Destination.String())

	out = c.mustRun("inspect", "--registrar", reg)
	assert.Contains(t, out, "RealmAuthority")
	assert.Contains(t, out, "LastAggregatedValue")
	out = c.mustRun("inspect", "--registrar", reg, "--authority", alice)
	assert.Contains(t, out, "Deposits")
}

func TestCommandErrors(t *testing.T) {
	c := &cliRunner{t: t, dataDir: t.TempDir()}
	unknown := c.address("unknown")

	tests := []struct {
		name string
		args []string
	}{
		{"missing label", []string{"address"}},
		{"missing registrar", []string{"registrar", "show"}},
		{"bad address", []string{"registrar", "show", "--registrar", "0x0"}},
		{"unknown registrar", []string{"registrar", "show", "--registrar", unknown}},
		{"unknown unit", []string{"deposit", "ordinary", "--depositor", unknown, "--registrar", unknown, "--unit", "week"}},
		{"index out of range", []string{"deposit", "withdraw", "--caller", unknown, "--registrar", unknown, "--index", "256"}},
		{"excess claim", []string{"claim", "--caller", unknown, "--registrar", unknown, "--amount", "1"}},
		{"bad verbosity", []string{"--verbosity", "9", "address", "--label", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.run(tt.args...)
			assert.Error(t, err)
		})
	}
}
