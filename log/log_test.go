// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	ethlog "github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContext_FollowsDefault(t *testing.T) {
	prev := ethlog.Root()
	t.Cleanup(func() { ethlog.SetDefault(prev) })

	logger := WithContext("pkg", "test")

	var buf bytes.Buffer
	SetDefault(NewJSONHandler(&buf, LevelInfo))

	logger.With("op", "deposit").Info("done", "amount", 10)
	logger.Debug("filtered")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "done", rec["msg"])
	assert.Equal(t, "test", rec["pkg"])
	assert.Equal(t, "deposit", rec["op"])
	assert.Equal(t, float64(10), rec["amount"])
}

func TestLevelVar(t *testing.T) {
	prev := ethlog.Root()
	t.Cleanup(func() { ethlog.SetDefault(prev) })

	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(LevelWarn)
	SetDefault(NewJSONHandler(&buf, &level))

	logger := WithContext("pkg", "test")
	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	level.Set(LevelDebug)
	logger.Debug("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestFromVerbosity(t *testing.T) {
	assert.Equal(t, LevelCrit, FromVerbosity(0))
	assert.Equal(t, LevelInfo, FromVerbosity(3))
	assert.Equal(t, LevelTrace, FromVerbosity(5))
}

func TestTerminalHandlerLevelVar(t *testing.T) {
	var (
		buf   bytes.Buffer
		level slog.LevelVar
	)
	level.Set(LevelError)
	logger := slog.New(NewTerminalHandler(&buf, &level, false)).With("pkg", "test")

	logger.Warn("dropped")
	assert.Zero(t, buf.Len())

	level.Set(LevelInfo)
	logger.Info("kept")
	assert.Contains(t, buf.String(), "kept")
	assert.Contains(t, buf.String(), "pkg=test")
}
