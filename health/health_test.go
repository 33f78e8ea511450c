// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoothbrush/brusho-vsr/registry/events"
)

func TestHealth_NewEvent(t *testing.T) {
	clk := clockwork.NewFakeClock()
	h := New(clk)

	status, err := h.Status(0)
	require.NoError(t, err)
	assert.False(t, status.Healthy)
	assert.Nil(t, status.EventIngestion.LastTimestamp)

	h.StoreReady(true)
	status, err = h.Status(0)
	require.NoError(t, err)
	assert.True(t, status.Healthy)

	// idle bound without any event
	status, err = h.Status(time.Minute)
	require.NoError(t, err)
	assert.False(t, status.Healthy)

	h.NewEvent(7)
	status, err = h.Status(time.Minute)
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Equal(t, uint64(7), status.EventIngestion.LastSeq)
	require.NotNil(t, status.EventIngestion.LastTimestamp)
	assert.Equal(t, clk.Now(), *status.EventIngestion.LastTimestamp)

	clk.Advance(2 * time.Minute)
	status, err = h.Status(time.Minute)
	require.NoError(t, err)
	assert.False(t, status.Healthy)
}

func TestHealth_StoreReady(t *testing.T) {
	h := &Health{}

	h.StoreReady(true)
	assert.True(t, h.storeReady)

	h.StoreReady(false)
	assert.False(t, h.storeReady)
}

type feedSource struct {
	feed event.Feed
}

func (f *feedSource) SubscribeEvents(ch chan<- *events.Record) event.Subscription {
	return f.feed.Subscribe(ch)
}

func TestHealth_Watch(t *testing.T) {
	h := New(clockwork.NewFakeClock())
	src := &feedSource{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Watch(ctx, src) }()

	require.Eventually(t, func() bool {
		return src.feed.Send(&events.Record{Seq: 3}) > 0
	}, time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		status, _ := h.Status(0)
		return status.EventIngestion.LastSeq == 3
	}, time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
