// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/jonboulle/clockwork"

	"github.com/aitoothbrush/brusho-vsr/registry/events"
)

type EventIngestion struct {
	LastSeq       uint64     `json:"lastSeq"`
	LastTimestamp *time.Time `json:"lastTimestamp"`
}

type Status struct {
	Healthy        bool            `json:"healthy"`
	EventIngestion *EventIngestion `json:"eventIngestion"`
	StoreReady     bool            `json:"storeReady"`
}

// EventSource is the part of the registry health watches.
type EventSource interface {
	SubscribeEvents(ch chan<- *events.Record) event.Subscription
}

type Health struct {
	lock       sync.RWMutex
	clock      clockwork.Clock
	lastEvent  time.Time
	lastSeq    uint64
	storeReady bool
}

func New(clock clockwork.Clock) *Health {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Health{clock: clock}
}

// NewEvent records that the event seq was committed.
func (h *Health) NewEvent(seq uint64) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastEvent = h.clock.Now()
	h.lastSeq = seq
}

func (h *Health) StoreReady(ready bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.storeReady = ready
}

// Status reports the registry as healthy once its store is ready. A non zero
// maxIdle also requires an event to have been committed within that window.
func (h *Health) Status(maxIdle time.Duration) (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	ingestion := &EventIngestion{LastSeq: h.lastSeq}
	if !h.lastEvent.IsZero() {
		ts := h.lastEvent
		ingestion.LastTimestamp = &ts
	}

	healthy := h.storeReady
	if maxIdle > 0 {
		healthy = healthy && !h.lastEvent.IsZero() && h.clock.Since(h.lastEvent) <= maxIdle
	}

	return &Status{
		Healthy:        healthy,
		EventIngestion: ingestion,
		StoreReady:     h.storeReady,
	}, nil
}

// Watch feeds committed records into h until ctx is done or the feed fails.
func (h *Health) Watch(ctx context.Context, src EventSource) error {
	ch := make(chan *events.Record, 16)
	sub := src.SubscribeEvents(ch)
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-sub.Err():
			return err
		case r := <-ch:
			h.NewEvent(r.Seq)
		}
	}
}
