// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry is the voter stake registry. It serializes the operations
// on registrars and voters, runs each one against a fresh state and commits
// the state changes together with the emitted events in one batch.
package registry

import (
	"sync"

	"github.com/ethereum/go-ethereum/event"
	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/breaker"
	"github.com/aitoothbrush/brusho-vsr/builtin/solidity"
	"github.com/aitoothbrush/brusho-vsr/cache"
	"github.com/aitoothbrush/brusho-vsr/kv"
	"github.com/aitoothbrush/brusho-vsr/log"
	"github.com/aitoothbrush/brusho-vsr/registry/events"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/voter"
	"github.com/aitoothbrush/brusho-vsr/state"
	"github.com/aitoothbrush/brusho-vsr/token"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var (
	logger = log.WithContext("pkg", "registry")

	// program addresses owning the storage of each component
	RegistryProgram = vsr.BytesToAddress([]byte("voter-stake-registry"))
	TokenProgram    = vsr.BytesToAddress([]byte("token"))
	BreakerProgram  = vsr.BytesToAddress([]byte("circuit-breaker"))

	stateBucket = kv.Bucket("s")
	eventBucket = kv.Bucket("e")
)

// DefaultVoterCacheSize is the number of voters kept decoded in memory.
const DefaultVoterCacheSize = 4096

type Options struct {
	Clock          clockwork.Clock
	VoterCacheSize int
}

// Registry is safe for concurrent use. Operations are serialized, reads run
// concurrently against the last committed state.
type Registry struct {
	mu     sync.RWMutex
	db     kv.Store
	states kv.Getter
	log    *events.Log
	clock  clockwork.Clock
	voters *cache.LRU[vsr.Address, *voter.Voter]

	feed  event.Feed
	scope event.SubscriptionScope
}

// New creates a registry on the given store.
func New(db kv.Store, opts Options) (*Registry, error) {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.VoterCacheSize <= 0 {
		opts.VoterCacheSize = DefaultVoterCacheSize
	}
	voters, err := cache.NewLRU[vsr.Address, *voter.Voter](opts.VoterCacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "voter cache")
	}
	return &Registry{
		db:     db,
		states: stateBucket.NewGetter(db),
		log:    events.NewLog(eventBucket.NewStore(db)),
		clock:  opts.Clock,
		voters: voters,
	}, nil
}

// Close ends all event subscriptions.
func (r *Registry) Close() {
	r.scope.Close()
}

// SubscribeEvents delivers every committed event record to ch.
func (r *Registry) SubscribeEvents(ch chan<- *events.Record) event.Subscription {
	return r.scope.Track(r.feed.Subscribe(ch))
}

// Events returns up to limit records of the registrar starting at sequence from.
func (r *Registry) Events(registrarAddr vsr.Address, from uint64, limit int) ([]*events.Record, error) {
	return r.log.Range(registrarAddr, from, limit)
}

// VoterCacheStats returns the hit and miss counters of the voter cache.
func (r *Registry) VoterCacheStats() *cache.Stats {
	return r.voters.Stats()
}

// txn holds the services of one operation, all sharing a single state.
type txn struct {
	now        int64
	state      *state.State
	registrars *registrar.Service
	voters     *voter.Service
	ledger     *token.Ledger
	gate       *breaker.Gate
	emitter    *events.Emitter

	touchedVoters     map[vsr.Address]struct{}
	touchedRegistrars map[vsr.Address]*registrar.Registrar
}

func (r *Registry) newTxn() *txn {
	st := state.New(r.states)
	sctx := solidity.NewContext(RegistryProgram, st)
	ledger := token.New(solidity.NewContext(TokenProgram, st))
	return &txn{
		now:               r.clock.Now().Unix(),
		state:             st,
		registrars:        registrar.NewService(sctx),
		voters:            voter.NewService(sctx),
		ledger:            ledger,
		gate:              breaker.NewGate(solidity.NewContext(BreakerProgram, st), ledger),
		emitter:           events.NewEmitter(sctx),
		touchedVoters:     make(map[vsr.Address]struct{}),
		touchedRegistrars: make(map[vsr.Address]*registrar.Registrar),
	}
}

// execute runs fn in a fresh state and commits on success. A failing fn
// leaves no trace in the store.
func (r *Registry) execute(op string, fn func(t *txn) error) error {
	records, err := r.commit(op, fn)
	if err != nil {
		return err
	}
	// subscribers are fed outside the lock, a slow reader only stalls this caller
	for _, rec := range records {
		r.feed.Send(rec)
	}
	return nil
}

// commit runs fn under the write lock and persists its staged changes.
func (r *Registry) commit(op string, fn func(t *txn) error) ([]*events.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.newTxn()
	if err := fn(t); err != nil {
		metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": resultOf(err)})
		return nil, err
	}

	batch := r.db.NewBatch()
	if err := t.state.Stage().Write(stateBucket.NewPutter(batch)); err != nil {
		return nil, err
	}
	records := t.emitter.Records()
	if err := events.Write(eventBucket.NewPutter(batch), records); err != nil {
		return nil, err
	}
	if err := batch.Write(); err != nil {
		logger.Error("failed to commit", "op", op, "error", err)
		return nil, errors.Wrap(err, "commit")
	}

	for addr := range t.touchedVoters {
		r.voters.Remove(addr)
	}
	for addr, reg := range t.touchedRegistrars {
		metricLocked().SetWithLabel(int64(reg.PermanentlyLockedAmount), map[string]string{"registrar": addr.String()})
	}
	metricOperations().AddWithLabel(1, map[string]string{"op": op, "result": "ok"})
	return records, nil
}

// view runs fn against the last committed state, discarding any change.
func (r *Registry) view(fn func(t *txn) error) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return fn(r.newTxn())
}
