// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/builtin/solidity"
	"github.com/aitoothbrush/brusho-vsr/kv"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var slotSeq = vsr.BytesToBytes32([]byte("event-seq"))

// Emitter collects the records of one operation. Sequence numbers come from
// program storage so they are committed together with the state.
type Emitter struct {
	seq     *solidity.Uint64
	records []*Record
}

func NewEmitter(sctx *solidity.Context) *Emitter {
	return &Emitter{seq: solidity.NewUint64(sctx, slotSeq)}
}

// Emit appends a record for the payload.
func (e *Emitter) Emit(registrar vsr.Address, ts int64, payload Payload) error {
	seq, err := e.seq.Add(1)
	if err != nil {
		return errors.Wrap(err, "next event seq")
	}
	e.records = append(e.records, &Record{
		Seq:       seq,
		Registrar: registrar,
		Timestamp: ts,
		Payload:   payload,
	})
	return nil
}

// Records returns the collected records in emission order.
func (e *Emitter) Records() []*Record {
	return e.records
}

// Log reads and writes records keyed by registrar and sequence.
type Log struct {
	store kv.Store
}

// NewLog creates a log on the store, usually a bucket of the main store.
func NewLog(store kv.Store) *Log {
	return &Log{store: store}
}

func recordKey(registrar vsr.Address, seq uint64) []byte {
	key := make([]byte, 0, len(registrar)+8)
	key = append(key, registrar[:]...)
	return binary.BigEndian.AppendUint64(key, seq)
}

// Write puts records into the putter, which is the log's store or a batch on it.
func Write(putter kv.Putter, records []*Record) error {
	for _, r := range records {
		data, err := rlp.EncodeToBytes(r)
		if err != nil {
			return errors.Wrap(err, "encode event")
		}
		if err := putter.Put(recordKey(r.Registrar, r.Seq), data); err != nil {
			return errors.Wrap(err, "put event")
		}
	}
	return nil
}

// Range returns up to limit records of the registrar with seq >= from.
func (l *Log) Range(registrar vsr.Address, from uint64, limit int) ([]*Record, error) {
	span := kv.Range{
		Start: recordKey(registrar, from),
		Limit: recordKey(registrar, ^uint64(0)),
	}

	var records []*Record
	err := kv.Scan(l.store, span, func(_, val []byte) (bool, error) {
		var r Record
		if err := rlp.DecodeBytes(val, &r); err != nil {
			return false, errors.Wrap(err, "decode event")
		}
		records = append(records, &r)
		return limit <= 0 || len(records) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
