// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// Record is an emitted event with its position in the log.
type Record struct {
	Seq       uint64
	Registrar vsr.Address
	Timestamp int64
	Payload   Payload
}

type recordRLP struct {
	Seq       uint64
	Registrar vsr.Address
	Timestamp uint64
	Type      Type
	Payload   rlp.RawValue
}

// EncodeRLP implements rlp.Encoder.
func (r *Record) EncodeRLP(w io.Writer) error {
	payload, err := rlp.EncodeToBytes(r.Payload)
	if err != nil {
		return err
	}
	return rlp.Encode(w, &recordRLP{
		Seq:       r.Seq,
		Registrar: r.Registrar,
		Timestamp: uint64(r.Timestamp),
		Type:      r.Payload.Type(),
		Payload:   payload,
	})
}

// DecodeRLP implements rlp.Decoder.
func (r *Record) DecodeRLP(s *rlp.Stream) error {
	var obj recordRLP
	if err := s.Decode(&obj); err != nil {
		return err
	}
	payload, err := obj.Type.newPayload()
	if err != nil {
		return err
	}
	if err := rlp.DecodeBytes(obj.Payload, payload); err != nil {
		return err
	}
	*r = Record{
		Seq:       obj.Seq,
		Registrar: obj.Registrar,
		Timestamp: int64(obj.Timestamp),
		Payload:   payload,
	}
	return nil
}

type recordJSON struct {
	Seq       uint64          `json:"seq"`
	Registrar vsr.Address     `json:"registrar"`
	Timestamp int64           `json:"timestamp"`
	Type      Type            `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

func (r *Record) MarshalJSON() ([]byte, error) {
	payload, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(&recordJSON{
		Seq:       r.Seq,
		Registrar: r.Registrar,
		Timestamp: r.Timestamp,
		Type:      r.Payload.Type(),
		Payload:   payload,
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var obj recordJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	payload, err := obj.Type.newPayload()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(obj.Payload, payload); err != nil {
		return err
	}
	*r = Record{
		Seq:       obj.Seq,
		Registrar: obj.Registrar,
		Timestamp: obj.Timestamp,
		Payload:   payload,
	}
	return nil
}
