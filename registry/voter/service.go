// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package voter

import (
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/builtin/solidity"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var (
	slotVoters        = vsr.BytesToBytes32([]byte("voters"))
	slotWeightRecords = vsr.BytesToBytes32([]byte("voter-weight-records"))
)

// WeightRecord is the voter weight published for governance.
// It is valid for the timestamp it expires at.
type WeightRecord struct {
	Realm               vsr.Address `json:"realm"`
	GoverningTokenMint  vsr.Address `json:"governingTokenMint"`
	GoverningTokenOwner vsr.Address `json:"governingTokenOwner"`
	VoterWeight         uint64      `json:"voterWeight"`
	ExpiryTs            uint64      `json:"expiryTs"`
}

// Service persists voters and their weight records keyed by voter address.
type Service struct {
	voters  *solidity.Mapping[vsr.Address, *Voter]
	records *solidity.Mapping[vsr.Address, *WeightRecord]
}

func NewService(sctx *solidity.Context) *Service {
	return &Service{
		voters:  solidity.NewMapping[vsr.Address, *Voter](sctx, slotVoters),
		records: solidity.NewMapping[vsr.Address, *WeightRecord](sctx, slotWeightRecords),
	}
}

// Get returns the voter, or nil when absent.
func (s *Service) Get(addr vsr.Address) (*Voter, error) {
	v, err := s.voters.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get voter")
	}
	return v, nil
}

// MustGet returns the voter, failing with VoterNotFound when absent.
func (s *Service) MustGet(addr vsr.Address) (*Voter, error) {
	v, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, reverts.ErrVoterNotFound
	}
	return v, nil
}

func (s *Service) Exists(addr vsr.Address) (bool, error) {
	return s.voters.Exists(addr)
}

func (s *Service) Set(addr vsr.Address, v *Voter) error {
	if err := s.voters.Set(addr, v); err != nil {
		return errors.Wrap(err, "failed to set voter")
	}
	return nil
}

// Delete removes the voter and its weight record.
func (s *Service) Delete(addr vsr.Address) {
	s.voters.Delete(addr)
	s.records.Delete(addr)
}

// GetWeightRecord returns the weight record of a voter, or nil when absent.
func (s *Service) GetWeightRecord(addr vsr.Address) (*WeightRecord, error) {
	rec, err := s.records.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get voter weight record")
	}
	return rec, nil
}

func (s *Service) SetWeightRecord(addr vsr.Address, rec *WeightRecord) error {
	if err := s.records.Set(addr, rec); err != nil {
		return errors.Wrap(err, "failed to set voter weight record")
	}
	return nil
}
