// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registrar

import (
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/builtin/solidity"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var (
	slotRegistrars       = vsr.BytesToBytes32([]byte("registrars"))
	slotMaxWeightRecords = vsr.BytesToBytes32([]byte("max-voter-weight-records"))
)

// MaxWeightRecord is the upper bound of voting power published for governance.
type MaxWeightRecord struct {
	Realm              vsr.Address `json:"realm"`
	GoverningTokenMint vsr.Address `json:"governingTokenMint"`
	MaxVoterWeight     uint64      `json:"maxVoterWeight"`
	ExpiryTs           uint64      `json:"expiryTs"`
}

// Service persists registrars keyed by their derived address.
type Service struct {
	registrars *solidity.Mapping[vsr.Address, *Registrar]
	maxRecords *solidity.Mapping[vsr.Address, *MaxWeightRecord]
}

func NewService(sctx *solidity.Context) *Service {
	return &Service{
		registrars: solidity.NewMapping[vsr.Address, *Registrar](sctx, slotRegistrars),
		maxRecords: solidity.NewMapping[vsr.Address, *MaxWeightRecord](sctx, slotMaxWeightRecords),
	}
}

// Get returns the registrar, or nil when absent.
func (s *Service) Get(addr vsr.Address) (*Registrar, error) {
	r, err := s.registrars.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get registrar")
	}
	return r, nil
}

// MustGet returns the registrar, failing with RegistrarNotFound when absent.
func (s *Service) MustGet(addr vsr.Address) (*Registrar, error) {
	r, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, reverts.ErrRegistrarNotFound
	}
	return r, nil
}

func (s *Service) Exists(addr vsr.Address) (bool, error) {
	return s.registrars.Exists(addr)
}

func (s *Service) Set(addr vsr.Address, r *Registrar) error {
	if err := s.registrars.Set(addr, r); err != nil {
		return errors.Wrap(err, "failed to set registrar")
	}
	return nil
}

// GetMaxWeightRecord returns the max voter weight record of a registrar, or nil when absent.
func (s *Service) GetMaxWeightRecord(addr vsr.Address) (*MaxWeightRecord, error) {
	rec, err := s.maxRecords.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get max voter weight record")
	}
	return rec, nil
}

func (s *Service) SetMaxWeightRecord(addr vsr.Address, rec *MaxWeightRecord) error {
	if err := s.maxRecords.Set(addr, rec); err != nil {
		return errors.Wrap(err, "failed to set max voter weight record")
	}
	return nil
}
