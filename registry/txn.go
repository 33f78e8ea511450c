// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/aitoothbrush/brusho-vsr/registry/events"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
	"github.com/aitoothbrush/brusho-vsr/registry/voter"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// accrue loads the registrar and brings its reward index up to the
// registrar clock. It returns the registrar clock.
func (t *txn) accrue(addr vsr.Address) (*registrar.Registrar, int64, error) {
	reg, err := t.registrars.MustGet(addr)
	if err != nil {
		return nil, 0, err
	}
	curr := reg.Now(t.now)
	if err := reg.Accrue(curr); err != nil {
		return nil, 0, err
	}
	return reg, curr, nil
}

func (t *txn) saveRegistrar(reg *registrar.Registrar) error {
	addr := reg.Address()
	t.touchedRegistrars[addr] = reg
	return t.registrars.Set(addr, reg)
}

// authorize checks the caller against the realm authority of the registrar.
func authorize(reg *registrar.Registrar, caller vsr.Address) error {
	if reg.RealmAuthority != caller {
		return reverts.ErrInvalidRealmAuthority
	}
	return nil
}

// loadVoter loads the voter of authority and settles its reward against the
// already accrued registrar. A non nil caller must be the voter authority.
func (t *txn) loadVoter(reg *registrar.Registrar, authority vsr.Address, caller *vsr.Address) (*voter.Voter, error) {
	if caller != nil && *caller != authority {
		return nil, reverts.ErrInvalidAuthority
	}
	v, err := t.voters.MustGet(voter.AddressOf(reg.Address(), authority))
	if err != nil {
		return nil, err
	}
	if v.Registrar != reg.Address() {
		return nil, reverts.ErrInternal
	}
	if err := v.Reconcile(reg); err != nil {
		return nil, err
	}
	return v, nil
}

// saveVoter persists the voter and refreshes its weight record.
func (t *txn) saveVoter(reg *registrar.Registrar, v *voter.Voter, curr int64) error {
	addr := v.Address()
	t.touchedVoters[addr] = struct{}{}
	if err := t.voters.Set(addr, v); err != nil {
		return err
	}
	return t.refreshWeight(reg, v, curr)
}

func (t *txn) refreshWeight(reg *registrar.Registrar, v *voter.Voter, curr int64) error {
	weight, err := v.Weight(&reg.VotingConfig, curr)
	if err != nil {
		return err
	}
	return t.voters.SetWeightRecord(v.Address(), &voter.WeightRecord{
		Realm:               reg.Realm,
		GoverningTokenMint:  reg.GoverningTokenMint,
		GoverningTokenOwner: v.Authority,
		VoterWeight:         weight,
		ExpiryTs:            uint64(curr),
	})
}

func (t *txn) emit(reg *registrar.Registrar, curr int64, payload events.Payload) error {
	return t.emitter.Emit(reg.Address(), curr, payload)
}
