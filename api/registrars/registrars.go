// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registrars

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/api/utils"
	"github.com/aitoothbrush/brusho-vsr/registry"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/registry/voter"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

// DefaultEventsLimit is the page size when the query names none.
const DefaultEventsLimit = 100

type Registrars struct {
	reg         *registry.Registry
	eventsLimit uint64
}

func New(reg *registry.Registry, eventsLimit uint64) *Registrars {
	if eventsLimit == 0 {
		eventsLimit = DefaultEventsLimit
	}
	return &Registrars{reg: reg, eventsLimit: eventsLimit}
}

func (rs *Registrars) handleGetRegistrar(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("registrar", mux.Vars(req)["registrar"])
	if err != nil {
		return err
	}
	reg, err := rs.reg.Registrar(addr)
	if err != nil {
		return err
	}
	b, err := rs.reg.RewardBreaker(addr)
	if err != nil {
		return err
	}
	vault := registrar.RewardVaultOf(addr)
	balance, err := rs.reg.BalanceOf(reg.GoverningTokenMint, vault)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Registrar{
		Address:            addr,
		Registrar:          reg,
		RewardVault:        vault,
		RewardVaultBalance: balance,
		Breaker:            b,
	})
}

func (rs *Registrars) handleGetMaxVoterWeight(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("registrar", mux.Vars(req)["registrar"])
	if err != nil {
		return err
	}
	rec, err := rs.reg.MaxVoteWeightRecord(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, rec)
}

func parseVoterVars(req *http.Request) (vsr.Address, vsr.Address, error) {
	vars := mux.Vars(req)
	registrarAddr, err := utils.ParseAddress("registrar", vars["registrar"])
	if err != nil {
		return vsr.Address{}, vsr.Address{}, err
	}
	authority, err := utils.ParseAddress("authority", vars["authority"])
	if err != nil {
		return vsr.Address{}, vsr.Address{}, err
	}
	return registrarAddr, authority, nil
}

func (rs *Registrars) handleGetVoter(w http.ResponseWriter, req *http.Request) error {
	registrarAddr, authority, err := parseVoterVars(req)
	if err != nil {
		return err
	}
	reg, err := rs.reg.Registrar(registrarAddr)
	if err != nil {
		return err
	}
	v, err := rs.reg.Voter(registrarAddr, authority)
	if err != nil {
		return err
	}
	addr := v.Address()
	vault := voter.VaultOf(addr)
	balance, err := rs.reg.BalanceOf(reg.GoverningTokenMint, vault)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Voter{
		Address:      addr,
		Voter:        v,
		Vault:        vault,
		VaultBalance: balance,
	})
}

func (rs *Registrars) handleGetVoterWeight(w http.ResponseWriter, req *http.Request) error {
	registrarAddr, authority, err := parseVoterVars(req)
	if err != nil {
		return err
	}
	rec, err := rs.reg.VoterWeightRecord(registrarAddr, authority)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, rec)
}

func (rs *Registrars) handleGetVoterInfo(w http.ResponseWriter, req *http.Request) error {
	registrarAddr, authority, err := parseVoterVars(req)
	if err != nil {
		return err
	}
	info, err := rs.reg.VoterInfo(registrarAddr, authority)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, info)
}

func (rs *Registrars) handleGetEvents(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.ParseAddress("registrar", mux.Vars(req)["registrar"])
	if err != nil {
		return err
	}
	query := req.URL.Query()
	from, err := utils.ParseUint("from", query.Get("from"), 0)
	if err != nil {
		return err
	}
	limit, err := utils.ParseUint("limit", query.Get("limit"), rs.eventsLimit)
	if err != nil {
		return err
	}
	if limit == 0 || limit > rs.eventsLimit {
		return utils.BadRequest(errors.Errorf("limit: must be between 1 and %d", rs.eventsLimit))
	}
	if _, err := rs.reg.Registrar(addr); err != nil {
		return err
	}
	records, err := rs.reg.Events(addr, from, int(limit))
	if err != nil {
		return err
	}
	if records == nil {
		return utils.WriteJSON(w, []any{})
	}
	return utils.WriteJSON(w, records)
}

func (rs *Registrars) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{registrar}").
		Methods(http.MethodGet).
		Name("registrars_get_registrar").
		HandlerFunc(utils.WrapHandlerFunc(rs.handleGetRegistrar))
	sub.Path("/{registrar}/max-voter-weight").
		Methods(http.MethodGet).
		Name("registrars_get_max_voter_weight").
		HandlerFunc(utils.WrapHandlerFunc(rs.handleGetMaxVoterWeight))
	sub.Path("/{registrar}/events").
		Methods(http.MethodGet).
		Name("registrars_get_events").
		HandlerFunc(utils.WrapHandlerFunc(rs.handleGetEvents))
	sub.Path("/{registrar}/voters/{authority}").
		Methods(http.MethodGet).
		Name("registrars_get_voter").
		HandlerFunc(utils.WrapHandlerFunc(rs.handleGetVoter))
	sub.Path("/{registrar}/voters/{authority}/weight").
		Methods(http.MethodGet).
		Name("registrars_get_voter_weight").
		HandlerFunc(utils.WrapHandlerFunc(rs.handleGetVoterWeight))
	sub.Path("/{registrar}/voters/{authority}/info").
		Methods(http.MethodGet).
		Name("registrars_get_voter_info").
		HandlerFunc(utils.WrapHandlerFunc(rs.handleGetVoterInfo))
}
