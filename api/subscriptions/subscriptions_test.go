// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoothbrush/brusho-vsr/breaker"
	"github.com/aitoothbrush/brusho-vsr/lvldb"
	"github.com/aitoothbrush/brusho-vsr/registry"
	"github.com/aitoothbrush/brusho-vsr/registry/events"
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

var (
	admin = vsr.BytesToAddress([]byte("realm-authority"))
	mint  = vsr.BytesToAddress([]byte("mint"))
	alice = vsr.BytesToAddress([]byte("alice"))
)

func newRegistry(t *testing.T) (*registry.Registry, vsr.Address) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	reg, err := registry.New(db, registry.Options{
		Clock: clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0)),
	})
	require.NoError(t, err)

	require.NoError(t, reg.CreateMint(admin, mint, 6))
	require.NoError(t, reg.MintTo(admin, mint, alice, 100_000))
	addr, err := reg.CreateRegistrar(admin, vsr.BytesToAddress([]byte("realm")), mint,
		registrar.VotingConfig{
			BaselineVoteWeightScaledFactor: vsr.ScaledFactorBase,
			LockupSaturationSecs:           vsr.SecsPerDay,
		},
		registrar.DepositConfig{
			OrdinaryDepositMinLockupDuration: lockup.Days(1),
			NodeDepositLockupDuration:        lockup.Months(6),
			NodeSecurityDeposit:              10_000,
		},
		breaker.DefaultConfig(1000),
	)
	require.NoError(t, err)
	_, err = reg.CreateVoter(alice, addr)
	require.NoError(t, err)
	return reg, addr
}

func newServer(t *testing.T, reg *registry.Registry) (*Subscriptions, *httptest.Server) {
	subs := New(reg, []string{"*"})
	router := mux.NewRouter()
	subs.Mount(router, "/subscriptions")
	return subs, httptest.NewServer(router)
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	u := url.URL{
		Scheme:   "ws",
		Host:     strings.TrimPrefix(ts.URL, "http://"),
		Path:     "/subscriptions/events",
		RawQuery: query,
	}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	return conn
}

func readRecord(t *testing.T, conn *websocket.Conn) *events.Record {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var r events.Record
	require.NoError(t, conn.ReadJSON(&r))
	return &r
}

func TestSubscribeEvents(t *testing.T) {
	reg, addr := newRegistry(t)
	subs, ts := newServer(t, reg)
	defer ts.Close()

	require.NoError(t, reg.NodeDeposit(alice, addr, alice))

	// the stored record arrives first, which also proves the feed is subscribed
	conn := dial(t, ts, "registrar="+addr.String()+"&from=1")
	defer conn.Close()

	r := readRecord(t, conn)
	assert.Equal(t, uint64(1), r.Seq)
	assert.IsType(t, &events.NodeDeposit{}, r.Payload)

	require.NoError(t, reg.OrdinaryDeposit(alice, addr, alice, 1, 500, lockup.Days(10)))
	r = readRecord(t, conn)
	assert.Equal(t, uint64(2), r.Seq)
	deposit, ok := r.Payload.(*events.OrdinaryDeposit)
	require.True(t, ok)
	assert.Equal(t, uint64(500), deposit.Amount)

	subs.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "%v", err)
}

func TestEventFilter(t *testing.T) {
	reg, _ := newRegistry(t)
	_, ts := newServer(t, reg)
	defer ts.Close()

	res, err := http.Get(ts.URL + "/subscriptions/events?from=1") //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, err = http.Get(ts.URL + "/subscriptions/events?registrar=0x0") //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	other := vsr.BytesToAddress([]byte("other"))
	f := &eventFilter{registrar: &other, from: 3}
	assert.False(t, f.match(&events.Record{Seq: 5, Registrar: alice}))
	assert.False(t, f.match(&events.Record{Seq: 2, Registrar: other}))
	assert.True(t, f.match(&events.Record{Seq: 3, Registrar: other}))
	assert.True(t, (&eventFilter{}).match(&events.Record{Seq: 1, Registrar: alice}))
}
