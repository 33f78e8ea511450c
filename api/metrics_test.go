// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoothbrush/brusho-vsr/api/registrars"
	"github.com/aitoothbrush/brusho-vsr/api/subscriptions"
	"github.com/aitoothbrush/brusho-vsr/breaker"
	"github.com/aitoothbrush/brusho-vsr/health"
	"github.com/aitoothbrush/brusho-vsr/lvldb"
	"github.com/aitoothbrush/brusho-vsr/metrics"
	"github.com/aitoothbrush/brusho-vsr/registry"
	"github.com/aitoothbrush/brusho-vsr/registry/lockup"
	"github.com/aitoothbrush/brusho-vsr/registry/registrar"
	"github.com/aitoothbrush/brusho-vsr/vsr"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

var (
	admin = vsr.BytesToAddress([]byte("realm-authority"))
	mint  = vsr.BytesToAddress([]byte("mint"))
)

func newRegistry(t *testing.T) (*registry.Registry, vsr.Address) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	reg, err := registry.New(db, registry.Options{
		Clock: clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0)),
	})
	require.NoError(t, err)
	require.NoError(t, reg.CreateMint(admin, mint, 6))
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
	return reg, addr
}

func parseMetrics(t *testing.T, ts *httptest.Server) map[string][]*labelledValue {
	body, _ := httpGet(t, ts.URL+"/metrics")
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	out := make(map[string][]*labelledValue)
	for name, mf := range families {
		for _, m := range mf.GetMetric() {
			lv := &labelledValue{labels: make(map[string]string)}
			for _, l := range m.GetLabel() {
				lv.labels[l.GetName()] = l.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				lv.value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				lv.value = m.GetGauge().GetValue()
			}
			out[name] = append(out[name], lv)
		}
	}
	return out
}

type labelledValue struct {
	labels map[string]string
	value  float64
}

func find(values []*labelledValue, labels map[string]string) *labelledValue {
	for _, v := range values {
		match := true
		for k, want := range labels {
			if v.labels[k] != want {
				match = false
				break
			}
		}
		if match {
			return v
		}
	}
	return nil
}

func TestMetricsMiddleware(t *testing.T) {
	reg, addr := newRegistry(t)

	router := mux.NewRouter()
	registrars.New(reg, 0).Mount(router, "/registrars")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	defer ts.Close()

	unknown := vsr.BytesToAddress([]byte("unknown"))
	httpGet(t, ts.URL+"/registrars/"+addr.String())
	httpGet(t, ts.URL+"/registrars/0x0")
	_, code := httpGet(t, ts.URL+"/registrars/"+unknown.String())
	assert.Equal(t, http.StatusNotFound, code)

	m := parseMetrics(t, ts)["vsr_metrics_api_request_count"]
	require.Len(t, m, 3, "should be 3 metric entries")
	for _, code := range []string{"200", "400", "404"} {
		v := find(m, map[string]string{"name": "registrars_get_registrar", "code": code, "method": "GET"})
		require.NotNil(t, v, code)
		assert.Equal(t, float64(1), v.value)
	}
	assert.NotEmpty(t, parseMetrics(t, ts)["vsr_metrics_api_duration_ms"])
}

func TestWebsocketMetrics(t *testing.T) {
	reg, _ := newRegistry(t)

	router := mux.NewRouter()
	sub := subscriptions.New(reg, []string{"*"})
	sub.Mount(router, "/subscriptions")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	defer ts.Close()
	defer sub.Close()

	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/events"}
	active := func() float64 {
		v := find(parseMetrics(t, ts)["vsr_metrics_api_active_websocket_count"], map[string]string{"subject": "events"})
		if v == nil {
			return 0
		}
		return v.value
	}

	conn1, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn1.Close()
	require.Eventually(t, func() bool { return active() == 1 }, time.Second, 10*time.Millisecond)

	conn2, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn2.Close()
	require.Eventually(t, func() bool { return active() == 2 }, time.Second, 10*time.Millisecond)

	conn1.Close()
	require.Eventually(t, func() bool { return active() == 1 }, time.Second, 10*time.Millisecond)

	// upgrades are not counted as requests
	assert.Nil(t, find(parseMetrics(t, ts)["vsr_metrics_api_request_count"], map[string]string{"name": "subscriptions_events"}))
}

func TestNew(t *testing.T) {
	reg, addr := newRegistry(t)
	var reqLogs atomic.Bool
	h := health.New(nil)
	handler, closeSubs := New(reg, Options{
		AllowedOrigins:  "https://Example.org, *",
		EnableMetrics:   true,
		Health:          h,
		EnableReqLogger: &reqLogs,
	})
	ts := httptest.NewServer(handler)
	defer ts.Close()
	defer closeSubs()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/registrars/"+addr.String(), nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.org")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("Access-Control-Allow-Origin"))

	_, code := httpGet(t, ts.URL+"/unknown")
	assert.Equal(t, http.StatusNotFound, code)

	_, code = httpGet(t, ts.URL+"/health")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	h.StoreReady(true)
	_, code = httpGet(t, ts.URL+"/health")
	assert.Equal(t, http.StatusOK, code)
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	if err != nil {
		t.Fatal(err)
	}
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}
