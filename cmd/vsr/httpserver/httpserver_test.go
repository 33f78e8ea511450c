// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoothbrush/brusho-vsr/api/admin/apilogs"
	"github.com/aitoothbrush/brusho-vsr/api/admin/loglevel"
	"github.com/aitoothbrush/brusho-vsr/health"
	"github.com/aitoothbrush/brusho-vsr/metrics"
)

func TestStartAPIServer(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/slow", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("late"))
	})
	handler.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.Write(b)
	})

	url, shutdown, err := StartAPIServer("localhost:0", handler, 50*time.Millisecond)
	require.NoError(t, err)
	defer shutdown()

	res, err := http.Get(url + "slow") //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)

	res, err = http.Post(url+"echo", "text/plain", strings.NewReader("hello")) //#nosec G107
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, "hello", string(body))

	res, err = http.Post(url+"echo", "text/plain", bytes.NewReader(make([]byte, maxRequestBodySize+1))) //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)
}

func TestStartMetricsServer(t *testing.T) {
	metrics.InitializePrometheusMetrics()
	metrics.Counter("httpserver_test").Add(1)

	url, shutdown, err := StartMetricsServer("localhost:0")
	require.NoError(t, err)
	defer shutdown()

	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "vsr_metrics_httpserver_test 1")
}

func TestStartAdminServer(t *testing.T) {
	var (
		logLevel slog.LevelVar
		apiLogs  atomic.Bool
	)
	h := health.New(clockwork.NewFakeClock())
	h.StoreReady(true)

	url, shutdown, err := StartAdminServer("localhost:0", &logLevel, &apiLogs, h)
	require.NoError(t, err)
	defer shutdown()

	res, err := http.Get(url + "/health") //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	body, _ := json.Marshal(loglevel.Request{Level: "error"})
	res, err = http.Post(url+"/loglevel", "application/json", bytes.NewReader(body)) //#nosec G107
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, slog.LevelError, logLevel.Level())

	body, _ = json.Marshal(apilogs.LogStatus{Enabled: true})
	res, err = http.Post(url+"/apilogs", "application/json", bytes.NewReader(body)) //#nosec G107
	require.NoError(t, err)
	data, err := io.ReadAll(res.Body)
	res.Body.Close()
	require.NoError(t, err)
	assert.JSONEq(t, `{"enabled":true}`, string(data))
	assert.True(t, apiLogs.Load())
}

func TestStartServer_BadAddr(t *testing.T) {
	_, _, err := StartAdminServer("not-an-addr", &slog.LevelVar{}, &atomic.Bool{}, health.New(nil))
	assert.Error(t, err)
	_, _, err = StartMetricsServer("not-an-addr")
	assert.Error(t, err)
}
