// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/aitoothbrush/brusho-vsr/api/utils"
	"github.com/aitoothbrush/brusho-vsr/health"
)

type API struct {
	healthStatus *health.Health
}

func New(healthStatus *health.Health) *API {
	return &API{
		healthStatus: healthStatus,
	}
}

func (h *API) handleGetHealth(w http.ResponseWriter, r *http.Request) error {
	var maxIdle time.Duration
	if s := r.URL.Query().Get("maxIdle"); s != "" {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return utils.BadRequest(errors.WithMessage(err, "maxIdle"))
		}
		maxIdle = parsed
	}

	acc, err := h.healthStatus.Status(maxIdle)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", utils.JSONContentType)
	if !acc.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, acc)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
