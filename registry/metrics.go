// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/aitoothbrush/brusho-vsr/metrics"
	"github.com/aitoothbrush/brusho-vsr/registry/reverts"
)

var (
	metricOperations = metrics.LazyLoadCounterVec("registry_operations_count", []string{"op", "result"})
	metricClaimed    = metrics.LazyLoadHistogram("registry_claimed_amount", metrics.BucketTokenAmounts)
	metricLocked     = metrics.LazyLoadGaugeVec("registry_permanently_locked_amount", []string{"registrar"})
)

// resultOf labels a failed operation by its error category.
func resultOf(err error) string {
	if cat := reverts.CategoryOf(err); cat != 0 {
		return cat.String()
	}
	return "error"
}
