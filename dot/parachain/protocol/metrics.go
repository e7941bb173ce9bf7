// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	liveSessionsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "paranet_protocol",
		Name:      "live_sessions",
		Help:      "number of live consensus sessions",
	})
	recentKeysGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "paranet_protocol",
		Name:      "recent_session_keys",
		Help:      "number of recently used local session keys",
	})
	blockDataRequestsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_protocol",
		Name:      "block_data_requests_total",
		Help:      "total number of block data requests sent to peers",
	})
	badBlockDataCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_protocol",
		Name:      "bad_block_data_total",
		Help:      "total number of block data responses not matching the candidate",
	})
)
