// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ingressFetchesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_consensus",
		Name:      "ingress_fetches_started_total",
		Help:      "total number of ingress fetches started",
	})
	ingressFetchesDeduplicated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_consensus",
		Name:      "ingress_fetches_deduplicated_total",
		Help:      "total number of ingress fetches served by an existing fetch",
	})
	ingressFetchesAfterRelease = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_consensus",
		Name:      "ingress_fetches_after_release_total",
		Help:      "total number of ingress fetches requested after the session was released",
	})
	ingressFetchesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_consensus",
		Name:      "ingress_fetches_completed_total",
		Help:      "total number of ingress fetches completed",
	})
	ingressFetchesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_consensus",
		Name:      "ingress_fetches_failed_total",
		Help:      "total number of ingress fetches which failed",
	})
	sessionsReleased = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_consensus",
		Name:      "sessions_released_total",
		Help:      "total number of consensus sessions released",
	})
	statementsChecked = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paranet_consensus",
		Name:      "statements_checked_total",
		Help:      "total number of gossiped statements checked, by result",
	}, []string{"result"})
)
