// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package gossip

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	published  prometheus.Counter
	received   prometheus.Counter
	duplicates prometheus.Counter
	topics     prometheus.Gauge
}

func newMetrics() (m *metrics, err error) {
	m = new(metrics)
	collectorsToRegister := make(map[string]prometheus.Collector)

	m.published = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_gossip",
		Name:      "messages_published_total",
		Help:      "total number of gossip messages published locally",
	})
	collectorsToRegister["published counter"] = m.published

	m.received = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_gossip",
		Name:      "messages_received_total",
		Help:      "total number of gossip messages received from peers",
	})
	collectorsToRegister["received counter"] = m.received

	m.duplicates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "paranet_gossip",
		Name:      "messages_duplicate_total",
		Help:      "total number of gossip messages dropped as duplicates",
	})
	collectorsToRegister["duplicates counter"] = m.duplicates

	m.topics = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "paranet_gossip",
		Name:      "topics",
		Help:      "number of gossip topics with buffered messages or subscribers",
	})
	collectorsToRegister["topics gauge"] = m.topics

	for collectorName, collector := range collectorsToRegister {
		err = prometheus.Register(collector)
		if err == nil {
			continue
		}

		var alreadyRegistered prometheus.AlreadyRegisteredError
		if !errors.As(err, &alreadyRegistered) {
			return nil, fmt.Errorf("cannot register %s: %w", collectorName, err)
		}

		reuseExisting(m, collectorName, alreadyRegistered.ExistingCollector)
	}

	return m, nil
}

func reuseExisting(m *metrics, collectorName string, existing prometheus.Collector) {
	switch collectorName {
	case "published counter":
		m.published = existing.(prometheus.Counter)
	case "received counter":
		m.received = existing.(prometheus.Counter)
	case "duplicates counter":
		m.duplicates = existing.(prometheus.Counter)
	case "topics gauge":
		m.topics = existing.(prometheus.Gauge)
	}
}
