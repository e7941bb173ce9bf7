// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/paranet/dot/parachain/gossip"
	"github.com/ChainSafe/paranet/dot/parachain/protocol"
	"github.com/ChainSafe/paranet/internal/metrics"
	"github.com/libp2p/go-libp2p-core/peer"
)

var errNoTransport = errors.New("no transport attached")

// detachedTransport is the transport of a node with no peer connections.
type detachedTransport struct{}

func (detachedTransport) SendGossip(to peer.ID, _ gossip.Message) error {
	return fmt.Errorf("%w: cannot send gossip to peer %s", errNoTransport, to)
}

func (detachedTransport) SendMessage(to peer.ID, _ []byte) error {
	return fmt.Errorf("%w: cannot send message to peer %s", errNoTransport, to)
}

func (detachedTransport) DisconnectPeer(peer.ID) {}

// node runs the gossip engine, the protocol service and the metrics server.
type node struct {
	gossip  *gossip.ConsensusGossip
	service *protocol.Service
	metrics *metrics.Server
}

func newNode(cfg *Config) (*node, error) {
	gossipConfig, err := cfg.gossipConfig()
	if err != nil {
		return nil, err
	}

	protocolConfig, err := cfg.protocolConfig()
	if err != nil {
		return nil, err
	}

	transport := detachedTransport{}
	gossipEngine, err := gossip.NewConsensusGossip(gossipConfig, transport)
	if err != nil {
		return nil, fmt.Errorf("creating gossip engine: %w", err)
	}

	service, err := protocol.NewService(protocolConfig, gossipEngine, transport)
	if err != nil {
		gossipEngine.Close()
		return nil, fmt.Errorf("creating protocol service: %w", err)
	}

	return &node{
		gossip:  gossipEngine,
		service: service,
		metrics: metrics.NewServer(cfg.Metrics.Address, nil),
	}, nil
}

func (n *node) start() error {
	err := n.service.Start()
	if err != nil {
		return fmt.Errorf("starting protocol service: %w", err)
	}

	err = n.metrics.Start()
	if err != nil {
		_ = n.service.Stop()
		n.gossip.Close()
		return fmt.Errorf("starting metrics server: %w", err)
	}
	return nil
}

func (n *node) stop() error {
	err := n.metrics.Stop()
	if err != nil {
		logger.Errorf("stopping metrics server: %s", err)
	}

	err = n.service.Stop()
	n.gossip.Close()
	return err
}
