// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ChainSafe/paranet/dot/parachain/consensus"
	"github.com/ChainSafe/paranet/dot/parachain/gossip"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/libp2p/go-libp2p-core/peer"
)

// Service runs the protocol state on its own goroutine and exposes it,
// together with the gossip engine, as the network of the consensus sessions.
type Service struct {
	protocol     *Protocol
	gossip       *gossip.ConsensusGossip
	sender       PeerSender
	tickInterval time.Duration

	mutex   sync.Mutex
	queue   []func(*Protocol)
	started bool
	stopped bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

// NewService creates a protocol service using the gossip engine for topics
// and the sender for direct messages.
func NewService(config Config, gossipEngine *gossip.ConsensusGossip, sender PeerSender) (*Service, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	return &Service{
		protocol:     NewProtocol(config, sender, gossipEngine),
		gossip:       gossipEngine,
		sender:       sender,
		tickInterval: config.TickInterval,
		wake:         make(chan struct{}, 1),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}, nil
}

// Start starts running the scheduled closures.
func (s *Service) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.started || s.stopped {
		return fmt.Errorf("%w: cannot start", ErrServiceStopped)
	}
	s.started = true

	go s.run()
	return nil
}

// Stop refuses new closures and returns once the scheduled ones have run.
func (s *Service) Stop() error {
	s.mutex.Lock()
	if s.stopped {
		s.mutex.Unlock()
		return nil
	}
	s.stopped = true
	started := s.started
	s.mutex.Unlock()

	if !started {
		s.drain()
		close(s.done)
		return nil
	}

	close(s.stop)
	<-s.done
	return nil
}

func (s *Service) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			s.drain()
			return
		case <-s.wake:
			s.drain()
		case <-ticker.C:
			s.protocol.Tick()
		}
	}
}

func (s *Service) drain() {
	for {
		s.mutex.Lock()
		queue := s.queue
		s.queue = nil
		s.mutex.Unlock()

		if len(queue) == 0 {
			return
		}

		for _, f := range queue {
			f(s.protocol)
		}
	}
}

func (s *Service) schedule(f func(*Protocol)) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.stopped {
		return ErrServiceStopped
	}
	s.queue = append(s.queue, f)

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// WithSpec schedules a closure to run against the protocol state.
func (s *Service) WithSpec(with func(spec consensus.ProtocolState)) error {
	return s.schedule(func(p *Protocol) {
		with(p)
	})
}

// GossipMessagesFor returns the stream of gossip messages for a topic.
func (s *Service) GossipMessagesFor(topic common.Hash) <-chan []byte {
	return s.gossip.MessagesFor(topic)
}

// GossipMessage gossips a message on the given topic.
func (s *Service) GossipMessage(topic common.Hash, message []byte) {
	s.gossip.Multicast(topic, message)
}

// DropGossip drops a gossip topic.
func (s *Service) DropGossip(topic common.Hash) {
	s.gossip.CollectGarbageForTopic(topic)
}

// HandlePeerConnected notes a newly connected peer.
func (s *Service) HandlePeerConnected(peerID peer.ID) {
	s.gossip.NewPeer(peerID)
	s.scheduleOrLog(func(p *Protocol) {
		p.OnConnect(peerID)
	})
}

// HandlePeerDisconnected forgets a disconnected peer.
func (s *Service) HandlePeerDisconnected(peerID peer.ID) {
	s.gossip.PeerDisconnected(peerID)
	s.scheduleOrLog(func(p *Protocol) {
		p.OnDisconnect(peerID)
	})
}

// HandleMessage handles an encoded protocol message received from a peer.
// Peers sending bad collations are disconnected.
func (s *Service) HandleMessage(from peer.ID, data []byte) error {
	message, err := DecodeMessage(data)
	if err != nil {
		return err
	}

	return s.schedule(func(p *Protocol) {
		err := p.OnMessage(from, message)
		switch {
		case err == nil:
		case errors.Is(err, ErrBadCollation):
			logger.Warnf("disconnecting peer %s: %s", from, err)
			s.sender.DisconnectPeer(from)
		default:
			logger.Debugf("handling message from peer %s: %s", from, err)
		}
	})
}

// HandleGossip handles an encoded gossip message received from a peer.
func (s *Service) HandleGossip(from peer.ID, data []byte) error {
	message, err := gossip.DecodeMessage(data)
	if err != nil {
		return err
	}

	s.gossip.OnIncoming(from, message)
	return nil
}

func (s *Service) scheduleOrLog(f func(*Protocol)) {
	err := s.schedule(f)
	if err != nil {
		logger.Debugf("dropping peer event: %s", err)
	}
}

var _ consensus.NetworkService = (*Service)(nil)
