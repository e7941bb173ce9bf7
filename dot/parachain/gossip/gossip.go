// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package gossip

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"github.com/ChainSafe/paranet/internal/log"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/libp2p/go-libp2p-core/peer"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "parachain-gossip"))

// Sender sends gossip messages to connected peers.
type Sender interface {
	SendGossip(to peer.ID, message Message) error
}

type topicState struct {
	messages    []Message
	hashes      []common.Hash
	subscribers []*subscriber
}

// ConsensusGossip keeps the consensus messages of the live topics, delivers
// them to local subscribers and propagates them to connected peers.
// It is safe for concurrent use.
type ConsensusGossip struct {
	sender    Sender
	peerCache *messageCache
	metrics   *metrics

	mutex  sync.Mutex
	closed bool
	peers  map[peer.ID]struct{}
	topics map[common.Hash]*topicState
	known  map[common.Hash]struct{}
}

// NewConsensusGossip creates a gossip engine sending messages to peers with sender.
func NewConsensusGossip(config Config, sender Sender) (*ConsensusGossip, error) {
	err := config.Validate()
	if err != nil {
		return nil, err
	}

	peerCache, err := newMessageCache(config.CacheSize, config.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("creating message cache: %w", err)
	}

	metrics, err := newMetrics()
	if err != nil {
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &ConsensusGossip{
		sender:    sender,
		peerCache: peerCache,
		metrics:   metrics,
		peers:     make(map[peer.ID]struct{}),
		topics:    make(map[common.Hash]*topicState),
		known:     make(map[common.Hash]struct{}),
	}, nil
}

func (g *ConsensusGossip) topic(topic common.Hash) *topicState {
	state, ok := g.topics[topic]
	if !ok {
		state = new(topicState)
		g.topics[topic] = state
		g.metrics.topics.Set(float64(len(g.topics)))
	}
	return state
}

// MessagesFor returns the stream of messages of the topic. Messages already
// buffered for the topic are delivered first. The channel is closed once
// the topic is garbage collected.
func (g *ConsensusGossip) MessagesFor(topic common.Hash) <-chan []byte {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.closed {
		closed := make(chan []byte)
		close(closed)
		return closed
	}

	state := g.topic(topic)
	replay := make([][]byte, len(state.messages))
	for i, message := range state.messages {
		replay[i] = message.Data
	}

	subscriber := newSubscriber(replay)
	state.subscribers = append(state.subscribers, subscriber)
	return subscriber.out
}

// Multicast publishes a message on the topic and sends it to every connected
// peer not known to have it already. Republishing a buffered message does nothing.
func (g *ConsensusGossip) Multicast(topic common.Hash, data []byte) {
	message := Message{Topic: topic, Data: data}
	hash, err := message.Hash()
	if err != nil {
		logger.Errorf("hashing gossip message on topic %s: %s", topic.Short(), err)
		return
	}

	g.mutex.Lock()
	if g.closed || !g.register(message, hash) {
		g.mutex.Unlock()
		return
	}
	g.metrics.published.Inc()
	targets := g.peersMissing(hash)
	g.mutex.Unlock()

	for _, peerID := range targets {
		g.send(peerID, message)
	}
}

// OnIncoming handles a message received from a peer.
func (g *ConsensusGossip) OnIncoming(from peer.ID, message Message) {
	hash, err := message.Hash()
	if err != nil {
		logger.Errorf("hashing gossip message from %s: %s", from, err)
		return
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.closed {
		return
	}
	g.peerCache.put(from, hash)

	if g.register(message, hash) {
		g.metrics.received.Inc()
	}
}

// register buffers the message and delivers it to the topic subscribers.
// It returns false if the message is already buffered.
func (g *ConsensusGossip) register(message Message, hash common.Hash) bool {
	_, ok := g.known[hash]
	if ok {
		g.metrics.duplicates.Inc()
		logger.Tracef("dropping duplicate gossip message %s on topic %s", hash.Short(), message.Topic.Short())
		return false
	}
	g.known[hash] = struct{}{}

	state := g.topic(message.Topic)
	state.messages = append(state.messages, message)
	state.hashes = append(state.hashes, hash)
	for _, subscriber := range state.subscribers {
		subscriber.push(message.Data)
	}
	return true
}

// peersMissing returns the connected peers not known to have the message,
// and notes they will have it.
func (g *ConsensusGossip) peersMissing(hash common.Hash) []peer.ID {
	var peers []peer.ID
	for peerID := range g.peers {
		if g.peerCache.put(peerID, hash) {
			peers = append(peers, peerID)
		}
	}
	return peers
}

func (g *ConsensusGossip) send(peerID peer.ID, message Message) {
	err := g.sender.SendGossip(peerID, message)
	if err != nil {
		logger.Debugf("cannot send gossip message to peer %s: %s", peerID, err)
	}
}

// NewPeer notes a connected peer and sends it the buffered messages.
func (g *ConsensusGossip) NewPeer(peerID peer.ID) {
	g.mutex.Lock()
	if g.closed {
		g.mutex.Unlock()
		return
	}
	g.peers[peerID] = struct{}{}
	var messages []Message
	for _, state := range g.topics {
		for i, message := range state.messages {
			if g.peerCache.put(peerID, state.hashes[i]) {
				messages = append(messages, message)
			}
		}
	}
	g.mutex.Unlock()

	for _, message := range messages {
		g.send(peerID, message)
	}
}

// PeerDisconnected forgets a disconnected peer.
func (g *ConsensusGossip) PeerDisconnected(peerID peer.ID) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	delete(g.peers, peerID)
}

// CollectGarbageForTopic drops the messages buffered for the topic
// and ends the streams of its subscribers.
func (g *ConsensusGossip) CollectGarbageForTopic(topic common.Hash) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	state, ok := g.topics[topic]
	if !ok {
		return
	}

	for _, hash := range state.hashes {
		delete(g.known, hash)
	}
	for _, subscriber := range state.subscribers {
		subscriber.close()
	}
	delete(g.topics, topic)
	g.metrics.topics.Set(float64(len(g.topics)))
}

// Topics returns the live topics, sorted.
func (g *ConsensusGossip) Topics() []common.Hash {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	topics := make([]common.Hash, 0, len(g.topics))
	for topic := range g.topics {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		return bytes.Compare(topics[i][:], topics[j][:]) < 0
	})
	return topics
}

// Close ends every subscriber stream and drops every buffered message.
func (g *ConsensusGossip) Close() {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if g.closed {
		return
	}
	g.closed = true

	for _, state := range g.topics {
		for _, subscriber := range state.subscribers {
			subscriber.close()
		}
	}
	g.topics = make(map[common.Hash]*topicState)
	g.known = make(map[common.Hash]struct{})
	g.metrics.topics.Set(0)
	g.peerCache.close()
}
