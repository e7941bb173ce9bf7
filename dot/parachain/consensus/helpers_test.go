// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"errors"
	"sync"
	"testing"
	"time"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/stretchr/testify/require"
)

var errTestNetworkDown = errors.New("test network down")

const testTimeout = 5 * time.Second

// testNetwork is an in-memory NetworkService running WithSpec closures
// synchronously. Messages gossiped on a topic are replayed to later subscribers.
type testNetwork struct {
	specMutex sync.Mutex
	spec      ProtocolState

	mutex       sync.Mutex
	down        bool
	messages    map[common.Hash][][]byte
	subscribers map[common.Hash][]chan []byte
	dropped     []common.Hash
}

func newTestNetwork(spec ProtocolState) *testNetwork {
	return &testNetwork{
		spec:        spec,
		messages:    make(map[common.Hash][][]byte),
		subscribers: make(map[common.Hash][]chan []byte),
	}
}

func (n *testNetwork) GossipMessagesFor(topic common.Hash) <-chan []byte {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	const spare = 32
	stored := n.messages[topic]
	subscriber := make(chan []byte, len(stored)+spare)
	for _, message := range stored {
		subscriber <- message
	}
	n.subscribers[topic] = append(n.subscribers[topic], subscriber)
	return subscriber
}

func (n *testNetwork) GossipMessage(topic common.Hash, message []byte) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	n.messages[topic] = append(n.messages[topic], message)
	for _, subscriber := range n.subscribers[topic] {
		subscriber <- message
	}
}

func (n *testNetwork) DropGossip(topic common.Hash) {
	n.mutex.Lock()
	defer n.mutex.Unlock()

	for _, subscriber := range n.subscribers[topic] {
		close(subscriber)
	}
	delete(n.subscribers, topic)
	delete(n.messages, topic)
	n.dropped = append(n.dropped, topic)
}

func (n *testNetwork) WithSpec(with func(spec ProtocolState)) error {
	n.mutex.Lock()
	down := n.down
	n.mutex.Unlock()
	if down {
		return errTestNetworkDown
	}

	n.specMutex.Lock()
	defer n.specMutex.Unlock()
	with(n.spec)
	return nil
}

func (n *testNetwork) setDown() {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.down = true
}

func (n *testNetwork) droppedTopics() []common.Hash {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return append([]common.Hash(nil), n.dropped...)
}

func (n *testNetwork) subscriberCount(topic common.Hash) int {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return len(n.subscribers[topic])
}

func (n *testNetwork) gossiped(topic common.Hash) [][]byte {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	return append([][]byte(nil), n.messages[topic]...)
}

func getDummyHash(num byte) common.Hash {
	hash := common.Hash{}
	for i := 0; i < 32; i++ {
		hash[i] = num
	}
	return hash
}

func sessionKey(num byte) parachaintypes.SessionKey {
	key := parachaintypes.SessionKey{}
	for i := range key {
		key[i] = num
	}
	return key
}

func candidateHash(num byte) parachaintypes.CandidateHash {
	return parachaintypes.CandidateHash{Value: getDummyHash(num)}
}

func encodeIngressPair(t *testing.T, source parachaintypes.ParaID, messages ...parachaintypes.Message) []byte {
	t.Helper()

	encoded, err := parachaintypes.Marshal(parachaintypes.IngressPair{
		Source:   source,
		Messages: messages,
	})
	require.NoError(t, err)
	return encoded
}
