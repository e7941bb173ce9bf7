// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"sync"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Params are the parameters of a consensus session.
type Params struct {
	// LocalSessionKey is nil when the node does not validate in the session.
	LocalSessionKey *parachaintypes.SessionKey
	ParentHash      common.Hash
}

type incomingCache struct {
	mu        sync.Mutex
	receivers map[parachaintypes.ParaID]*IncomingReceiver
	released  bool
}

func newIncomingCache() *incomingCache {
	return &incomingCache{
		receivers: make(map[parachaintypes.ParaID]*IncomingReceiver),
	}
}

// incomingLookup is the outcome of looking up the receiver of a parachain.
type incomingLookup int

const (
	incomingCached incomingLookup = iota
	incomingInserted
	incomingReleased
)

// getOrInsert returns the receiver of the parachain, creating it if needed.
// Once the cache is released, it only hands out failed receivers.
func (c *incomingCache) getOrInsert(paraID parachaintypes.ParaID) (
	receiver *IncomingReceiver, lookup incomingLookup) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		receiver = newIncomingReceiver()
		receiver.fail(ErrChannelClosed)
		return receiver, incomingReleased
	}

	receiver, ok := c.receivers[paraID]
	if ok {
		return receiver, incomingCached
	}

	receiver = newIncomingReceiver()
	c.receivers[paraID] = receiver
	return receiver, incomingInserted
}

func (c *incomingCache) isReleased() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

// release drains the cache. first is false if it was already released.
func (c *incomingCache) release() (paraIDs []parachaintypes.ParaID, first bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.released {
		return nil, false
	}
	c.released = true

	paraIDs = maps.Keys(c.receivers)
	slices.Sort(paraIDs)
	c.receivers = make(map[parachaintypes.ParaID]*IncomingReceiver)
	return paraIDs, true
}

func (c *incomingCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.receivers)
}

// CurrentConsensus is the state of a consensus session built on a parent hash.
// Copies share the knowledge and the incoming cache.
type CurrentConsensus struct {
	parentHash      common.Hash
	localSessionKey *parachaintypes.SessionKey
	knowledge       *Knowledge
	incoming        *incomingCache
}

func newCurrentConsensus(params Params) CurrentConsensus {
	var localSessionKey *parachaintypes.SessionKey
	if params.LocalSessionKey != nil {
		key := *params.LocalSessionKey
		localSessionKey = &key
	}

	return CurrentConsensus{
		parentHash:      params.ParentHash,
		localSessionKey: localSessionKey,
		knowledge:       NewKnowledge(),
		incoming:        newIncomingCache(),
	}
}

// ParentHash returns the hash of the block the session is built on.
func (c CurrentConsensus) ParentHash() common.Hash {
	return c.parentHash
}

// LocalSessionKey returns the local session key, or nil when not validating.
func (c CurrentConsensus) LocalSessionKey() *parachaintypes.SessionKey {
	return c.localSessionKey
}

// Knowledge returns the knowledge shared by every handle of the session.
func (c CurrentConsensus) Knowledge() *Knowledge {
	return c.knowledge
}

// Release marks the session as released and returns the parachains ingress
// was fetched for. first is false when the session was already released.
func (c CurrentConsensus) Release() (paraIDs []parachaintypes.ParaID, first bool) {
	return c.incoming.release()
}
