// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/libp2p/go-libp2p-core/peer"
)

type collationKey struct {
	relayParent common.Hash
	paraID      parachaintypes.ParaID
}

type collatorInfo struct {
	peerID peer.ID
	paraID parachaintypes.ParaID
}

// collatorPool tracks the connected collators, the collations they sent and
// the consumers waiting for collations.
type collatorPool struct {
	maxCollations int
	collators     map[parachaintypes.CollatorID]collatorInfo
	collations    map[collationKey][]parachaintypes.Collation
	awaiting      map[collationKey][]chan<- parachaintypes.Collation
}

func newCollatorPool(maxCollations int) *collatorPool {
	return &collatorPool{
		maxCollations: maxCollations,
		collators:     make(map[parachaintypes.CollatorID]collatorInfo),
		collations:    make(map[collationKey][]parachaintypes.Collation),
		awaiting:      make(map[collationKey][]chan<- parachaintypes.Collation),
	}
}

func (c *collatorPool) onNewCollator(collatorID parachaintypes.CollatorID,
	paraID parachaintypes.ParaID, peerID peer.ID) {
	c.collators[collatorID] = collatorInfo{peerID: peerID, paraID: paraID}
}

// onDisconnect forgets the collators of the disconnected peer.
func (c *collatorPool) onDisconnect(peerID peer.ID) {
	for collatorID, info := range c.collators {
		if info.peerID == peerID {
			delete(c.collators, collatorID)
		}
	}
}

func (c *collatorPool) collator(collatorID parachaintypes.CollatorID) (info collatorInfo, ok bool) {
	info, ok = c.collators[collatorID]
	return info, ok
}

func (c *collatorPool) remove(collatorID parachaintypes.CollatorID) {
	delete(c.collators, collatorID)
}

// onCollation hands the collation to the waiting consumers, or buffers it.
func (c *collatorPool) onCollation(relayParent common.Hash, collation parachaintypes.Collation) {
	key := collationKey{relayParent: relayParent, paraID: collation.Receipt.ParaID}

	waiting := c.awaiting[key]
	if len(waiting) > 0 {
		delete(c.awaiting, key)
		for _, waiter := range waiting {
			waiter <- collation
			close(waiter)
		}
		return
	}

	if len(c.collations[key]) >= c.maxCollations {
		logger.Debugf("dropping collation for parachain %d at %s: too many collations",
			key.paraID, relayParent.Short())
		return
	}
	c.collations[key] = append(c.collations[key], collation)
}

// await returns a channel receiving the first collation of the parachain at the relay parent.
func (c *collatorPool) await(relayParent common.Hash, paraID parachaintypes.ParaID) <-chan parachaintypes.Collation {
	key := collationKey{relayParent: relayParent, paraID: paraID}
	waiter := make(chan parachaintypes.Collation, 1)

	buffered := c.collations[key]
	if len(buffered) > 0 {
		waiter <- buffered[0]
		close(waiter)
		return waiter
	}

	c.awaiting[key] = append(c.awaiting[key], waiter)
	return waiter
}

// removeRelayParent drops the collations built on the relay parent. Consumers
// still waiting on it see their channel closed.
func (c *collatorPool) removeRelayParent(relayParent common.Hash) {
	for key := range c.collations {
		if key.relayParent == relayParent {
			delete(c.collations, key)
		}
	}

	for key, waiting := range c.awaiting {
		if key.relayParent != relayParent {
			continue
		}
		for _, waiter := range waiting {
			close(waiter)
		}
		delete(c.awaiting, key)
	}
}
