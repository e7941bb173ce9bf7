// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package gossip

import (
	"time"

	"github.com/ChainSafe/paranet/lib/common"
	"github.com/dgraph-io/ristretto"
	"github.com/libp2p/go-libp2p-core/peer"
)

// messageCache is used to detect messages already known to a peer.
type messageCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func newMessageCache(size int64, ttl time.Duration) (*messageCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * size,
		MaxCost:     size,
		BufferItems: 64,
		Cost: func(value interface{}) int64 {
			return 1
		},
	})
	if err != nil {
		return nil, err
	}

	return &messageCache{cache: cache, ttl: ttl}, nil
}

// put notes the peer knows the message. It returns false if that was already noted.
func (m *messageCache) put(peer peer.ID, messageHash common.Hash) bool {
	key := generateCacheKey(peer, messageHash)

	_, ok := m.cache.Get(key)
	if ok {
		return false
	}

	m.cache.SetWithTTL(key, struct{}{}, 1, m.ttl)
	return true
}

func (m *messageCache) close() {
	m.cache.Close()
}

func generateCacheKey(peer peer.ID, messageHash common.Hash) []byte {
	key := make([]byte, 0, len(peer)+len(messageHash))
	key = append(key, peer...)
	key = append(key, messageHash[:]...)
	return key
}
