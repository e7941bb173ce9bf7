// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
)

// LiveConsensusInstances holds the live consensus sessions, keyed by parent hash,
// and the recently used local session keys.
// It is not safe for concurrent use; the protocol state serializes access.
type LiveConsensusInstances struct {
	recentKeys    RecentSessionKeys
	liveInstances map[common.Hash]CurrentConsensus
}

// NewLiveConsensusInstances creates an empty set of live sessions.
func NewLiveConsensusInstances() *LiveConsensusInstances {
	return &LiveConsensusInstances{
		liveInstances: make(map[common.Hash]CurrentConsensus),
	}
}

// NewConsensus returns the live session for the parent hash, creating it if needed.
// newKey is set when the local session key was not recently used,
// in which case it should be announced to peers.
func (l *LiveConsensusInstances) NewConsensus(params Params) (
	session CurrentConsensus, newKey *parachaintypes.SessionKey) {
	session, ok := l.liveInstances[params.ParentHash]
	if ok {
		return session, nil
	}

	if params.LocalSessionKey != nil {
		key := *params.LocalSessionKey
		isNew, evicted := l.recentKeys.Insert(key)
		if isNew {
			newKey = &key
		}
		if evicted != nil {
			logger.Debugf("session key %s pushed out of recent keys", *evicted)
		}
	}

	session = newCurrentConsensus(params)
	l.liveInstances[params.ParentHash] = session
	return session, newKey
}

// Remove removes the session at the parent hash. The local session key of the
// removed session is forgotten unless another live session still uses it.
func (l *LiveConsensusInstances) Remove(parentHash common.Hash) (session CurrentConsensus, ok bool) {
	session, ok = l.liveInstances[parentHash]
	if !ok {
		return session, false
	}
	delete(l.liveInstances, parentHash)

	key := session.localSessionKey
	if key == nil {
		return session, true
	}

	for _, other := range l.liveInstances {
		if other.localSessionKey != nil && *other.localSessionKey == *key {
			return session, true
		}
	}

	l.recentKeys.Remove(*key)
	return session, true
}

// RecentKeys returns the recently used local session keys, oldest first.
func (l *LiveConsensusInstances) RecentKeys() []parachaintypes.SessionKey {
	return l.recentKeys.AsSlice()
}

// Get returns the live session at the parent hash.
func (l *LiveConsensusInstances) Get(parentHash common.Hash) (session CurrentConsensus, ok bool) {
	session, ok = l.liveInstances[parentHash]
	return session, ok
}

// WithBlockData calls f with the block data of a candidate in the session at
// parentHash, or with the keys of the peers believed to have it.
// live is false when there is no session at parentHash.
func (l *LiveConsensusInstances) WithBlockData(parentHash common.Hash, candidateHash parachaintypes.CandidateHash,
	f func(data *parachaintypes.BlockData, knownBy []parachaintypes.SessionKey, live bool)) {
	session, ok := l.liveInstances[parentHash]
	if !ok {
		f(nil, nil, false)
		return
	}

	session.knowledge.WithBlockData(candidateHash,
		func(data *parachaintypes.BlockData, knownBy []parachaintypes.SessionKey) {
			f(data, knownBy, true)
		})
}

// Len returns the number of live sessions.
func (l *LiveConsensusInstances) Len() int {
	return len(l.liveInstances)
}
