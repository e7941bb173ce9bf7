// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"testing"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveConsensusInstances_NewConsensus(t *testing.T) {
	t.Parallel()

	live := NewLiveConsensusInstances()
	key := sessionKey(1)
	parent := getDummyHash(1)

	session, newKey := live.NewConsensus(Params{LocalSessionKey: &key, ParentHash: parent})
	require.NotNil(t, newKey)
	assert.Equal(t, key, *newKey)
	assert.Equal(t, parent, session.ParentHash())
	assert.Equal(t, &key, session.LocalSessionKey())
	assert.Equal(t, 1, live.Len())

	again, newKey := live.NewConsensus(Params{LocalSessionKey: &key, ParentHash: parent})
	assert.Nil(t, newKey)
	assert.Same(t, session.Knowledge(), again.Knowledge(), "same parent must reuse the live session")
	assert.Same(t, session.incoming, again.incoming)
	assert.Equal(t, 1, live.Len())

	differentKey := sessionKey(9)
	again, newKey = live.NewConsensus(Params{LocalSessionKey: &differentKey, ParentHash: parent})
	assert.Nil(t, newKey, "reused session announces no key even for a different local key")
	assert.Equal(t, &key, again.LocalSessionKey())
	assert.Equal(t, []parachaintypes.SessionKey{key}, live.RecentKeys())
	assert.Equal(t, 1, live.Len())

	_, newKey = live.NewConsensus(Params{LocalSessionKey: &key, ParentHash: getDummyHash(2)})
	assert.Nil(t, newKey, "recently used key is not new")
	assert.Equal(t, 2, live.Len())

	_, newKey = live.NewConsensus(Params{ParentHash: getDummyHash(3)})
	assert.Nil(t, newKey)
	assert.Equal(t, []parachaintypes.SessionKey{key}, live.RecentKeys())
}

func TestLiveConsensusInstances_Remove(t *testing.T) {
	t.Parallel()

	live := NewLiveConsensusInstances()
	key := sessionKey(1)
	otherKey := sessionKey(2)

	live.NewConsensus(Params{LocalSessionKey: &key, ParentHash: getDummyHash(1)})
	live.NewConsensus(Params{LocalSessionKey: &key, ParentHash: getDummyHash(2)})
	live.NewConsensus(Params{LocalSessionKey: &otherKey, ParentHash: getDummyHash(3)})
	assert.Equal(t, []parachaintypes.SessionKey{key, otherKey}, live.RecentKeys())

	session, ok := live.Remove(getDummyHash(1))
	require.True(t, ok)
	assert.Equal(t, getDummyHash(1), session.ParentHash())
	assert.Equal(t, []parachaintypes.SessionKey{key, otherKey}, live.RecentKeys(),
		"key still used by a live session is kept")

	_, ok = live.Remove(getDummyHash(1))
	assert.False(t, ok)

	_, ok = live.Remove(getDummyHash(2))
	require.True(t, ok)
	assert.Equal(t, []parachaintypes.SessionKey{otherKey}, live.RecentKeys())

	_, ok = live.Get(getDummyHash(2))
	assert.False(t, ok)
	_, ok = live.Get(getDummyHash(3))
	assert.True(t, ok)
	assert.Equal(t, 1, live.Len())
}

func TestLiveConsensusInstances_WithBlockData(t *testing.T) {
	t.Parallel()

	live := NewLiveConsensusInstances()
	session, _ := live.NewConsensus(Params{ParentHash: getDummyHash(1)})

	hash := candidateHash(5)
	session.Knowledge().NoteStatement(sessionKey(3), parachaintypes.NewStatement(parachaintypes.Valid(hash)))

	var (
		called  bool
		knownBy []parachaintypes.SessionKey
		isLive  bool
	)
	live.WithBlockData(getDummyHash(1), hash,
		func(data *parachaintypes.BlockData, peers []parachaintypes.SessionKey, ok bool) {
			called = true
			assert.Nil(t, data)
			knownBy = peers
			isLive = ok
		})
	assert.True(t, called)
	assert.True(t, isLive)
	assert.Equal(t, []parachaintypes.SessionKey{sessionKey(3)}, knownBy)

	blockData := parachaintypes.BlockData{4, 2}
	session.Knowledge().NoteCandidate(hash, &blockData, nil)
	live.WithBlockData(getDummyHash(1), hash,
		func(data *parachaintypes.BlockData, _ []parachaintypes.SessionKey, ok bool) {
			require.NotNil(t, data)
			assert.Equal(t, blockData, *data)
			assert.True(t, ok)
		})

	live.WithBlockData(getDummyHash(9), hash,
		func(data *parachaintypes.BlockData, peers []parachaintypes.SessionKey, ok bool) {
			assert.Nil(t, data)
			assert.Nil(t, peers)
			assert.False(t, ok)
		})
}

func TestCurrentConsensus_Release(t *testing.T) {
	t.Parallel()

	session := newCurrentConsensus(Params{ParentHash: getDummyHash(1)})
	copied := session

	_, lookup := session.incoming.getOrInsert(7)
	assert.Equal(t, incomingInserted, lookup)
	_, lookup = session.incoming.getOrInsert(3)
	assert.Equal(t, incomingInserted, lookup)
	_, lookup = copied.incoming.getOrInsert(7)
	assert.Equal(t, incomingCached, lookup)
	assert.False(t, session.incoming.isReleased())

	paraIDs, first := copied.Release()
	assert.True(t, first)
	assert.Equal(t, []parachaintypes.ParaID{3, 7}, paraIDs)

	paraIDs, first = session.Release()
	assert.False(t, first)
	assert.Empty(t, paraIDs)

	assert.True(t, session.incoming.isReleased())
	receiver, lookup := session.incoming.getOrInsert(7)
	assert.Equal(t, incomingReleased, lookup)
	select {
	case <-receiver.Done():
	default:
		t.Fatal("receiver of a released session must be failed")
	}
	assert.Zero(t, session.incoming.len())
}
