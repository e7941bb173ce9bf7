// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"sync"
	"testing"
	"time"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/libp2p/go-libp2p-core/peer"
	"github.com/stretchr/testify/require"
)

const testTimeout = 5 * time.Second

type sentMessage struct {
	to    peer.ID
	value MessageValue
}

// recordingSender decodes and records the messages sent to peers.
type recordingSender struct {
	t            *testing.T
	mutex        sync.Mutex
	sent         []sentMessage
	disconnected []peer.ID
}

func newRecordingSender(t *testing.T) *recordingSender {
	return &recordingSender{t: t}
}

func (s *recordingSender) SendMessage(to peer.ID, data []byte) error {
	message, err := DecodeMessage(data)
	require.NoError(s.t, err)
	value, err := message.Value()
	require.NoError(s.t, err)

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sent = append(s.sent, sentMessage{to: to, value: value})
	return nil
}

func (s *recordingSender) DisconnectPeer(to peer.ID) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.disconnected = append(s.disconnected, to)
}

// take returns and forgets the messages sent so far.
func (s *recordingSender) take() []sentMessage {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	sent := s.sent
	s.sent = nil
	return sent
}

func getDummyHash(num byte) common.Hash {
	hash := common.Hash{}
	for i := range hash {
		hash[i] = num
	}
	return hash
}

func sessionKey(num byte) parachaintypes.SessionKey {
	return parachaintypes.SessionKey(getDummyHash(num))
}

func collatorID(num byte) parachaintypes.CollatorID {
	return parachaintypes.CollatorID(getDummyHash(num))
}

func newTestReceipt(t *testing.T, paraID parachaintypes.ParaID,
	data parachaintypes.BlockData) (parachaintypes.CandidateReceipt, parachaintypes.CandidateHash) {
	t.Helper()

	blockDataHash, err := data.Hash()
	require.NoError(t, err)

	receipt := parachaintypes.CandidateReceipt{
		ParaID:        paraID,
		Collator:      collatorID(0xc0),
		HeadData:      parachaintypes.HeadData{1, 2, 3},
		BlockDataHash: blockDataHash,
	}
	candidateHash, err := receipt.Hash()
	require.NoError(t, err)
	return receipt, candidateHash
}

func candidateStatement(receipt parachaintypes.CandidateReceipt) parachaintypes.Statement {
	return parachaintypes.NewStatement(parachaintypes.Candidate(receipt))
}

func receiveBlockData(t *testing.T, result <-chan parachaintypes.BlockData) (
	data parachaintypes.BlockData, ok bool) {
	t.Helper()

	select {
	case data, ok = <-result:
		return data, ok
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for block data")
		return nil, false
	}
}

func assertPending(t *testing.T, result <-chan parachaintypes.BlockData) {
	t.Helper()

	select {
	case data, ok := <-result:
		t.Fatalf("unexpected block data result %v (open %t)", data, ok)
	default:
	}
}
