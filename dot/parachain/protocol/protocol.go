// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"fmt"
	"time"

	"github.com/ChainSafe/paranet/dot/parachain/consensus"
	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/internal/log"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/libp2p/go-libp2p-core/peer"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "parachain-protocol"))

// PeerSender sends protocol messages to peers.
type PeerSender interface {
	SendMessage(to peer.ID, data []byte) error
	DisconnectPeer(to peer.ID)
}

// TopicCollector drops gossip topics.
type TopicCollector interface {
	CollectGarbageForTopic(topic common.Hash)
}

type peerInfo struct {
	validatorKeys consensus.RecentSessionKeys
	collator      *parachaintypes.CollatorID
}

// Protocol is the state of the parachain network protocol: the live consensus
// sessions, the connected peers, the pending block data requests and the
// collator pool. It is not safe for concurrent use; the service runs every
// access on a single goroutine.
type Protocol struct {
	config Config
	sender PeerSender
	gossip TopicCollector
	now    func() time.Time

	live          *consensus.LiveConsensusInstances
	peers         map[peer.ID]*peerInfo
	validators    map[parachaintypes.SessionKey]peer.ID
	pending       []*blockDataRequest
	inFlight      map[requestKey]*blockDataRequest
	nextRequestID uint64
	collators     *collatorPool
}

// NewProtocol creates the protocol state.
func NewProtocol(config Config, sender PeerSender, gossip TopicCollector) *Protocol {
	return &Protocol{
		config:     config,
		sender:     sender,
		gossip:     gossip,
		now:        time.Now,
		live:       consensus.NewLiveConsensusInstances(),
		peers:      make(map[peer.ID]*peerInfo),
		validators: make(map[parachaintypes.SessionKey]peer.ID),
		inFlight:   make(map[requestKey]*blockDataRequest),
		collators:  newCollatorPool(config.MaxCollationsPerRelayParent),
	}
}

// NewConsensus registers a consensus session and announces its local session
// key to every connected peer if the key was not recently used.
func (p *Protocol) NewConsensus(params consensus.Params) consensus.CurrentConsensus {
	session, newKey := p.live.NewConsensus(params)
	p.updateGauges()

	if newKey != nil {
		logger.Debugf("announcing new session key %s to %d peers", *newKey, len(p.peers))
		for peerID := range p.peers {
			p.send(peerID, SessionKeyMessage{Key: *newKey})
		}
	}
	return session
}

// RemoveConsensus forgets the session at the parent hash, drops its gossip
// topics and abandons the requests and collations tied to it.
func (p *Protocol) RemoveConsensus(parentHash common.Hash) {
	session, ok := p.live.Remove(parentHash)
	if ok {
		paraIDs, first := session.Release()
		if first {
			for _, paraID := range paraIDs {
				p.gossip.CollectGarbageForTopic(consensus.IncomingMessageTopic(parentHash, paraID))
			}
			p.gossip.CollectGarbageForTopic(consensus.AttestationTopic(parentHash))
		}
	}
	p.updateGauges()

	p.collators.removeRelayParent(parentHash)
	p.requeueInFlight(func(_ requestKey, request *blockDataRequest) bool {
		return request.relayParent == parentHash
	})
	p.dispatchPendingRequests()
}

// FetchBlockData returns a channel receiving the block data of the candidate,
// either known locally or requested from a peer known to have it.
func (p *Protocol) FetchBlockData(candidate parachaintypes.CandidateReceipt,
	parentHash common.Hash) <-chan parachaintypes.BlockData {
	result := make(chan parachaintypes.BlockData, 1)

	candidateHash, err := candidate.Hash()
	if err != nil {
		logger.Warnf("cannot fetch block data: %s", err)
		close(result)
		return result
	}

	p.pending = append(p.pending, &blockDataRequest{
		relayParent:   parentHash,
		candidateHash: candidateHash,
		blockDataHash: candidate.BlockDataHash,
		attempted:     make(map[peer.ID]struct{}),
		sender:        result,
	})
	p.dispatchPendingRequests()
	return result
}

// AwaitCollation returns a channel receiving the first collation for the
// parachain at the relay parent.
func (p *Protocol) AwaitCollation(relayParent common.Hash,
	paraID parachaintypes.ParaID) <-chan parachaintypes.Collation {
	return p.collators.await(relayParent, paraID)
}

// DisconnectBadCollator disconnects the peer of the collator.
func (p *Protocol) DisconnectBadCollator(collatorID parachaintypes.CollatorID) {
	info, ok := p.collators.collator(collatorID)
	if !ok {
		return
	}

	logger.Infof("disconnecting bad collator %x on peer %s", collatorID[:], info.peerID)
	p.collators.remove(collatorID)
	p.sender.DisconnectPeer(info.peerID)
}

// OnConnect registers a new peer and sends it the recent local session keys.
func (p *Protocol) OnConnect(peerID peer.ID) {
	if _, ok := p.peers[peerID]; ok {
		return
	}
	p.peers[peerID] = &peerInfo{}

	for _, key := range p.live.RecentKeys() {
		p.send(peerID, SessionKeyMessage{Key: key})
	}
}

// OnDisconnect forgets the peer, and sends its in-flight requests to other peers.
func (p *Protocol) OnDisconnect(peerID peer.ID) {
	info, ok := p.peers[peerID]
	if !ok {
		return
	}
	delete(p.peers, peerID)

	for _, key := range info.validatorKeys.AsSlice() {
		if p.validators[key] == peerID {
			delete(p.validators, key)
		}
	}
	p.collators.onDisconnect(peerID)

	requeued := p.requeueInFlight(func(key requestKey, _ *blockDataRequest) bool {
		return key.peerID == peerID
	})
	if requeued > 0 {
		logger.Debugf("requeued %d block data requests sent to disconnected peer %s", requeued, peerID)
	}
	p.dispatchPendingRequests()
}

// OnMessage handles a message received from a connected peer.
func (p *Protocol) OnMessage(from peer.ID, message Message) error {
	info, ok := p.peers[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPeer, from)
	}

	value, err := message.Value()
	if err != nil {
		return err
	}

	switch value := value.(type) {
	case SessionKeyMessage:
		p.onSessionKey(from, info, value.Key)
	case RequestBlockDataMessage:
		p.onRequestBlockData(from, value)
	case BlockDataMessage:
		p.onBlockData(from, value)
	case CollatorRoleMessage:
		p.onCollatorRole(from, info, value)
	case CollationMessage:
		return p.onCollation(from, info, value)
	}
	return nil
}

// Tick sends the requests not answered in time to other peers
// and dispatches the pending requests again.
func (p *Protocol) Tick() {
	now := p.now()
	timedOut := p.requeueInFlight(func(_ requestKey, request *blockDataRequest) bool {
		return now.Sub(request.sentAt) >= p.config.RequestTimeout
	})
	if timedOut > 0 {
		logger.Debugf("%d block data requests timed out", timedOut)
	}
	p.dispatchPendingRequests()
}

func (p *Protocol) onSessionKey(from peer.ID, info *peerInfo, key parachaintypes.SessionKey) {
	isNew, evicted := info.validatorKeys.Insert(key)
	if evicted != nil && p.validators[*evicted] == from {
		delete(p.validators, *evicted)
	}
	if !isNew {
		return
	}

	p.validators[key] = from
	logger.Tracef("peer %s validates with session key %s", from, key)
	p.dispatchPendingRequests()
}

func (p *Protocol) onCollatorRole(from peer.ID, info *peerInfo, role CollatorRoleMessage) {
	if info.collator != nil && *info.collator != role.CollatorID {
		p.collators.remove(*info.collator)
	}

	collatorID := role.CollatorID
	info.collator = &collatorID
	p.collators.onNewCollator(role.CollatorID, role.ParaID, from)
}

func (p *Protocol) onCollation(from peer.ID, info *peerInfo, message CollationMessage) error {
	receipt := message.Collation.Receipt

	collator, ok := p.collators.collator(receipt.Collator)
	switch {
	case info.collator == nil || !ok || collator.peerID != from:
		return fmt.Errorf("%w: peer %s is not the collator of the receipt", ErrBadCollation, from)
	case collator.paraID != receipt.ParaID:
		return fmt.Errorf("%w: collator of parachain %d sent a collation for parachain %d",
			ErrBadCollation, collator.paraID, receipt.ParaID)
	}

	hash, err := message.Collation.BlockData.Hash()
	if err != nil {
		return fmt.Errorf("hashing collation block data: %w", err)
	}
	if hash != receipt.BlockDataHash {
		return fmt.Errorf("%w: block data hash %s does not match receipt hash %s",
			ErrBadCollation, hash, receipt.BlockDataHash)
	}

	p.collators.onCollation(message.RelayParent, message.Collation)
	return nil
}

func (p *Protocol) send(to peer.ID, value MessageValue) {
	encoded, err := EncodeMessage(value)
	if err != nil {
		logger.Errorf("encoding protocol message: %s", err)
		return
	}

	err = p.sender.SendMessage(to, encoded)
	if err != nil {
		logger.Debugf("sending protocol message to peer %s: %s", to, err)
	}
}

func (p *Protocol) updateGauges() {
	liveSessionsGauge.Set(float64(p.live.Len()))
	recentKeysGauge.Set(float64(len(p.live.RecentKeys())))
}

var _ consensus.ProtocolState = (*Protocol)(nil)
