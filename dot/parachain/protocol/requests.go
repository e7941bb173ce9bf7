// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"time"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/libp2p/go-libp2p-core/peer"
)

type blockDataRequest struct {
	relayParent   common.Hash
	candidateHash parachaintypes.CandidateHash
	blockDataHash common.Hash
	attempted     map[peer.ID]struct{}
	sender        chan<- parachaintypes.BlockData
	sentAt        time.Time
}

func (r *blockDataRequest) resolve(data parachaintypes.BlockData) {
	r.sender <- data
	close(r.sender)
}

func (r *blockDataRequest) abandon() {
	close(r.sender)
}

type requestKey struct {
	requestID uint64
	peerID    peer.ID
}

// dispatchPendingRequests resolves the pending requests whose block data became
// known locally, sends the others to a validator known to have the data and not
// asked yet, and drops those of sessions no longer live.
func (p *Protocol) dispatchPendingRequests() {
	pending := p.pending
	p.pending = nil

	for _, request := range pending {
		var (
			live    bool
			data    *parachaintypes.BlockData
			knownBy []parachaintypes.SessionKey
		)
		p.live.WithBlockData(request.relayParent, request.candidateHash,
			func(blockData *parachaintypes.BlockData, peers []parachaintypes.SessionKey, isLive bool) {
				live = isLive
				if blockData != nil {
					copied := append(parachaintypes.BlockData(nil), (*blockData)...)
					data = &copied
				}
				knownBy = append(knownBy, peers...)
			})

		switch {
		case !live:
			request.abandon()
			continue
		case data != nil:
			request.resolve(*data)
			continue
		}

		peerID, ok := p.nextPeer(knownBy, request.attempted)
		if !ok {
			p.pending = append(p.pending, request)
			continue
		}

		p.sendRequest(peerID, request)
	}
}

func (p *Protocol) nextPeer(knownBy []parachaintypes.SessionKey,
	attempted map[peer.ID]struct{}) (peerID peer.ID, ok bool) {
	for _, key := range knownBy {
		peerID, ok = p.validators[key]
		if !ok {
			continue
		}
		if _, tried := attempted[peerID]; !tried {
			return peerID, true
		}
	}
	return "", false
}

func (p *Protocol) sendRequest(peerID peer.ID, request *blockDataRequest) {
	requestID := p.nextRequestID
	p.nextRequestID++

	request.attempted[peerID] = struct{}{}
	request.sentAt = p.now()
	p.inFlight[requestKey{requestID: requestID, peerID: peerID}] = request
	blockDataRequestsCounter.Inc()

	p.send(peerID, RequestBlockDataMessage{
		RequestID:     requestID,
		RelayParent:   request.relayParent,
		CandidateHash: request.candidateHash,
	})
}

func (p *Protocol) onRequestBlockData(from peer.ID, request RequestBlockDataMessage) {
	response := BlockDataMessage{RequestID: request.RequestID}
	p.live.WithBlockData(request.RelayParent, request.CandidateHash,
		func(data *parachaintypes.BlockData, _ []parachaintypes.SessionKey, _ bool) {
			if data != nil {
				response.Found = true
				response.BlockData = append(parachaintypes.BlockData(nil), (*data)...)
			}
		})

	p.send(from, response)
}

func (p *Protocol) onBlockData(from peer.ID, response BlockDataMessage) {
	key := requestKey{requestID: response.RequestID, peerID: from}
	request, ok := p.inFlight[key]
	if !ok {
		logger.Debugf("%s: request id %d from peer %s", ErrUnexpectedResponse, response.RequestID, from)
		return
	}
	delete(p.inFlight, key)

	if response.Found {
		hash, err := response.BlockData.Hash()
		if err == nil && hash == request.blockDataHash {
			request.resolve(response.BlockData)
			return
		}
		badBlockDataCounter.Inc()
		logger.Debugf("peer %s sent block data not matching candidate %s",
			from, request.candidateHash)
	}

	p.pending = append(p.pending, request)
	p.dispatchPendingRequests()
}

// requeueInFlight moves the in-flight requests matching the predicate
// back to the pending requests.
func (p *Protocol) requeueInFlight(matches func(key requestKey, request *blockDataRequest) bool) (requeued int) {
	for key, request := range p.inFlight {
		if !matches(key, request) {
			continue
		}
		delete(p.inFlight, key)
		p.pending = append(p.pending, request)
		requeued++
	}
	return requeued
}
