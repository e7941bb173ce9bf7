// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"context"
	"errors"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
)

// DataFetcher fetches the data needed to validate candidates of a consensus session.
// Clones share the session; releasing any of them releases the session.
type DataFetcher struct {
	network    NetworkService
	api        RuntimeAPI
	executor   Executor
	exit       context.Context
	parentHash common.Hash
	session    CurrentConsensus
}

func newDataFetcher(network NetworkService, api RuntimeAPI, executor Executor,
	exit context.Context, session CurrentConsensus) *DataFetcher {
	return &DataFetcher{
		network:    network,
		api:        api,
		executor:   executor,
		exit:       exit,
		parentHash: session.ParentHash(),
		session:    session,
	}
}

// Clone returns a handle sharing the session of the fetcher.
func (f *DataFetcher) Clone() *DataFetcher {
	clone := *f
	return &clone
}

// ParentHash returns the hash of the block the session is built on.
func (f *DataFetcher) ParentHash() common.Hash {
	return f.parentHash
}

// Knowledge returns the knowledge of the session.
func (f *DataFetcher) Knowledge() *Knowledge {
	return f.session.Knowledge()
}

// Exit returns the context done when the network is shutting down.
func (f *DataFetcher) Exit() context.Context {
	return f.exit
}

// Network returns the network service.
func (f *DataFetcher) Network() NetworkService {
	return f.network
}

// Executor returns the executor tasks are spawned on.
func (f *DataFetcher) Executor() Executor {
	return f.executor
}

// API returns the runtime API.
func (f *DataFetcher) API() RuntimeAPI {
	return f.api
}

// FetchBlockData fetches the block data of a candidate, from local
// knowledge or from a peer known to have it.
func (f *DataFetcher) FetchBlockData(candidate parachaintypes.CandidateReceipt) *BlockDataReceiver {
	parentHash := f.parentHash
	outer := make(chan (<-chan parachaintypes.BlockData), 1)

	err := f.network.WithSpec(func(spec ProtocolState) {
		outer <- spec.FetchBlockData(candidate, parentHash)
		close(outer)
	})
	if err != nil {
		logger.Debugf("cannot fetch block data for parent %s: %s", parentHash.Short(), err)
		close(outer)
	}

	return newBlockDataReceiver(outer)
}

// FetchIncoming fetches the incoming messages of a parachain.
// Every call for the same parachain in a session returns the same receiver.
func (f *DataFetcher) FetchIncoming(paraID parachaintypes.ParaID) *IncomingReceiver {
	receiver, lookup := f.session.incoming.getOrInsert(paraID)
	switch lookup {
	case incomingCached:
		ingressFetchesDeduplicated.Inc()
		return receiver
	case incomingReleased:
		ingressFetchesAfterRelease.Inc()
		return receiver
	}
	ingressFetchesStarted.Inc()

	topic := IncomingMessageTopic(f.parentHash, paraID)
	messages := f.network.GossipMessagesFor(topic)

	// A release racing with the subscription may have dropped the topic
	// before it was subscribed to.
	if f.session.incoming.isReleased() {
		f.network.DropGossip(topic)
		ingressFetchesFailed.Inc()
		receiver.fail(ErrChannelClosed)
		return receiver
	}

	f.executor.Spawn(func() {
		f.computeIncoming(paraID, messages, receiver)
	})

	return receiver
}

func (f *DataFetcher) computeIncoming(paraID parachaintypes.ParaID,
	messages <-chan []byte, receiver *IncomingReceiver) {
	if f.exit.Err() != nil {
		return
	}

	roots, registered, err := f.api.Ingress(f.parentHash, paraID)
	switch {
	case err != nil:
		logger.Warnf("cannot get ingress roots of parachain %d at %s: %s",
			paraID, f.parentHash.Short(), err)
		ingressFetchesFailed.Inc()
		receiver.fail(ErrChannelClosed)
		return
	case !registered:
		logger.Debugf("cannot fetch ingress of parachain %d at %s: %s",
			paraID, f.parentHash.Short(), ErrNoSuchParachain)
		ingressFetchesFailed.Inc()
		receiver.fail(ErrChannelClosed)
		return
	}

	ctx, cancel := context.WithCancel(f.exit)
	defer cancel()

	incoming, err := newIngressComputer(roots).run(ctx, decodeIngressPairs(ctx, messages))
	switch {
	case err == nil:
		ingressFetchesCompleted.Inc()
		receiver.resolve(incoming)
	case f.exit.Err() != nil:
		logger.Tracef("stopped fetching ingress of parachain %d at %s: %s",
			paraID, f.parentHash.Short(), f.exit.Err())
	case errors.Is(err, ErrIncompleteIngress):
		logger.Debugf("cannot fetch ingress of parachain %d at %s: %s",
			paraID, f.parentHash.Short(), err)
		ingressFetchesFailed.Inc()
		receiver.fail(ErrChannelClosed)
	default:
		logger.Errorf("fetching ingress of parachain %d at %s: %s",
			paraID, f.parentHash.Short(), err)
		ingressFetchesFailed.Inc()
		receiver.fail(ErrChannelClosed)
	}
}

// Release releases the session: the protocol state forgets it and the
// gossip topics of the session are dropped.
// Only the first release of a session has any effect.
func (f *DataFetcher) Release() {
	paraIDs, first := f.session.Release()
	if !first {
		return
	}
	sessionsReleased.Inc()

	parentHash := f.parentHash
	err := f.network.WithSpec(func(spec ProtocolState) {
		spec.RemoveConsensus(parentHash)
	})
	if err != nil {
		logger.Debugf("cannot remove consensus session at %s: %s", parentHash.Short(), err)
	}

	for _, paraID := range paraIDs {
		f.network.DropGossip(IncomingMessageTopic(parentHash, paraID))
	}
	f.network.DropGossip(AttestationTopic(parentHash))
}
