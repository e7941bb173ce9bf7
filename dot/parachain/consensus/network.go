// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"context"
	"fmt"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/internal/log"
	"github.com/ChainSafe/paranet/lib/common"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "parachain-consensus"))

// ConsensusNetwork is the entry point of the consensus code into the network.
type ConsensusNetwork struct {
	network  NetworkService
	exit     context.Context
	api      RuntimeAPI
	executor Executor
}

// NewConsensusNetwork creates a consensus network. The exit context is shared
// by every session; once done, background fetches stop without delivering.
func NewConsensusNetwork(network NetworkService, exit context.Context,
	api RuntimeAPI, executor Executor) *ConsensusNetwork {
	return &ConsensusNetwork{
		network:  network,
		exit:     exit,
		api:      api,
		executor: executor,
	}
}

// InstantiateConsensus registers a consensus session with the protocol state.
// The returned channel receives the data fetcher of the session, and is closed
// without a value if the network is down.
func (c *ConsensusNetwork) InstantiateConsensus(params Params) <-chan *DataFetcher {
	fetchers := make(chan *DataFetcher, 1)

	err := c.network.WithSpec(func(spec ProtocolState) {
		session := spec.NewConsensus(params)
		fetchers <- newDataFetcher(c.network, c.api, c.executor, c.exit, session)
		close(fetchers)
	})
	if err != nil {
		logger.Debugf("cannot instantiate consensus at %s: %s", params.ParentHash.Short(), err)
		close(fetchers)
	}

	return fetchers
}

// CommunicationFor instantiates a consensus session for the table and returns
// a router for it. The outgoing messages are broadcast, and the checked
// statements gossiped on the session's attestation topic are imported
// into the table until the session topic closes.
func (c *ConsensusNetwork) CommunicationFor(ctx context.Context, table SharedTable,
	outgoing []parachaintypes.OutgoingMessages) (*Router, error) {
	localKey := table.SessionKey()
	params := Params{
		LocalSessionKey: &localKey,
		ParentHash:      table.ParentHash(),
	}

	var fetcher *DataFetcher
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case f, ok := <-c.InstantiateConsensus(params):
		if !ok {
			return nil, fmt.Errorf("instantiating consensus at %s: %w", params.ParentHash.Short(), ErrNetworkDown)
		}
		fetcher = f
	}

	router := NewRouter(table, fetcher)
	err := router.BroadcastEgress(outgoing)
	if err != nil {
		return nil, fmt.Errorf("broadcasting egress: %w", err)
	}

	statements := router.CheckedStatements()
	c.executor.Spawn(func() {
		for statement := range statements {
			router.ImportStatement(statement)
		}
	})

	return router, nil
}

// Collate waits for a collation of the parachain at the relay parent.
func (c *ConsensusNetwork) Collate(paraID parachaintypes.ParaID, relayParent common.Hash) *AwaitingCollation {
	outer := make(chan (<-chan parachaintypes.Collation), 1)

	err := c.network.WithSpec(func(spec ProtocolState) {
		outer <- spec.AwaitCollation(relayParent, paraID)
		close(outer)
	})
	if err != nil {
		logger.Debugf("cannot await collation of parachain %d at %s: %s", paraID, relayParent.Short(), err)
		close(outer)
	}

	return newAwaitingCollation(outer)
}

// NoteBadCollator notes a collator which sent a bad collation.
func (c *ConsensusNetwork) NoteBadCollator(collator parachaintypes.CollatorID) {
	err := c.network.WithSpec(func(spec ProtocolState) {
		spec.DisconnectBadCollator(collator)
	})
	if err != nil {
		logger.Debugf("cannot note bad collator 0x%x: %s", collator[:], err)
	}
}
