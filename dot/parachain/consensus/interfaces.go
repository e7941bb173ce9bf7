// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
)

// NetworkService is the basic functionality a network has to fulfill.
type NetworkService interface {
	// GossipMessagesFor returns the stream of gossip messages for a topic.
	// The channel is closed once the topic is dropped.
	GossipMessagesFor(topic common.Hash) <-chan []byte
	// GossipMessage gossips a message on the given topic.
	GossipMessage(topic common.Hash, message []byte)
	// DropGossip drops a gossip topic and the messages buffered for it.
	DropGossip(topic common.Hash)
	// WithSpec schedules a closure to run against the protocol state.
	// Closures run one at a time, in the order they were scheduled.
	// An error means the closure will never run.
	WithSpec(with func(spec ProtocolState)) error
}

// ProtocolState is the network protocol state shared by every consensus
// session. It is only accessed from closures given to NetworkService.WithSpec.
type ProtocolState interface {
	// NewConsensus registers a consensus session, or returns the live one
	// for the same parent hash.
	NewConsensus(params Params) CurrentConsensus
	// RemoveConsensus forgets the session at the given parent hash.
	RemoveConsensus(parentHash common.Hash)
	// FetchBlockData returns a channel receiving the block data of the candidate.
	// The channel is closed without a value if the data cannot be retrieved.
	FetchBlockData(candidate parachaintypes.CandidateReceipt,
		parentHash common.Hash) <-chan parachaintypes.BlockData
	// AwaitCollation returns a channel receiving the first collation for the
	// parachain at the relay parent.
	AwaitCollation(relayParent common.Hash, paraID parachaintypes.ParaID) <-chan parachaintypes.Collation
	// DisconnectBadCollator disconnects a collator which sent a bad collation.
	DisconnectBadCollator(collator parachaintypes.CollatorID)
}

// RuntimeAPI gives access to the parachain host runtime API.
type RuntimeAPI interface {
	// Ingress returns the expected message queue roots for messages routed to
	// paraID at the given block. registered is false when paraID is not
	// a parachain at that block.
	Ingress(blockHash common.Hash, paraID parachaintypes.ParaID) (
		roots []parachaintypes.IngressRoot, registered bool, err error)
}

// Executor spawns background tasks.
type Executor interface {
	Spawn(task func())
}

// SharedTable is the statement table of a consensus session.
type SharedTable interface {
	// ParentHash returns the parent hash the session is built on.
	ParentHash() common.Hash
	// SessionKey returns the local session key.
	SessionKey() parachaintypes.SessionKey
	// ImportRemoteStatement imports a statement with a checked signature.
	ImportRemoteStatement(statement parachaintypes.SignedStatement) error
	// SignStatement signs a statement with the local session key.
	SignStatement(statement parachaintypes.Statement) (parachaintypes.SignedStatement, error)
}
