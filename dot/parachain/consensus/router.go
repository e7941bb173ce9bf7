// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"fmt"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Router routes the messages and statements of a consensus session
// between the statement table and the network.
type Router struct {
	table            SharedTable
	fetcher          *DataFetcher
	attestationTopic common.Hash
}

// NewRouter creates a router for the session of the fetcher.
func NewRouter(table SharedTable, fetcher *DataFetcher) *Router {
	return &Router{
		table:            table,
		fetcher:          fetcher,
		attestationTopic: AttestationTopic(fetcher.ParentHash()),
	}
}

// Fetcher returns the data fetcher of the session.
func (r *Router) Fetcher() *DataFetcher {
	return r.fetcher
}

// BroadcastEgress gossips the outgoing messages of parachain candidates,
// each batch on the incoming topic of the parachain it is routed to.
func (r *Router) BroadcastEgress(outgoing []parachaintypes.OutgoingMessages) error {
	parentHash := r.fetcher.ParentHash()
	network := r.fetcher.Network()

	for _, egress := range outgoing {
		byTarget := make(map[parachaintypes.ParaID][]parachaintypes.Message)
		for _, message := range egress.Messages {
			byTarget[message.Target] = append(byTarget[message.Target], parachaintypes.Message(message.Data))
		}

		targets := maps.Keys(byTarget)
		slices.Sort(targets)

		for _, target := range targets {
			pair := parachaintypes.IngressPair{
				Source:   egress.From,
				Messages: byTarget[target],
			}
			encoded, err := parachaintypes.Marshal(pair)
			if err != nil {
				return fmt.Errorf("encoding messages from parachain %d to parachain %d: %w",
					egress.From, target, err)
			}
			network.GossipMessage(IncomingMessageTopic(parentHash, target), encoded)
		}
	}

	return nil
}

// CheckedStatements returns the statements gossiped on the attestation topic
// of the session, with their signature checked. Malformed and badly signed
// statements are dropped. The channel is closed once the topic is dropped
// or the network exits.
func (r *Router) CheckedStatements() <-chan parachaintypes.SignedStatement {
	parentHash := r.fetcher.ParentHash()
	exit := r.fetcher.Exit()
	messages := r.fetcher.Network().GossipMessagesFor(r.attestationTopic)
	statements := make(chan parachaintypes.SignedStatement)

	go func() {
		defer close(statements)

		for {
			var raw []byte
			var ok bool
			select {
			case <-exit.Done():
				return
			case raw, ok = <-messages:
				if !ok {
					return
				}
			}

			statement, err := checkStatement(raw, parentHash)
			if err != nil {
				logger.Debugf("dropping gossiped statement at %s: %s", parentHash.Short(), err)
				continue
			}

			select {
			case <-exit.Done():
				return
			case statements <- statement:
			}
		}
	}()

	return statements
}

func checkStatement(raw []byte, parentHash common.Hash) (statement parachaintypes.SignedStatement, err error) {
	err = parachaintypes.Unmarshal(raw, &statement)
	if err != nil {
		statementsChecked.WithLabelValues("malformed").Inc()
		return statement, err
	}

	valid, err := statement.Verify(parentHash)
	if err != nil {
		statementsChecked.WithLabelValues("malformed").Inc()
		return statement, err
	}
	if !valid {
		statementsChecked.WithLabelValues("bad_signature").Inc()
		return statement, fmt.Errorf("%w: from %s", ErrBadSignature, statement.Sender)
	}

	statementsChecked.WithLabelValues("valid").Inc()
	return statement, nil
}

// ImportStatement notes what the sender of a checked statement knows and
// imports the statement into the table.
func (r *Router) ImportStatement(statement parachaintypes.SignedStatement) {
	r.fetcher.Knowledge().NoteStatement(statement.Sender, statement.Statement)

	err := r.table.ImportRemoteStatement(statement)
	if err != nil {
		logger.Debugf("cannot import statement from %s: %s", statement.Sender, err)
	}
}

// GossipStatement signs the statement with the local key and gossips it
// on the attestation topic of the session.
func (r *Router) GossipStatement(statement parachaintypes.Statement) error {
	signed, err := r.table.SignStatement(statement)
	if err != nil {
		return fmt.Errorf("signing statement: %w", err)
	}

	encoded, err := parachaintypes.Marshal(signed)
	if err != nil {
		return fmt.Errorf("encoding signed statement: %w", err)
	}

	r.fetcher.Network().GossipMessage(r.attestationTopic, encoded)
	return nil
}

// LocalCandidate notes a candidate collated locally and proposes it to the
// other validators of the session.
func (r *Router) LocalCandidate(receipt parachaintypes.CandidateReceipt,
	blockData parachaintypes.BlockData, extrinsic parachaintypes.Extrinsic) error {
	hash, err := receipt.Hash()
	if err != nil {
		return fmt.Errorf("hashing candidate: %w", err)
	}

	r.fetcher.Knowledge().NoteCandidate(hash, &blockData, &extrinsic)

	err = r.GossipStatement(parachaintypes.NewStatement(parachaintypes.Candidate(receipt)))
	if err != nil {
		return fmt.Errorf("proposing candidate %s: %w", hash, err)
	}
	return nil
}

// FetchBlockData fetches the block data of a candidate of the session.
func (r *Router) FetchBlockData(candidate parachaintypes.CandidateReceipt) *BlockDataReceiver {
	return r.fetcher.FetchBlockData(candidate)
}

// FetchIncoming fetches the incoming messages of a parachain.
func (r *Router) FetchIncoming(paraID parachaintypes.ParaID) *IncomingReceiver {
	return r.fetcher.FetchIncoming(paraID)
}
