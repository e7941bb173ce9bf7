// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"sync"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
)

type knowledgeEntry struct {
	knowsBlockData []parachaintypes.SessionKey
	knowsExtrinsic []parachaintypes.SessionKey
	blockData      *parachaintypes.BlockData
	extrinsic      *parachaintypes.Extrinsic
}

// Knowledge tracks which peers know the data of which candidates.
// It is safe for concurrent use.
type Knowledge struct {
	mu         sync.Mutex
	candidates map[parachaintypes.CandidateHash]*knowledgeEntry
}

// NewKnowledge creates an empty knowledge tracker.
func NewKnowledge() *Knowledge {
	return &Knowledge{
		candidates: make(map[parachaintypes.CandidateHash]*knowledgeEntry),
	}
}

func (k *Knowledge) entry(hash parachaintypes.CandidateHash) *knowledgeEntry {
	entry, ok := k.candidates[hash]
	if !ok {
		entry = new(knowledgeEntry)
		k.candidates[hash] = entry
	}
	return entry
}

// NoteStatement notes a statement seen from another validator.
// A peer issuing several statements about a candidate is listed several times.
func (k *Knowledge) NoteStatement(from parachaintypes.SessionKey, statement parachaintypes.Statement) {
	value, err := statement.Value()
	if err != nil {
		logger.Debugf("ignoring statement from %s: %s", from, err)
		return
	}

	hash, err := statement.CandidateHash()
	if err != nil {
		logger.Debugf("ignoring statement from %s: %s", from, err)
		return
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	entry := k.entry(hash)

	// those proposing the candidate or declaring it valid know everything.
	// those claiming it invalid do not have the extrinsic data as it is
	// generated by valid execution.
	switch value.(type) {
	case parachaintypes.Candidate, parachaintypes.Valid:
		entry.knowsBlockData = append(entry.knowsBlockData, from)
		entry.knowsExtrinsic = append(entry.knowsExtrinsic, from)
	case parachaintypes.Invalid:
		entry.knowsBlockData = append(entry.knowsBlockData, from)
	}
}

// NoteCandidate notes a candidate collated or seen locally.
// Data already known is never overwritten.
func (k *Knowledge) NoteCandidate(hash parachaintypes.CandidateHash,
	blockData *parachaintypes.BlockData, extrinsic *parachaintypes.Extrinsic) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry := k.entry(hash)
	if entry.blockData == nil {
		entry.blockData = blockData
	}
	if entry.extrinsic == nil {
		entry.extrinsic = extrinsic
	}
}

// WithBlockData calls f with the block data of the candidate when it is known
// locally, or else with the session keys of the peers believed to have it.
// f runs with the knowledge locked and must not block.
func (k *Knowledge) WithBlockData(hash parachaintypes.CandidateHash,
	f func(data *parachaintypes.BlockData, knownBy []parachaintypes.SessionKey)) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry, ok := k.candidates[hash]
	switch {
	case !ok:
		f(nil, nil)
	case entry.blockData != nil:
		f(entry.blockData, nil)
	default:
		f(nil, entry.knowsBlockData)
	}
}

// KnowsExtrinsic returns the session keys of the peers believed to have the
// extrinsic data of the candidate.
func (k *Knowledge) KnowsExtrinsic(hash parachaintypes.CandidateHash) []parachaintypes.SessionKey {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry, ok := k.candidates[hash]
	if !ok {
		return nil
	}
	return append([]parachaintypes.SessionKey(nil), entry.knowsExtrinsic...)
}

// Extrinsic returns the extrinsic data of the candidate if known locally.
func (k *Knowledge) Extrinsic(hash parachaintypes.CandidateHash) *parachaintypes.Extrinsic {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry, ok := k.candidates[hash]
	if !ok {
		return nil
	}
	return entry.extrinsic
}
