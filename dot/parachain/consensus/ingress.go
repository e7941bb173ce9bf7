// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"context"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
	"golang.org/x/exp/slices"
)

// ingressComputer assembles the incoming messages of a parachain out of the
// batches gossiped by the other parachains, keeping only the batches matching
// the expected message queue roots.
type ingressComputer struct {
	remaining map[parachaintypes.ParaID]common.Hash
	incoming  parachaintypes.Incoming
}

func newIngressComputer(roots []parachaintypes.IngressRoot) *ingressComputer {
	remaining := make(map[parachaintypes.ParaID]common.Hash, len(roots))
	for _, root := range roots {
		remaining[root.ParaID] = root.Root
	}

	return &ingressComputer{
		remaining: remaining,
		incoming:  make(parachaintypes.Incoming, 0, len(roots)),
	}
}

func (c *ingressComputer) done() bool {
	return len(c.remaining) == 0
}

// accept processes one batch and returns true once every root is satisfied.
func (c *ingressComputer) accept(pair parachaintypes.IngressPair) (done bool) {
	if c.done() {
		return true
	}

	expected, ok := c.remaining[pair.Source]
	if !ok {
		logger.Tracef("dropping unexpected or duplicate batch from parachain %d", pair.Source)
		return false
	}

	root, err := parachaintypes.MessageQueueRoot(pair.Messages)
	if err != nil {
		logger.Tracef("dropping batch from parachain %d: %s", pair.Source, err)
		return false
	}

	if root != expected {
		logger.Tracef("dropping batch from parachain %d: root %s does not match expected root %s",
			pair.Source, root.Short(), expected.Short())
		return false
	}

	delete(c.remaining, pair.Source)

	index, _ := slices.BinarySearchFunc(c.incoming, pair.Source,
		func(existing parachaintypes.IngressPair, source parachaintypes.ParaID) int {
			switch {
			case existing.Source < source:
				return -1
			case existing.Source > source:
				return 1
			default:
				return 0
			}
		})
	c.incoming = slices.Insert(c.incoming, index, pair)

	return c.done()
}

// run consumes the stream until every root is satisfied.
// It returns ErrIncompleteIngress if the stream closes before that.
func (c *ingressComputer) run(ctx context.Context,
	stream <-chan parachaintypes.IngressPair) (parachaintypes.Incoming, error) {
	if c.done() {
		return c.incoming, nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case pair, ok := <-stream:
			if !ok {
				return nil, ErrIncompleteIngress
			}
			if c.accept(pair) {
				return c.incoming, nil
			}
		}
	}
}

// decodeIngressPairs decodes gossiped messages into ingress pairs,
// dropping the malformed ones. The returned channel is closed when the
// messages channel is closed or the context is done.
func decodeIngressPairs(ctx context.Context, messages <-chan []byte) <-chan parachaintypes.IngressPair {
	pairs := make(chan parachaintypes.IngressPair)

	go func() {
		defer close(pairs)

		for {
			var raw []byte
			var ok bool
			select {
			case <-ctx.Done():
				return
			case raw, ok = <-messages:
				if !ok {
					return
				}
			}

			var pair parachaintypes.IngressPair
			err := parachaintypes.Unmarshal(raw, &pair)
			if err != nil {
				logger.Tracef("dropping malformed ingress message: %s", err)
				continue
			}

			select {
			case <-ctx.Done():
				return
			case pairs <- pair:
			}
		}
	}()

	return pairs
}
