// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"context"
	"sync"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"golang.org/x/exp/slices"
)

// twoStageReceiver receives a value produced by a channel which is itself
// delivered once a closure scheduled on the protocol state has run.
// The outer channel is read by a single goroutine started on the first
// Receive, so concurrent callers each wait on their own context.
type twoStageReceiver[T any] struct {
	once      sync.Once
	outer     <-chan (<-chan T)
	resolved  chan struct{}
	inner     <-chan T // set before resolved is closed
	hungUpErr error
}

func (r *twoStageReceiver[T]) resolveInner() {
	defer close(r.resolved)
	inner, ok := <-r.outer
	if ok {
		r.inner = inner
	}
}

// Receive blocks until the value is received or the context is done.
// It returns an error if either producer hangs up without sending.
func (r *twoStageReceiver[T]) Receive(ctx context.Context) (value T, err error) {
	r.once.Do(func() {
		go r.resolveInner()
	})

	select {
	case <-ctx.Done():
		return value, ctx.Err()
	case <-r.resolved:
	}

	if r.inner == nil {
		return value, r.hungUpErr
	}

	select {
	case <-ctx.Done():
		return value, ctx.Err()
	case value, ok := <-r.inner:
		if !ok {
			return value, r.hungUpErr
		}
		return value, nil
	}
}

// BlockDataReceiver receives the block data of a candidate.
type BlockDataReceiver struct {
	twoStageReceiver[parachaintypes.BlockData]
}

func newBlockDataReceiver(outer <-chan (<-chan parachaintypes.BlockData)) *BlockDataReceiver {
	return &BlockDataReceiver{
		twoStageReceiver: twoStageReceiver[parachaintypes.BlockData]{
			outer:     outer,
			resolved:  make(chan struct{}),
			hungUpErr: ErrChannelClosed,
		},
	}
}

// AwaitingCollation receives a collation from the collator pool.
type AwaitingCollation struct {
	twoStageReceiver[parachaintypes.Collation]
}

func newAwaitingCollation(outer <-chan (<-chan parachaintypes.Collation)) *AwaitingCollation {
	return &AwaitingCollation{
		twoStageReceiver: twoStageReceiver[parachaintypes.Collation]{
			outer:     outer,
			resolved:  make(chan struct{}),
			hungUpErr: ErrNetworkDown,
		},
	}
}

// IncomingReceiver receives the incoming messages of a parachain.
// It is shared by every caller fetching the same parachain in a session
// and is safe for concurrent use.
type IncomingReceiver struct {
	once     sync.Once
	done     chan struct{}
	incoming parachaintypes.Incoming
	err      error
}

func newIncomingReceiver() *IncomingReceiver {
	return &IncomingReceiver{
		done: make(chan struct{}),
	}
}

func (r *IncomingReceiver) resolve(incoming parachaintypes.Incoming) {
	r.once.Do(func() {
		r.incoming = incoming
		close(r.done)
	})
}

func (r *IncomingReceiver) fail(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Done returns a channel closed once the receiver has a result.
func (r *IncomingReceiver) Done() <-chan struct{} {
	return r.done
}

// Receive blocks until the incoming messages are available or the context is done.
// Callers must not modify the batches of the returned value.
func (r *IncomingReceiver) Receive(ctx context.Context) (parachaintypes.Incoming, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.done:
	}

	if r.err != nil {
		return nil, r.err
	}
	return slices.Clone(r.incoming), nil
}
