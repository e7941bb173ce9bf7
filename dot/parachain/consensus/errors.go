// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import "errors"

var (
	// ErrNetworkDown is returned when the protocol state could not be reached
	// to produce a result.
	ErrNetworkDown = errors.New("network appears to be down")
	// ErrChannelClosed is returned when the sending end of a result channel
	// hung up without sending.
	ErrChannelClosed = errors.New("sending end of channel hung up")
	// ErrIncompleteIngress is returned when a gossip stream ends before every
	// expected ingress root is satisfied.
	ErrIncompleteIngress = errors.New("gossip stream ended before all ingress roots were satisfied")
	// ErrNoSuchParachain is logged when the runtime reports no parachain
	// registered at the parent block.
	ErrNoSuchParachain = errors.New("parachain is not registered")
	// ErrBadSignature is returned for statements whose signature does not
	// match their sender.
	ErrBadSignature = errors.New("bad statement signature")
)
