// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import "errors"

var (
	ErrServiceStopped      = errors.New("protocol service is stopped")
	ErrUnknownMessageIndex = errors.New("unknown protocol message index")
	ErrMessageNotSet       = errors.New("protocol message value is not set")
	ErrUnknownPeer         = errors.New("unknown peer")
	ErrUnexpectedResponse  = errors.New("unexpected block data response")
	ErrBadCollation        = errors.New("bad collation")
)
