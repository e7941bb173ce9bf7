// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"fmt"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// MessageValue is one of the protocol message variants.
type MessageValue interface {
	Index() uint
}

// SessionKeyMessage announces a session key of the sending validator.
type SessionKeyMessage struct {
	Key parachaintypes.SessionKey
}

// Index returns the index of the message variant
func (SessionKeyMessage) Index() uint {
	return 0
}

// RequestBlockDataMessage requests the block data of a candidate.
type RequestBlockDataMessage struct {
	RequestID     uint64
	RelayParent   common.Hash
	CandidateHash parachaintypes.CandidateHash
}

// Index returns the index of the message variant
func (RequestBlockDataMessage) Index() uint {
	return 1
}

// BlockDataMessage answers a block data request.
// Found is false when the block data is not known by the peer.
type BlockDataMessage struct {
	RequestID uint64
	Found     bool
	BlockData parachaintypes.BlockData
}

// Index returns the index of the message variant
func (BlockDataMessage) Index() uint {
	return 2
}

// CollatorRoleMessage declares the sending peer as the collator of a parachain.
type CollatorRoleMessage struct {
	CollatorID parachaintypes.CollatorID
	ParaID     parachaintypes.ParaID
}

// Index returns the index of the message variant
func (CollatorRoleMessage) Index() uint {
	return 3
}

// CollationMessage sends a collation built on a relay parent.
type CollationMessage struct {
	RelayParent common.Hash
	Collation   parachaintypes.Collation
}

// Index returns the index of the message variant
func (CollationMessage) Index() uint {
	return 4
}

// Message is a protocol message sent directly to a peer.
type Message struct {
	value MessageValue
}

// NewMessage returns a message set to the given value.
func NewMessage(value MessageValue) Message {
	return Message{value: value}
}

// Value returns the message value.
func (m Message) Value() (MessageValue, error) {
	if m.value == nil {
		return nil, ErrMessageNotSet
	}
	return m.value, nil
}

// Encode writes the variant index byte followed by the variant payload.
func (m Message) Encode(encoder scale.Encoder) error {
	if m.value == nil {
		return ErrMessageNotSet
	}

	err := encoder.PushByte(byte(m.value.Index()))
	if err != nil {
		return err
	}
	return encoder.Encode(m.value)
}

// Decode reads a message written by Encode.
func (m *Message) Decode(decoder scale.Decoder) error {
	index, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}

	switch uint(index) {
	case SessionKeyMessage{}.Index():
		var value SessionKeyMessage
		err = decoder.Decode(&value)
		m.value = value
	case RequestBlockDataMessage{}.Index():
		var value RequestBlockDataMessage
		err = decoder.Decode(&value)
		m.value = value
	case BlockDataMessage{}.Index():
		var value BlockDataMessage
		err = decoder.Decode(&value)
		m.value = value
	case CollatorRoleMessage{}.Index():
		var value CollatorRoleMessage
		err = decoder.Decode(&value)
		m.value = value
	case CollationMessage{}.Index():
		var value CollationMessage
		err = decoder.Decode(&value)
		m.value = value
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMessageIndex, index)
	}
	return err
}

// EncodeMessage returns the SCALE encoding of a message holding value.
func EncodeMessage(value MessageValue) ([]byte, error) {
	return parachaintypes.Marshal(NewMessage(value))
}

// DecodeMessage decodes a SCALE encoded protocol message.
func DecodeMessage(data []byte) (Message, error) {
	var message Message
	err := parachaintypes.Unmarshal(data, &message)
	if err != nil {
		return Message{}, fmt.Errorf("decoding protocol message: %w", err)
	}
	return message, nil
}
