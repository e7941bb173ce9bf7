// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"fmt"

	"github.com/ChainSafe/paranet/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// Message is an opaque message routed from one parachain to another.
type Message []byte

// Decode reads a length prefixed message.
func (m *Message) Decode(decoder scale.Decoder) (err error) {
	*m, err = DecodeBytes(decoder)
	return err
}

// IngressPair is a batch of messages sent by the Source parachain.
type IngressPair struct {
	Source   ParaID
	Messages []Message
}

// Decode reads the source and its message batch.
func (p *IngressPair) Decode(decoder scale.Decoder) (err error) {
	err = decoder.Decode(&p.Source)
	if err != nil {
		return fmt.Errorf("decoding source: %w", err)
	}
	p.Messages, err = decodeSlice[Message](decoder)
	if err != nil {
		return fmt.Errorf("decoding messages: %w", err)
	}
	return nil
}

// Incoming is the full set of messages a parachain must process,
// sorted by source parachain ascending.
type Incoming []IngressPair

// Decode reads a list of ingress pairs.
func (i *Incoming) Decode(decoder scale.Decoder) (err error) {
	*i, err = decodeSlice[IngressPair](decoder)
	return err
}

// IngressRoot is the expected message queue root of the messages
// sent by ParaID.
type IngressRoot struct {
	ParaID ParaID
	Root   common.Hash
}

// OutgoingMessage is a message addressed to the Target parachain.
type OutgoingMessage struct {
	Target ParaID
	Data   []byte
}

// Decode reads the target and the message data.
func (o *OutgoingMessage) Decode(decoder scale.Decoder) (err error) {
	err = decoder.Decode(&o.Target)
	if err != nil {
		return fmt.Errorf("decoding target: %w", err)
	}
	o.Data, err = DecodeBytes(decoder)
	if err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}
	return nil
}

// OutgoingMessages are the messages sent by a parachain's candidate.
type OutgoingMessages struct {
	From     ParaID
	Messages []OutgoingMessage
}

// Decode reads the sender and its outgoing messages.
func (o *OutgoingMessages) Decode(decoder scale.Decoder) (err error) {
	err = decoder.Decode(&o.From)
	if err != nil {
		return fmt.Errorf("decoding sender: %w", err)
	}
	o.Messages, err = decodeSlice[OutgoingMessage](decoder)
	if err != nil {
		return fmt.Errorf("decoding messages: %w", err)
	}
	return nil
}

// MessageQueueRoot computes the commitment root of an ordered batch of messages.
// It is the blake2b hash of the SCALE encoded message list.
func MessageQueueRoot(messages []Message) (common.Hash, error) {
	if messages == nil {
		messages = []Message{}
	}

	encoded, err := Marshal(messages)
	if err != nil {
		return common.EmptyHash, fmt.Errorf("encoding message queue: %w", err)
	}
	return common.Blake2bHash(encoded)
}

// MustMessageQueueRoot is MessageQueueRoot and panics on error.
func MustMessageQueueRoot(messages []Message) common.Hash {
	root, err := MessageQueueRoot(messages)
	if err != nil {
		panic(err)
	}
	return root
}
