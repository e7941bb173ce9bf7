// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package gossip

import (
	"fmt"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// Message is a consensus gossip message published on a topic.
type Message struct {
	Topic common.Hash
	Data  []byte
}

// Hash returns the blake2b hash of the topic and data of the message.
func (m Message) Hash() (common.Hash, error) {
	buffer := make([]byte, 0, len(m.Topic)+len(m.Data))
	buffer = append(buffer, m.Topic[:]...)
	buffer = append(buffer, m.Data...)
	return common.Blake2bHash(buffer)
}

// Decode reads the topic and the length prefixed data.
func (m *Message) Decode(decoder scale.Decoder) (err error) {
	err = decoder.Decode(&m.Topic)
	if err != nil {
		return fmt.Errorf("decoding topic: %w", err)
	}
	m.Data, err = parachaintypes.DecodeBytes(decoder)
	if err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}
	return nil
}

// Encode returns the SCALE encoding of the message.
func (m Message) Encode() ([]byte, error) {
	return parachaintypes.Marshal(m)
}

// DecodeMessage decodes a SCALE encoded gossip message.
func DecodeMessage(data []byte) (message Message, err error) {
	err = parachaintypes.Unmarshal(data, &message)
	if err != nil {
		return message, fmt.Errorf("decoding gossip message: %w", err)
	}
	return message, nil
}
