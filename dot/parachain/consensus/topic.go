// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package consensus

import (
	"encoding/binary"

	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/lib/common"
)

const (
	incomingTopicSuffix    = "incoming"
	attestationTopicSuffix = "attestations"
)

// IncomingMessageTopic returns the gossip topic messages routed to paraID
// during the session built on parentHash are published on.
func IncomingMessageTopic(parentHash common.Hash, paraID parachaintypes.ParaID) common.Hash {
	buffer := make([]byte, 0, len(parentHash)+4+len(incomingTopicSuffix))
	buffer = append(buffer, parentHash[:]...)
	buffer = binary.LittleEndian.AppendUint32(buffer, uint32(paraID))
	buffer = append(buffer, incomingTopicSuffix...)
	return common.MustBlake2bHash(buffer)
}

// AttestationTopic returns the gossip topic statements about candidates of
// the session built on parentHash are published on.
func AttestationTopic(parentHash common.Hash) common.Hash {
	buffer := make([]byte, 0, len(parentHash)+len(attestationTopicSuffix))
	buffer = append(buffer, parentHash[:]...)
	buffer = append(buffer, attestationTopicSuffix...)
	return common.MustBlake2bHash(buffer)
}
