// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"errors"
	"fmt"

	"github.com/ChainSafe/paranet/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

var (
	ErrTrailingBytes         = errors.New("trailing bytes after decoding")
	ErrUnknownStatementIndex = errors.New("unknown statement index")
	ErrStatementNotSet       = errors.New("statement value is not set")
	ErrTruncatedLength       = errors.New("truncated length prefix")
	ErrLengthTooLarge        = errors.New("length prefix too large")
)

// ParaID is the identifier of a parachain.
type ParaID uint32

// SessionKey is the ed25519 public key a validator signs statements with
// during a session.
type SessionKey [32]byte

// String returns the hex string of the session key.
func (k SessionKey) String() string {
	return fmt.Sprintf("0x%x", k[:])
}

// CollatorID is the account id of a collator.
type CollatorID [32]byte

// CollatorSignature is the signature of a collator on a candidate receipt.
type CollatorSignature [64]byte

// ValidatorSignature is the signature of a validator on a statement.
type ValidatorSignature [64]byte

// HeadData is the parachain head data included in the relay chain.
type HeadData []byte

// Decode reads length prefixed head data.
func (h *HeadData) Decode(decoder scale.Decoder) (err error) {
	*h, err = DecodeBytes(decoder)
	return err
}

// BlockData is the parachain block body, as produced by a collator.
type BlockData []byte

// Decode reads length prefixed block data.
func (b *BlockData) Decode(decoder scale.Decoder) (err error) {
	*b, err = DecodeBytes(decoder)
	return err
}

// Hash returns the blake2b hash of the SCALE encoded block data.
func (b BlockData) Hash() (common.Hash, error) {
	encoded, err := Marshal(b)
	if err != nil {
		return common.EmptyHash, err
	}
	return common.Blake2bHash(encoded)
}

// Extrinsic is the parachain extrinsic data, a product of valid execution.
type Extrinsic struct {
	OutgoingMessages []OutgoingMessage
}

// Decode reads an extrinsic.
func (e *Extrinsic) Decode(decoder scale.Decoder) (err error) {
	e.OutgoingMessages, err = decodeSlice[OutgoingMessage](decoder)
	if err != nil {
		return fmt.Errorf("decoding outgoing messages: %w", err)
	}
	return nil
}

// CandidateHash makes it easy to enforce that a hash is a candidate hash on the type level.
type CandidateHash struct {
	Value common.Hash
}

// String returns the hex string of the candidate hash.
func (c CandidateHash) String() string {
	return c.Value.String()
}

// CandidateReceipt is a candidate parachain block as signed by its collator.
type CandidateReceipt struct {
	ParaID           ParaID
	Collator         CollatorID
	Signature        CollatorSignature
	HeadData         HeadData
	EgressQueueRoots []IngressRoot
	Fees             uint64
	BlockDataHash    common.Hash
}

// Decode reads the receipt fields in order.
func (c *CandidateReceipt) Decode(decoder scale.Decoder) (err error) {
	err = decoder.Decode(&c.ParaID)
	if err != nil {
		return fmt.Errorf("decoding para id: %w", err)
	}
	err = decoder.Decode(&c.Collator)
	if err != nil {
		return fmt.Errorf("decoding collator: %w", err)
	}
	err = decoder.Decode(&c.Signature)
	if err != nil {
		return fmt.Errorf("decoding collator signature: %w", err)
	}
	err = c.HeadData.Decode(decoder)
	if err != nil {
		return fmt.Errorf("decoding head data: %w", err)
	}
	c.EgressQueueRoots, err = decodeSlice[IngressRoot](decoder)
	if err != nil {
		return fmt.Errorf("decoding egress queue roots: %w", err)
	}
	err = decoder.Decode(&c.Fees)
	if err != nil {
		return fmt.Errorf("decoding fees: %w", err)
	}
	err = decoder.Decode(&c.BlockDataHash)
	if err != nil {
		return fmt.Errorf("decoding block data hash: %w", err)
	}
	return nil
}

// Hash returns the candidate hash, the blake2b hash of the SCALE encoded receipt.
func (c CandidateReceipt) Hash() (CandidateHash, error) {
	encoded, err := Marshal(c)
	if err != nil {
		return CandidateHash{}, fmt.Errorf("encoding candidate receipt: %w", err)
	}

	hash, err := common.Blake2bHash(encoded)
	if err != nil {
		return CandidateHash{}, fmt.Errorf("hashing candidate receipt: %w", err)
	}
	return CandidateHash{Value: hash}, nil
}

// Collation is a candidate receipt together with the block data it commits to.
type Collation struct {
	Receipt   CandidateReceipt
	BlockData BlockData
}

// Decode reads the receipt and the block data.
func (c *Collation) Decode(decoder scale.Decoder) error {
	err := c.Receipt.Decode(decoder)
	if err != nil {
		return fmt.Errorf("decoding receipt: %w", err)
	}
	err = c.BlockData.Decode(decoder)
	if err != nil {
		return fmt.Errorf("decoding block data: %w", err)
	}
	return nil
}
