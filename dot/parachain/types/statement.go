// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"crypto/ed25519"
	"fmt"

	"github.com/ChainSafe/paranet/lib/common"
	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// StatementValue is one of Candidate, Valid or Invalid.
type StatementValue interface {
	Index() uint
}

// Candidate is a statement proposing a new candidate.
type Candidate CandidateReceipt

// Index returns the index of the statement variant
func (Candidate) Index() uint {
	return 1
}

// Valid represents a statement that a validator has deemed a candidate valid.
type Valid CandidateHash

// Index returns the index of the statement variant
func (Valid) Index() uint {
	return 2
}

// Invalid represents a statement that a validator has deemed a candidate invalid.
type Invalid CandidateHash

// Index returns the index of the statement variant
func (Invalid) Index() uint {
	return 3
}

// Statement is a statement a validator makes about a candidate.
type Statement struct {
	value StatementValue
}

// NewStatement returns a statement set to the given value.
func NewStatement(val StatementValue) Statement {
	return Statement{value: val}
}

// Set sets the statement value.
func (s *Statement) Set(val StatementValue) error {
	switch val.(type) {
	case Candidate, Valid, Invalid:
	default:
		return fmt.Errorf("%w: %T", ErrUnknownStatementIndex, val)
	}
	s.value = val
	return nil
}

// Value returns the statement value.
func (s Statement) Value() (StatementValue, error) {
	if s.value == nil {
		return nil, ErrStatementNotSet
	}
	return s.value, nil
}

// CandidateHash returns the hash of the candidate the statement is about.
func (s Statement) CandidateHash() (CandidateHash, error) {
	switch val := s.value.(type) {
	case Candidate:
		return CandidateReceipt(val).Hash()
	case Valid:
		return CandidateHash(val), nil
	case Invalid:
		return CandidateHash(val), nil
	default:
		return CandidateHash{}, ErrStatementNotSet
	}
}

// Encode writes the variant index byte followed by the variant payload.
func (s Statement) Encode(encoder scale.Encoder) error {
	if s.value == nil {
		return ErrStatementNotSet
	}

	err := encoder.PushByte(byte(s.value.Index()))
	if err != nil {
		return err
	}

	switch val := s.value.(type) {
	case Candidate:
		return encoder.Encode(CandidateReceipt(val))
	case Valid:
		return encoder.Encode(CandidateHash(val))
	case Invalid:
		return encoder.Encode(CandidateHash(val))
	}
	return fmt.Errorf("%w: %d", ErrUnknownStatementIndex, s.value.Index())
}

// Decode reads a statement written by Encode.
func (s *Statement) Decode(decoder scale.Decoder) error {
	index, err := decoder.ReadOneByte()
	if err != nil {
		return err
	}

	switch uint(index) {
	case Candidate{}.Index():
		var receipt CandidateReceipt
		err = receipt.Decode(decoder)
		s.value = Candidate(receipt)
	case Valid{}.Index():
		var hash CandidateHash
		err = decoder.Decode(&hash)
		s.value = Valid(hash)
	case Invalid{}.Index():
		var hash CandidateHash
		err = decoder.Decode(&hash)
		s.value = Invalid(hash)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStatementIndex, index)
	}
	return err
}

// SignedStatement is a statement signed by the session key of its sender.
type SignedStatement struct {
	Statement Statement
	Signature ValidatorSignature
	Sender    SessionKey
}

// Decode reads the statement, its signature and its sender.
func (s *SignedStatement) Decode(decoder scale.Decoder) error {
	err := s.Statement.Decode(decoder)
	if err != nil {
		return fmt.Errorf("decoding statement: %w", err)
	}
	err = decoder.Decode(&s.Signature)
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}
	err = decoder.Decode(&s.Sender)
	if err != nil {
		return fmt.Errorf("decoding sender: %w", err)
	}
	return nil
}

// SigningPayload returns the bytes signed for a statement made
// in the session built on parentHash.
func SigningPayload(statement Statement, parentHash common.Hash) ([]byte, error) {
	encoded, err := Marshal(statement)
	if err != nil {
		return nil, err
	}
	return append(encoded, parentHash[:]...), nil
}

// SignStatement signs the statement with the given ed25519 private key.
func SignStatement(statement Statement, parentHash common.Hash, key ed25519.PrivateKey) (SignedStatement, error) {
	payload, err := SigningPayload(statement, parentHash)
	if err != nil {
		return SignedStatement{}, fmt.Errorf("building signing payload: %w", err)
	}

	signed := SignedStatement{Statement: statement}
	copy(signed.Signature[:], ed25519.Sign(key, payload))
	copy(signed.Sender[:], key.Public().(ed25519.PublicKey))
	return signed, nil
}

// Verify checks the signature of the statement for the session built on parentHash.
func (s SignedStatement) Verify(parentHash common.Hash) (bool, error) {
	payload, err := SigningPayload(s.Statement, parentHash)
	if err != nil {
		return false, fmt.Errorf("building signing payload: %w", err)
	}
	return ed25519.Verify(s.Sender[:], payload, s.Signature[:]), nil
}
