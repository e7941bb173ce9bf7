// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package parachaintypes

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
)

// bytesChunkSize bounds the buffer grown while reading a length prefixed
// byte slice, so a forged length prefix cannot allocate more than the
// bytes actually available plus one chunk.
const bytesChunkSize = 4096

// Marshal returns the SCALE encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	buffer := bytes.NewBuffer(nil)
	encoder := scale.NewEncoder(buffer)
	err := encoder.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("scale encoding %T: %w", v, err)
	}
	return buffer.Bytes(), nil
}

// Unmarshal decodes the SCALE encoded data into dst, which must be a pointer.
// Trailing bytes are rejected.
func Unmarshal(data []byte, dst interface{}) error {
	reader := bytes.NewReader(data)
	decoder := scale.NewDecoder(reader)
	err := decoder.Decode(dst)
	if err != nil {
		return fmt.Errorf("scale decoding %T: %w", dst, err)
	}
	if reader.Len() != 0 {
		return fmt.Errorf("%w: %d bytes left decoding %T", ErrTrailingBytes, reader.Len(), dst)
	}
	return nil
}

// decodeLength reads a compact encoded collection length.
// Unlike scale.Decoder.DecodeUintCompact, it fails on a truncated input.
func decodeLength(decoder scale.Decoder) (uint64, error) {
	first, err := decoder.ReadOneByte()
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrTruncatedLength, err)
	}

	switch first & 3 {
	case 0:
		return uint64(first >> 2), nil
	case 1:
		next, err := decoder.ReadOneByte()
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrTruncatedLength, err)
		}
		return uint64(binary.LittleEndian.Uint16([]byte{first, next}) >> 2), nil
	case 2:
		buffer := []byte{first, 0, 0, 0}
		err = decoder.Read(buffer[1:])
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrTruncatedLength, err)
		}
		return uint64(binary.LittleEndian.Uint32(buffer) >> 2), nil
	default:
		size := int(first>>2) + 4
		if size > 4 {
			return 0, fmt.Errorf("%w: %d bytes", ErrLengthTooLarge, size)
		}
		buffer := make([]byte, 4)
		err = decoder.Read(buffer)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrTruncatedLength, err)
		}
		return uint64(binary.LittleEndian.Uint32(buffer)), nil
	}
}

// DecodeBytes reads a length prefixed byte slice. A zero length gives nil.
// The buffer grows with the bytes read, never with the claimed length.
func DecodeBytes(decoder scale.Decoder) ([]byte, error) {
	length, err := decodeLength(decoder)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	if length > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrLengthTooLarge, length)
	}

	var data []byte
	for remaining := int(length); remaining > 0; {
		chunk := remaining
		if chunk > bytesChunkSize {
			chunk = bytesChunkSize
		}
		buffer := make([]byte, chunk)
		err = decoder.Read(buffer)
		if err != nil {
			return nil, fmt.Errorf("reading %d of %d bytes: %w", length-uint64(remaining), length, err)
		}
		data = append(data, buffer...)
		remaining -= chunk
	}
	return data, nil
}

// decodeSlice reads a length prefixed list, decoding items one at a time.
// Every item consumes at least one byte, so a forged length prefix fails
// on the first missing item instead of allocating the claimed length.
func decodeSlice[T any](decoder scale.Decoder) ([]T, error) {
	length, err := decodeLength(decoder)
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	if length > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d items", ErrLengthTooLarge, length)
	}

	var items []T
	for i := uint64(0); i < length; i++ {
		var item T
		err = decoder.Decode(&item)
		if err != nil {
			return nil, fmt.Errorf("decoding item %d of %d: %w", i, length, err)
		}
		items = append(items, item)
	}
	return items, nil
}
