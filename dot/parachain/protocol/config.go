// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package protocol

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the protocol state configuration.
type Config struct {
	// RequestTimeout is how long a peer has to answer a block data request
	// before the request is sent to another peer.
	RequestTimeout time.Duration `validate:"gt=0"`
	// TickInterval is the interval at which request timeouts are checked
	// and pending requests are dispatched again.
	TickInterval time.Duration `validate:"gt=0"`
	// MaxCollationsPerRelayParent bounds the collations buffered
	// for each relay parent and parachain.
	MaxCollationsPerRelayParent int `validate:"gt=0"`
}

// DefaultConfig returns the default protocol configuration.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:              10 * time.Second,
		TickInterval:                time.Second,
		MaxCollationsPerRelayParent: 4,
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err != nil {
		return fmt.Errorf("validating protocol config: %w", err)
	}
	return nil
}
