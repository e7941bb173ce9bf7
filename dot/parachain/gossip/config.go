// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package gossip

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the gossip engine configuration.
type Config struct {
	// CacheSize is the number of (peer, message) pairs remembered
	// to avoid sending a peer a message it already has.
	CacheSize int64 `validate:"gt=0"`
	// CacheTTL is how long a (peer, message) pair is remembered.
	CacheTTL time.Duration `validate:"gt=0"`
}

// DefaultConfig returns the default gossip engine configuration.
func DefaultConfig() Config {
	return Config{
		CacheSize: 1 << 16,
		CacheTTL:  5 * time.Minute,
	}
}

// Validate validates the configuration.
func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err != nil {
		return fmt.Errorf("validating gossip config: %w", err)
	}
	return nil
}
