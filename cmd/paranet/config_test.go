// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"testing"
	"time"

	"github.com/ChainSafe/paranet/dot/parachain/gossip"
	"github.com/ChainSafe/paranet/dot/parachain/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_serviceConfigs(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	gossipConfig, err := cfg.gossipConfig()
	require.NoError(t, err)
	assert.Equal(t, gossip.DefaultConfig(), gossipConfig)

	protocolConfig, err := cfg.protocolConfig()
	require.NoError(t, err)
	assert.Equal(t, protocol.DefaultConfig(), protocolConfig)
}

func Test_Config_serviceConfigs_errors(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		modify     func(cfg *Config)
		gossip     bool
		errMessage string
	}{
		"gossip_ttl": {
			modify:     func(cfg *Config) { cfg.Gossip.CacheTTL = "soon" },
			gossip:     true,
			errMessage: `parsing gossip cache ttl: time: invalid duration "soon"`,
		},
		"gossip_cache_size": {
			modify: func(cfg *Config) { cfg.Gossip.CacheSize = 0 },
			gossip: true,
			errMessage: "validating gossip config: Key: 'Config.CacheSize' " +
				"Error:Field validation for 'CacheSize' failed on the 'gt' tag",
		},
		"protocol_timeout": {
			modify:     func(cfg *Config) { cfg.Protocol.RequestTimeout = "" },
			errMessage: `parsing protocol request timeout: time: invalid duration ""`,
		},
		"protocol_tick": {
			modify:     func(cfg *Config) { cfg.Protocol.TickInterval = "1 second" },
			errMessage: `parsing protocol tick interval: time: unknown unit " second" in duration "1 second"`,
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := defaultConfig()
			testCase.modify(cfg)

			var err error
			if testCase.gossip {
				_, err = cfg.gossipConfig()
			} else {
				_, err = cfg.protocolConfig()
			}
			assert.EqualError(t, err, testCase.errMessage)
		})
	}
}

func Test_loadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
[gossip]
cache-ttl = "1m"

[metrics]
address = "127.0.0.1:0"
`)

	cfg := defaultConfig()
	err := loadConfig(cfg, path)
	require.NoError(t, err)

	gossipConfig, err := cfg.gossipConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, gossipConfig.CacheTTL)
	assert.Equal(t, "127.0.0.1:0", cfg.Metrics.Address)
	assert.Equal(t, defaultConfig().Protocol, cfg.Protocol)

	err = loadConfig(cfg, "/does/not/exist.toml")
	assert.ErrorContains(t, err, "reading configuration file")

	err = loadConfig(cfg, writeConfigFile(t, "[gossip\n"))
	assert.ErrorContains(t, err, "decoding configuration file")
}
