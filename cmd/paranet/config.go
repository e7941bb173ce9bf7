// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ChainSafe/paranet/dot/parachain/gossip"
	"github.com/ChainSafe/paranet/dot/parachain/protocol"
	"github.com/ChainSafe/paranet/internal/log"
	"github.com/naoina/toml"
	"github.com/urfave/cli"
)

// Config is the TOML configuration of the node.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Gossip   GossipConfig   `toml:"gossip"`
	Protocol ProtocolConfig `toml:"protocol"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// LogConfig is the logging configuration.
type LogConfig struct {
	Level string `toml:"level"`
}

// GossipConfig is the gossip engine configuration.
// Durations use the time.ParseDuration format.
type GossipConfig struct {
	CacheSize int64  `toml:"cache-size"`
	CacheTTL  string `toml:"cache-ttl"`
}

// ProtocolConfig is the protocol state configuration.
type ProtocolConfig struct {
	RequestTimeout              string `toml:"request-timeout"`
	TickInterval                string `toml:"tick-interval"`
	MaxCollationsPerRelayParent int    `toml:"max-collations-per-relay-parent"`
}

// MetricsConfig is the metrics server configuration.
type MetricsConfig struct {
	Address string `toml:"address"`
}

func defaultConfig() *Config {
	gossipConfig := gossip.DefaultConfig()
	protocolConfig := protocol.DefaultConfig()
	return &Config{
		Log: LogConfig{
			Level: log.Info.String(),
		},
		Gossip: GossipConfig{
			CacheSize: gossipConfig.CacheSize,
			CacheTTL:  gossipConfig.CacheTTL.String(),
		},
		Protocol: ProtocolConfig{
			RequestTimeout:              protocolConfig.RequestTimeout.String(),
			TickInterval:                protocolConfig.TickInterval.String(),
			MaxCollationsPerRelayParent: protocolConfig.MaxCollationsPerRelayParent,
		},
		Metrics: MetricsConfig{
			Address: "localhost:9876",
		},
	}
}

// loadConfigFile loads the configuration file given with the config flag
// over the default configuration, and applies the flag overrides.
func loadConfigFile(ctx *cli.Context) (cfg *Config, err error) {
	cfg = defaultConfig()

	cfgPath := ctx.GlobalString(ConfigFlag.Name)
	if cfgPath != "" {
		logger.Info("loading toml configuration from " + cfgPath + "...")
		err = loadConfig(cfg, cfgPath)
		if err != nil {
			return nil, err
		}
	}

	if level := ctx.GlobalString(LogFlag.Name); level != "" {
		cfg.Log.Level = level
	}

	return cfg, nil
}

// loadConfig decodes the TOML file at path into cfg.
func loadConfig(cfg *Config, path string) error {
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("finding configuration file: %w", err)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("reading configuration file: %w", err)
	}

	err = toml.Unmarshal(data, cfg)
	if err != nil {
		return fmt.Errorf("decoding configuration file %s: %w", path, err)
	}
	return nil
}

func (c *Config) logLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, fmt.Errorf("parsing log level: %w", err)
	}
	return level, nil
}

func (c *Config) gossipConfig() (gossip.Config, error) {
	ttl, err := time.ParseDuration(c.Gossip.CacheTTL)
	if err != nil {
		return gossip.Config{}, fmt.Errorf("parsing gossip cache ttl: %w", err)
	}

	config := gossip.Config{
		CacheSize: c.Gossip.CacheSize,
		CacheTTL:  ttl,
	}
	return config, config.Validate()
}

func (c *Config) protocolConfig() (protocol.Config, error) {
	requestTimeout, err := time.ParseDuration(c.Protocol.RequestTimeout)
	if err != nil {
		return protocol.Config{}, fmt.Errorf("parsing protocol request timeout: %w", err)
	}

	tickInterval, err := time.ParseDuration(c.Protocol.TickInterval)
	if err != nil {
		return protocol.Config{}, fmt.Errorf("parsing protocol tick interval: %w", err)
	}

	config := protocol.Config{
		RequestTimeout:              requestTimeout,
		TickInterval:                tickInterval,
		MaxCollationsPerRelayParent: c.Protocol.MaxCollationsPerRelayParent,
	}
	return config, config.Validate()
}

// encode returns the TOML encoding of the configuration.
func (c *Config) encode() ([]byte, error) {
	raw, err := toml.Marshal(*c)
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	return raw, nil
}
