// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import "github.com/urfave/cli"

// Global flags
var (
	// ConfigFlag TOML configuration file
	ConfigFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	// LogFlag overrides the log level of the configuration file
	LogFlag = cli.StringFlag{
		Name:  "log",
		Usage: "Global log level. Supports levels crit (silent), eror, warn, info, dbug and trce (trace)",
	}
)

// Topic flags
var (
	// ParentFlag is the 0x prefixed hex parent block hash of the session
	ParentFlag = cli.StringFlag{
		Name:  "parent",
		Usage: "Parent block hash of the consensus session, 0x prefixed hex",
	}
	// ParaFlag is the parachain the incoming messages are routed to
	ParaFlag = cli.StringFlag{
		Name:  "para",
		Usage: "Parachain id the incoming messages are routed to",
	}
	// AttestationFlag selects the attestation topic instead of the incoming message topic
	AttestationFlag = cli.BoolFlag{
		Name:  "attestation",
		Usage: "Compute the attestation topic of the session",
	}
)

// Metrics flags
var (
	// MetricsAddressFlag overrides the metrics server listening address
	MetricsAddressFlag = cli.StringFlag{
		Name:  "metrics-address",
		Usage: "Listening address of the metrics server",
	}
)

var (
	// GlobalFlags are flags accepted by every command
	GlobalFlags = []cli.Flag{
		ConfigFlag,
		LogFlag,
	}

	// TopicFlags are flags of the topic command
	TopicFlags = []cli.Flag{
		ParentFlag,
		ParaFlag,
		AttestationFlag,
	}

	// ServeMetricsFlags are flags of the serve-metrics command
	ServeMetricsFlags = []cli.Flag{
		MetricsAddressFlag,
	}
)

// FixFlagOrder allows global flags to be given after the command name,
// as in `paranet config --config node.toml`. Local flags must still come
// after the command name.
func FixFlagOrder(f func(ctx *cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		for _, flagName := range ctx.FlagNames() {
			if ctx.GlobalIsSet(flagName) || !ctx.IsSet(flagName) {
				continue
			}

			// fails for local flags, which are left as they are
			err := ctx.GlobalSet(flagName, ctx.String(flagName))
			if err == nil {
				logger.Trace("global flag fixed with name: " + flagName)
			}
		}

		return f(ctx)
	}
}
