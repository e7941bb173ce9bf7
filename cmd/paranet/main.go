// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"os"

	"github.com/ChainSafe/paranet/internal/log"
	"github.com/urfave/cli"
)

var logger = log.NewFromGlobal(log.AddContext("pkg", "cmd"))

var (
	topicCommand = cli.Command{
		Action:    FixFlagOrder(topicAction),
		Name:      "topic",
		Usage:     "Compute the gossip topic of a consensus session",
		ArgsUsage: "",
		Flags:     append(GlobalFlags, TopicFlags...),
		Description: "The topic command prints the topic the incoming messages of a parachain\n" +
			"are gossiped on during the session built on a parent block.\n" +
			"\tUsage: paranet topic --parent 0x01... --para 100\n" +
			"\tUsage: paranet topic --parent 0x01... --attestation",
	}
	queueRootCommand = cli.Command{
		Action:    FixFlagOrder(queueRootAction),
		Name:      "queue-root",
		Usage:     "Compute the message queue root of a batch of messages",
		ArgsUsage: "<0x message> ...",
		Flags:     GlobalFlags,
		Description: "The queue-root command prints the root committing to the given messages,\n" +
			"in the order given.\n" +
			"\tUsage: paranet queue-root 0x0102 0x03",
	}
	configCommand = cli.Command{
		Action:   FixFlagOrder(configAction),
		Name:     "config",
		Usage:    "Print the effective configuration",
		Flags:    GlobalFlags,
		Category: "CONFIG",
		Description: "The config command prints the default configuration merged with the\n" +
			"configuration file and flags, in TOML.\n" +
			"\tUsage: paranet --config node.toml config",
	}
	serveMetricsCommand = cli.Command{
		Action:   FixFlagOrder(serveMetricsAction),
		Name:     "serve-metrics",
		Usage:    "Run the parachain network services and serve their metrics",
		Flags:    append(GlobalFlags, ServeMetricsFlags...),
		Category: "NODE",
		Description: "The serve-metrics command starts the gossip engine and the protocol\n" +
			"service, and serves the prometheus metrics until interrupted.\n" +
			"\tUsage: paranet serve-metrics --metrics-address localhost:9876",
	}
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "paranet"
	app.Usage = "Parachain consensus networking tools"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		topicCommand,
		queueRootCommand,
		configCommand,
		serveMetricsCommand,
	}
	app.Flags = GlobalFlags
	return app
}

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
