// Copyright 2023 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/ChainSafe/paranet/dot/parachain/consensus"
	parachaintypes "github.com/ChainSafe/paranet/dot/parachain/types"
	"github.com/ChainSafe/paranet/internal/log"
	"github.com/ChainSafe/paranet/lib/common"
	"github.com/urfave/cli"
)

var (
	errMissingPara    = errors.New("parachain id is required unless --attestation is set")
	errNoMessages     = errors.New("at least one message is required")
	errInvalidParaID  = errors.New("invalid parachain id")
	errInvalidMessage = errors.New("invalid message")
)

// setupConfig loads the configuration and sets the global log level.
func setupConfig(ctx *cli.Context) (*Config, error) {
	cfg, err := loadConfigFile(ctx)
	if err != nil {
		return nil, err
	}

	level, err := cfg.logLevel()
	if err != nil {
		return nil, err
	}
	log.PatchLevel(level)

	return cfg, nil
}

func topicAction(ctx *cli.Context) error {
	_, err := setupConfig(ctx)
	if err != nil {
		return err
	}

	parentHash, err := common.HexToHash(ctx.String(ParentFlag.Name))
	if err != nil {
		return fmt.Errorf("parsing parent hash: %w", err)
	}

	var topic common.Hash
	if ctx.Bool(AttestationFlag.Name) {
		topic = consensus.AttestationTopic(parentHash)
	} else {
		para := ctx.String(ParaFlag.Name)
		if para == "" {
			return errMissingPara
		}

		paraID, err := strconv.ParseUint(para, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: %s", errInvalidParaID, para)
		}
		topic = consensus.IncomingMessageTopic(parentHash, parachaintypes.ParaID(paraID))
	}

	_, err = fmt.Fprintln(ctx.App.Writer, topic)
	return err
}

func queueRootAction(ctx *cli.Context) error {
	_, err := setupConfig(ctx)
	if err != nil {
		return err
	}

	args := ctx.Args()
	if len(args) == 0 {
		return errNoMessages
	}

	messages := make([]parachaintypes.Message, len(args))
	for i, arg := range args {
		message, err := common.HexToBytes(arg)
		if err != nil {
			return fmt.Errorf("%w: %s: %s", errInvalidMessage, arg, err)
		}
		messages[i] = message
	}

	root, err := parachaintypes.MessageQueueRoot(messages)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(ctx.App.Writer, root)
	return err
}

func configAction(ctx *cli.Context) error {
	cfg, err := setupConfig(ctx)
	if err != nil {
		return err
	}

	raw, err := cfg.encode()
	if err != nil {
		return err
	}

	_, err = ctx.App.Writer.Write(raw)
	return err
}

func serveMetricsAction(ctx *cli.Context) error {
	cfg, err := setupConfig(ctx)
	if err != nil {
		return err
	}

	if address := ctx.String(MetricsAddressFlag.Name); address != "" {
		cfg.Metrics.Address = address
	}

	n, err := newNode(cfg)
	if err != nil {
		return err
	}

	err = n.start()
	if err != nil {
		return err
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-signalCtx.Done()
	logger.Info("shutting down")

	return n.stop()
}
