// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var logLevelFlag = cli.StringFlag{
	Name:  "log-level",
	Usage: "minimum level of log messages written to stderr (debug, info, warn, error)",
	Value: "warn",
}

const loggerKey = "logger"

func setupLogger(context *cli.Context) error {
	level, err := zap.ParseAtomicLevel(context.String(logLevelFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = level
	config.Encoding = "console"
	config.DisableStacktrace = true
	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	if context.App.Metadata == nil {
		context.App.Metadata = map[string]any{}
	}
	context.App.Metadata[loggerKey] = logger
	return nil
}

func syncLogger(context *cli.Context) error {
	// syncing stderr fails on some platforms, the result is ignored
	_ = getLogger(context).Sync()
	return nil
}

func getLogger(context *cli.Context) *zap.Logger {
	if logger, ok := context.App.Metadata[loggerKey].(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}
