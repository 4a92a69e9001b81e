package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gorewood/ismism/internal/catalog"
	"github.com/gorewood/ismism/internal/config"
	"github.com/gorewood/ismism/internal/output"
)

// cmdEnv is what a command resolves from the root flags and config files
// before doing its work.
type cmdEnv struct {
	printer *output.Printer
	cfg     *config.Config
	logger  *zap.Logger
}

// prepare resolves configuration and builds the printer and logger.
// Errors are already printed when returned.
func prepare(cmd *cobra.Command) (*cmdEnv, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), false).WithStderr(cmd.ErrOrStderr())
		printer.Error(err)
		return nil, err
	}

	out := cmd.OutOrStdout()
	color := output.ResolveColorMode(cfg.Color, output.IsTTY(out))
	env := &cmdEnv{
		printer: output.NewPrinter(out, isJSONMode(cmd), color).WithStderr(cmd.ErrOrStderr()),
		cfg:     cfg,
		logger:  newLogger(cmd),
	}
	env.logger.Debug("config resolved",
		zap.String("dataset", cfg.Dataset),
		zap.Strings("sources", cfg.Sources))
	return env, nil
}

// resolveConfig applies ISMISM_* variables from env files, loads the layered
// config for the working directory and applies --dataset and --color on top.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("getting working directory", err)
	}

	envFiles, err := config.LoadEnvFiles(wd)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}

	cfg, err := config.Load(wd)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	cfg.Sources = append(cfg.Sources, envFiles...)

	if dataset := persistentFlag(cmd, "dataset"); dataset != "" {
		cfg.Dataset = dataset
	}
	if color := persistentFlag(cmd, "color"); color != "" {
		switch color {
		case output.ColorAuto, output.ColorAlways, output.ColorNever:
			cfg.Color = color
		default:
			return nil, output.NewUserError("--color must be 'auto', 'always' or 'never'")
		}
	}
	return cfg, nil
}

// dataset returns ds when a test injected one, otherwise loads the
// configured dataset file.
func (e *cmdEnv) dataset(ds *catalog.Dataset) (*catalog.Dataset, error) {
	if ds != nil {
		return ds, nil
	}

	ds, err := catalog.Load(e.cfg.Dataset)
	if err != nil {
		e.printer.Error(err)
		return nil, err
	}
	e.logger.Debug("dataset loaded", zap.String("path", e.cfg.Dataset), zap.Int("records", ds.Len()))
	return ds, nil
}

// newLogger returns a development logger on stderr with --verbose and a
// no-op logger otherwise. Command output never goes through the logger.
func newLogger(cmd *cobra.Command) *zap.Logger {
	if persistentFlag(cmd, "verbose") != "true" {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(cmd.ErrOrStderr()),
		zapcore.DebugLevel,
	)
	return zap.New(core, zap.Development())
}

// newServeLogger returns a JSON logger on stderr, since stdout carries the
// MCP transport. --verbose lowers the level to debug.
func newServeLogger(cmd *cobra.Command) *zap.Logger {
	level := zapcore.InfoLevel
	if persistentFlag(cmd, "verbose") == "true" {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.Lock(zapcore.AddSync(cmd.ErrOrStderr())),
		level,
	)
	return zap.New(core)
}
