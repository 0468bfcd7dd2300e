// Command playlist runs playlist scripts against a persistent version store.
//
//	playlist run script.txt
//	playlist --metrics run script.cbor
//	playlist encode script.txt > script.cbor
//	playlist decode script.cbor
//	playlist inspect script.txt
//
// With no file argument, or "-", the script is read from stdin.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/spf13/cobra"
)

const serviceName = "playlist"

// app carries the state shared by the subcommands once the root command has
// loaded the configuration.
type app struct {
	configPath string
	flags      Config

	cfg Config
	log logger.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := &app{}
	err := newRootCmd(a).ExecuteContext(ctx)
	stop()
	if a.log != nil {
		logger.OnExit()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:          "playlist",
		Short:        "Build and query persistent playlists",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
	}

	defaults := DefaultConfig()
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "yaml configuration file")
	flags.StringVar(&a.flags.LogLevel, "log-level", defaults.LogLevel, "logger level, NOOP disables logging")
	flags.Uint8Var(&a.flags.SegmentHeight, "segment-height", defaults.SegmentHeight, "log2 of the arena segment size")
	flags.BoolVar(&a.flags.Metrics, "metrics", false, "write prometheus metrics to stderr after the run")
	flags.StringVar(&a.flags.Format, "format", "", "script format, text or cbor (default by file extension)")

	root.AddCommand(
		newRunCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newInspectCmd(a),
	)
	return root
}

// configure loads the config file and applies any flags set explicitly on
// the command line.
func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.flags.LogLevel
	}
	if flags.Changed("segment-height") {
		cfg.SegmentHeight = a.flags.SegmentHeight
	}
	if flags.Changed("metrics") {
		cfg.Metrics = a.flags.Metrics
	}
	if flags.Changed("format") {
		cfg.Format = a.flags.Format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logger.New(cfg.LogLevel)
	a.log = logger.Sugar.WithServiceName(serviceName)
	return nil
}
