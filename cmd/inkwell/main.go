// Command inkwell inspects scenes and animation curves from the terminal:
// it lists scenes and their tunables, and traces springs, keyframe tracks
// and whole scenes headlessly as ASCII plots.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/inkwell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:")+" "+err.Error())
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root has set it up.
type app struct {
	cfg    inkwell.RuntimeConfig
	logger *zap.Logger
	debug  bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "inkwell",
		Short:         "inspect inkwell scenes and animation curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := inkwell.LoadRuntimeConfig()
			if err != nil {
				return err
			}
			if a.debug {
				cfg.Debug = true
			}
			logger, err := inkwell.NewLogger(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}
			a.cfg, a.logger = cfg, logger
			inkwell.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "debug logging and per-frame runtime stats")

	root.AddCommand(newScenesCmd(), newTunablesCmd(), newTraceCmd(a))
	return root
}
