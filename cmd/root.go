package cmd

import (
	"fmt"
	"os"

	"survey-gateway/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "survey-gateway",
	Short: "Survey storage gateway",
	Long: `Survey-gateway fronts the object storage holding field-survey photos.
It resolves the deployment's bucket across naming conventions, serves
hierarchical listings with signed download URLs, and uploads new photos
with a full diagnostic trail.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with the debug config gives readable timestamps
		// for a CLI invocation.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}
