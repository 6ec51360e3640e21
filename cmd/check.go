package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"survey-gateway/core/config"
	"survey-gateway/core/logger"
	"survey-gateway/core/storage"
	"survey-gateway/feature/gateway"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkTimeout time.Duration

// checkCmd probes the storage configuration without starting the server.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe which storage bucket the gateway would use",
	Long: `Runs the bucket resolution pipeline once and prints the outcome.
Useful for verifying a deployment's storage configuration before rollout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
		defer cancel()

		svc := gateway.NewService(store, cfg.Storage, logg)
		report := svc.Health(ctx)

		for _, cand := range report.Candidates {
			logg.Info("Candidate", zap.String("bucket", cand.Name), zap.String("source", string(cand.Source)))
		}
		if !report.OK {
			return fmt.Errorf("no usable bucket: %s", report.Diagnostics)
		}
		logg.Info("Storage reachable", zap.String("bucket", report.ResolvedBucket))
		return nil
	},
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall probe timeout")
	RootCmd.AddCommand(checkCmd)
}
