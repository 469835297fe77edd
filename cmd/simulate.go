package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/queuesim/core/dispatch"
	"github.com/kilianp07/queuesim/infra/logger"
)

var (
	simDuration time.Duration
	simPolicy   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulation headless and print final metrics",
	RunE:  simulate,
}

func init() {
	simulateCmd.Flags().DurationVarP(&simDuration, "duration", "d", 30*time.Second, "how long to run the simulation")
	simulateCmd.Flags().StringVarP(&simPolicy, "policy", "p", dispatch.PolicyRoundRobin, "dispatch policy to use")
	rootCmd.AddCommand(simulateCmd)
}

func simulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Simulation.DefaultPolicy = simPolicy

	logg := logger.NewWithBackend(cfg.Logging.Backend, "simulate")
	engine, err := dispatch.NewEngine(cfg.Simulation, logg, nil, nil)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, simDuration)
	defer cancel()
	engine.Run(runCtx)

	out, err := json.MarshalIndent(engine.Metrics(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
