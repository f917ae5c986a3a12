package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"divlab/adapters/consolereport"
	"divlab/adapters/jitterstats"
	"divlab/adapters/labapi"
	"divlab/app"
	"divlab/domain/experiment"
	"divlab/internal"
	"divlab/internal/config"
	"divlab/internal/fluidstub"
)

func main() {
	// Optional .env for local development; environment wins when both set.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "divlab",
		Short: "Division-physics experiment harness",
		Long: `divlab submits division experiments to the division-physics collaborator,
waits for each to settle, and statistically checks whether nonzero-remainder
experiments exhibit higher peak jitter than clean divisions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBattery(cmd.Context())
		},
	}

	rootCmd.AddCommand(newStubCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runBattery executes the fixed fixture battery against the configured
// collaborator. A completed run always returns nil: the verdict is a
// reported finding, not an exit status.
func runBattery(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := internal.DefaultLogger
	collaborator := labapi.NewClient(cfg.Collaborator.BaseURL, cfg.Collaborator.RequestTimeout, logger)
	waiter := app.NewSettlementWaiter(collaborator, cfg.Settlement.PollInterval, cfg.Settlement.MaxWait, logger)
	collector := app.NewResultCollector(collaborator)
	reporter := consolereport.NewReporter(os.Stdout)
	runner := app.NewCaseRunner(collaborator, waiter, collector, reporter, cfg.Battery.Salinity, logger)
	battery := app.NewBatteryService(runner, jitterstats.NewAggregator(), reporter, cfg.Battery.CasePause, logger)

	battery.Run(ctx, experiment.DefaultBattery())
	return nil
}

func newStubCmd() *cobra.Command {
	var addr string
	var settleDelay time.Duration
	var neverSettle bool

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Serve a local collaborator double",
		Long: `Serve a deterministic double of the division-physics collaborator on the
same HTTP surface, for developing and exercising the harness without the
real service.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			stub := fluidstub.New(fluidstub.Options{
				SettleDelay: settleDelay,
				NeverSettle: neverSettle,
			})

			server := &http.Server{
				Addr:    addr,
				Handler: stub.Handler(),
			}

			internal.DefaultLogger.Info("collaborator stub listening on %s", addr)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "Listen address")
	cmd.Flags().DurationVar(&settleDelay, "settle-delay", fluidstub.DefaultSettleDelay, "How long an experiment stays active before settling")
	cmd.Flags().BoolVar(&neverSettle, "never-settle", false, "Keep experiments active forever (timeout testing)")

	return cmd
}
