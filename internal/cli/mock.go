package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/UlviDemirsoy/JavaReflection/internal/infra/logger"
	"github.com/UlviDemirsoy/JavaReflection/internal/infra/mockapi"
)

func mockCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "mock",
		Short: "Local stand-in for the content backend",
	}

	c.AddCommand(mockServeCmd())
	return c
}

func mockServeCmd() *cobra.Command {
	var addr string
	var latency time.Duration
	var seed int64

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory backend with the default model classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := []mockapi.Option{
				mockapi.WithLogger(logger.L()),
				mockapi.WithLatency(latency),
			}
			if seed != 0 {
				opts = append(opts, mockapi.WithGenerator(mockapi.NewGenerator(mockapi.WithSeed(seed))))
			}
			srv := mockapi.New(opts...)

			fmt.Fprintf(cmd.OutOrStdout(), "Mock backend on http://%s%s (ctrl+c to stop)\n", addr, mockapi.APIPrefix)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8081", "Listen address")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Artificial delay added to every response")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed for generated records (0 = time based)")
	return cmd
}
