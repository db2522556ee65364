package main

import (
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fx_hedge/internal/app"

	"github.com/spf13/cobra"

	_ "net/http/pprof" // For pprof profiling
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		pprofAddr  string
	)

	cmd := &cobra.Command{
		Use:           "fxhedge",
		Short:         "Live P/L dashboard for a fixed USD/AED and USD/SAR hedge",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// 1. System Bootstrapping
			bootstrap := app.NewBootstrap()
			if err := bootstrap.Initialize(configPath); err != nil {
				slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
				return err
			}

			// 2. Pprof Server (localhost only)
			if pprofAddr != "" {
				go func() {
					slog.Info("🕵️ Pprof server started", slog.String("addr", pprofAddr))
					if err := http.ListenAndServe(pprofAddr, nil); err != nil {
						slog.Error("Pprof server failed", slog.Any("error", err))
					}
				}()
			}

			// 3. Graceful Shutdown Context
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := bootstrap.Run(ctx); err != nil {
				slog.Error("Dashboard stopped with error", slog.Any("error", err))
				return err
			}

			slog.Info("👋 Shut down gracefully")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "configs/config.yaml", "path to the YAML config file")
	cmd.Flags().StringVar(&pprofAddr, "pprof", "", "serve pprof on this address, e.g. localhost:6060")
	return cmd
}
