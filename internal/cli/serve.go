// internal/cli/serve.go
//
// HTTP API server command.
//
// Responsibilities:
//   - Wire the candidate source, session store, and HTTP server from
//     configuration.
//   - Sweep idle sessions in the background.
//   - Shut down cleanly on SIGINT/SIGTERM.

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/palabreo/palabreo/internal/config"
	"github.com/palabreo/palabreo/internal/httpserver"
	"github.com/palabreo/palabreo/internal/store"
)

const sweepEvery = time.Minute

// ServeCmd returns the API server command.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", "", "listen address (overrides PALABREO_SERVER_ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyLogLevel(cmd, cfg.Log.Level); err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := buildSource(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeSrc(); err != nil {
			log.Warn().Err(err).Msg("closing word cache")
		}
	}()

	mem := store.NewMemory()
	go sweepSessions(ctx, mem, cfg.Server.SessionTTL)

	log.Info().
		Str("addr", cfg.Server.Addr).
		Str("language", cfg.Language).
		Bool("cache", cfg.Cache.Path != "").
		Msg("starting server")
	return httpserver.New(cfg, src, mem).Start(ctx)
}

// sweepSessions drops sessions idle longer than maxIdle until ctx ends.
func sweepSessions(ctx context.Context, mem *store.Memory, maxIdle time.Duration) {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := mem.Sweep(maxIdle); n > 0 {
				log.Debug().Int("expired", n).Msg("swept idle sessions")
			}
		}
	}
}
