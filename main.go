package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ledger-zero/backend/internal/config"
	v1 "github.com/ledger-zero/backend/internal/controllers/v1"
	"github.com/ledger-zero/backend/internal/ledger"
	"github.com/ledger-zero/backend/internal/router"
	"github.com/ledger-zero/backend/internal/rpc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// This is set at build time, see Makefile.
var version = "0.0.0"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var cfg *config.Config

	rootCmd := &cobra.Command{
		Use:     "ledger",
		Short:   "Personal finance ledger backend",
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}

			if err := loaded.Validate(); err != nil {
				return err
			}

			setup(loaded)
			cfg = loaded
			return nil
		},
	}

	// Subcommands only run after PersistentPreRunE, so cfg is set when they use it
	current := func() *config.Config { return cfg }

	rootCmd.AddCommand(newServeCommand(current))
	rootCmd.AddCommand(newStorageServerCommand(current))
	rootCmd.AddCommand(newMigrateCommand(current))
	return rootCmd
}

// setup configures gin and the global logger.
func setup(cfg *config.Config) {
	// gin uses debug as the default mode, we use release for
	// security reasons
	gin.SetMode(cfg.GinMode)

	output := io.Writer(os.Stdout)
	if cfg.HumanLogs() {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

func newServeCommand(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg())
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	url, err := cfg.URL()
	if err != nil {
		return err
	}

	s, err := openStorage(cfg)
	if err != nil {
		return err
	}

	co := v1.Controller{Ledger: ledger.New(s)}
	defer func() {
		if err := co.Ledger.Close(); err != nil {
			log.Error().Err(err).Msg("closing storage backend")
		}
	}()

	r, teardown, err := router.Config(url)
	if err != nil {
		return err
	}
	defer teardown()

	router.AttachRoutes(co, r.Group("/"))

	log.Info().Str("address", cfg.ListenAddress).Str("backend", cfg.StorageBackend).Msg("backend startup complete")
	return listen(ctx, cfg.ListenAddress, r)
}

func newStorageServerCommand(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "storage-server",
		Short: "Expose the storage backend to remote ledger backends",
		Long: "Expose the configured storage backend on the /rpc HTTP endpoint and, " +
			"if AMQP_URL is set, on the AMQP queue AMQP_QUEUE.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serveStorage(ctx, cfg())
		},
	}
}

func serveStorage(ctx context.Context, cfg *config.Config) error {
	if cfg.StorageBackend == config.BackendRemote {
		return errors.New("a storage server cannot use the remote backend")
	}

	url, err := cfg.URL()
	if err != nil {
		return err
	}

	s, err := openStorage(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			log.Error().Err(err).Msg("closing storage backend")
		}
	}()

	dispatcher := rpc.NewDispatcher(s)

	r, teardown, err := router.Config(url)
	if err != nil {
		return err
	}
	defer teardown()

	router.AttachStorageRoutes(dispatcher, r.Group("/"))

	var amqpServer *rpc.AMQPServer
	if cfg.AMQPURL != "" {
		amqpServer, err = rpc.NewAMQPServer(cfg.AMQPURL, cfg.AMQPQueue, dispatcher)
		if err != nil {
			return err
		}
		defer amqpServer.Close()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return listen(ctx, cfg.ListenAddress, r)
	})

	if amqpServer != nil {
		g.Go(func() error {
			return amqpServer.Serve(ctx)
		})
		log.Info().Str("queue", cfg.AMQPQueue).Msg("serving storage over AMQP")
	}

	log.Info().Str("address", cfg.ListenAddress).Str("backend", cfg.StorageBackend).Msg("storage server startup complete")
	return g.Wait()
}

func newMigrateCommand(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database schema to the latest version and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			if c.StorageBackend != config.BackendSQLite && c.StorageBackend != config.BackendPostgres {
				return fmt.Errorf("the %s backend has no schema to migrate", c.StorageBackend)
			}

			// Opening a SQL backend migrates it
			s, err := openStorage(c)
			if err != nil {
				return err
			}

			return s.Close()
		},
	}
}

// listen serves handler on address until ctx is cancelled.
func listen(ctx context.Context, address string, handler http.Handler) error {
	server := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}

	return nil
}
