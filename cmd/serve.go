package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathblitz/internal/logging"
	"github.com/abhisek/mathblitz/internal/server"
	"github.com/abhisek/mathblitz/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the leaderboard service",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().String("storage", "", "Storage driver: memory, file, sqlite, redis, postgres")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	if driver, _ := cmd.Flags().GetString("storage"); driver != "" {
		cfg.Storage.Driver = driver
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, closer, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Console: os.Stderr,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	board, err := store.Open(ctx, store.Options{
		Driver:   cfg.Storage.Driver,
		Capacity: cfg.Server.MaxEntries,
		Path:     cfg.Storage.Path,
		DSN:      cfg.Storage.DSN,
		Redis: store.RedisOptions{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			Key:      cfg.Storage.Redis.Key,
		},
	})
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}
	defer board.Close()

	hash := []byte(cfg.Server.ResetPasswordHash)
	if len(hash) == 0 {
		if hash, err = server.HashResetPassword(cfg.Server.ResetPassword); err != nil {
			return fmt.Errorf("hash reset password: %w", err)
		}
	}
	if !cfg.ResetEnabled() {
		logger.Warn().Msg("no reset password configured; reset is disabled")
	}

	srv := server.New(board, server.Options{
		MaxEntries:        cfg.Server.MaxEntries,
		MaxScore:          cfg.Server.MaxScore,
		ResetPasswordHash: hash,
		CORSOrigins:       cfg.Server.CORSOrigins,
		RequestTimeout:    cfg.RequestTimeout(),
		Logger:            logger,
	})

	logger.Info().
		Str("addr", cfg.Server.Addr).
		Str("storage", cfg.Storage.Driver).
		Int("max_entries", cfg.Server.MaxEntries).
		Msg("leaderboard service starting")

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
