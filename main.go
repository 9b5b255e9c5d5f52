package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	api "explorehub-backend/cmd/api"
	authUsecase "explorehub-backend/internal/auth/usecase"
	tripUsecase "explorehub-backend/internal/trip/usecase"
	"explorehub-backend/pkg/config"
	"explorehub-backend/pkg/logger"
	"explorehub-backend/pkg/metrics"
	"explorehub-backend/pkg/password"
	"explorehub-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd creates the root command for the ExploreHub API.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "explorehub",
		Short:         "ExploreHub backend API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	return cmd
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Connect to the configured store, ensure its indexes and serve the
HTTP API until SIGINT or SIGTERM.`,
		RunE: runServe,
	}
}

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create indexes and tables, then exit",
		RunE:  runMigrate,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	if err := st.ensureIndexes(ctx, cfg.DBTimeout); err != nil {
		return err
	}

	tokens, err := token.NewService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	m := metrics.New()
	authUc := authUsecase.NewAuthUsecase(st.users, password.NewBcryptHasher(cfg.BcryptCost), tokens,
		authUsecase.WithLogger(log.With("component", "auth")),
		authUsecase.WithMetrics(m),
		authUsecase.WithStoreTimeout(cfg.DBTimeout),
	)
	tripUc := tripUsecase.NewTripUsecase(st.favorites, log.With("component", "trip"), cfg.DBTimeout)

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewHandler(authUc, tripUc, m, log)

	log.Info("configuration loaded", "driver", cfg.DBDriver, "token_ttl", cfg.JWTAccessExpiry)
	return handler.Start(ctx, ":"+cfg.Port)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return oops.Code("CONFIG_INVALID").Wrap(err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cmd.Println("Connecting to store...")
	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	cmd.Println("Ensuring indexes...")
	if err := st.ensureIndexes(ctx, cfg.DBTimeout); err != nil {
		return err
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
