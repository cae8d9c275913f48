package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizbank/internal/config"
	"quizbank/internal/database"
	"quizbank/internal/logging"
	"quizbank/internal/repository"
	"quizbank/internal/service"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands. Tests preset cfg and logger.
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	verbose    bool
	configFile string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "quizbank",
		Short:         "Build the daily \"who said it\" quiz bank from a message export",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&a.configFile, "config", "", "YAML config file (default $QUIZBANK_CONFIG or ./quizbank.yaml)")

	root.AddCommand(a.buildCmd())
	root.AddCommand(a.cleanCmd())
	root.AddCommand(a.publishCmd())
	root.AddCommand(a.exportCmd())
	root.AddCommand(a.banksCmd())
	root.AddCommand(a.todayCmd())
	root.AddCommand(versionCmd())

	return root
}

func (a *app) init() error {
	if a.cfg == nil {
		cfg, err := config.LoadFrom(a.configFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.verbose {
		a.cfg.Debug = true
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if a.logger == nil {
		logger, err := logging.New(a.cfg.Debug)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		a.logger = logger
	}
	return nil
}

// withPublisher opens the configured database, migrates it and runs fn
func (a *app) withPublisher(ctx context.Context, fn func(ps *service.PublishService) error) error {
	db, err := database.InitializeWithConfig(a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.RunMigrations(ctx, a.cfg.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return fn(service.NewPublishService(repository.NewQuizRepository(db), a.logger))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "quizbank %s\n", Version)
			return nil
		},
	}
}
