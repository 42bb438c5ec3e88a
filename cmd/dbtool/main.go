package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"gazetteer-service/internal/adapters/repositories"
	"gazetteer-service/internal/adapters/sources"
	"gazetteer-service/internal/bootstrap"
	"gazetteer-service/internal/config"
	"gazetteer-service/internal/platform/obs"
	"gazetteer-service/internal/ports"
	"gazetteer-service/internal/services"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()
	var driver string

	root := &cobra.Command{
		Use:          "dbtool",
		Short:        "Initialize, seed and check the settlements database",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			obs.SetupLogger(cfg.LogLevel, cfg.LogFormat)
		},
	}
	root.PersistentFlags().StringVar(&driver, "driver", "", "sqlite or postgres (default: postgres when DATABASE_URL is set)")
	root.PersistentFlags().StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the settlements schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initSchema(cmd.Context(), driver, cfg)
		},
	}

	var sourceKind, sourcePath string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load settlements from a source",
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed(cmd.Context(), driver, cfg, sourceKind, sourcePath)
		},
	}
	seedCmd.Flags().StringVar(&sourceKind, "kind", cfg.SourceKind, "source kind: embedded, json, yaml or js")
	seedCmd.Flags().StringVar(&sourcePath, "source", cfg.SourcePath, "source file (default: embedded catalog)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Load the stored catalog and validate it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return check(cmd.Context(), driver, cfg)
		},
	}

	root.AddCommand(initCmd, seedCmd, checkCmd)
	return root
}

func initSchema(ctx context.Context, driver string, cfg config.Config) error {
	conn, driver, err := bootstrap.OpenDatabase(driver, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	slog.Info("initializing database schema", "driver", driver)
	if driver == bootstrap.KindPostgres {
		err = repositories.InitPostgresSchema(ctx, conn)
	} else {
		err = repositories.InitSchema(conn)
	}
	if err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	slog.Info("schema ready")

	return nil
}

func seed(ctx context.Context, driver string, cfg config.Config, kind, path string) error {
	src, err := sources.Open(kind, path)
	if err != nil {
		return err
	}
	g, err := services.LoadGazetteer(ctx, src)
	if err != nil {
		return err
	}

	if err := initSchema(ctx, driver, cfg); err != nil {
		return err
	}

	conn, driver, err := bootstrap.OpenDatabase(driver, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	slog.Info("seeding database", "driver", driver, "settlements", g.Len())
	if driver == bootstrap.KindPostgres {
		err = repositories.SeedPostgres(ctx, conn, g.All())
	} else {
		err = repositories.Seed(conn, g.All())
	}
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	slog.Info("seeding complete")

	return nil
}

func check(ctx context.Context, driver string, cfg config.Config) error {
	conn, driver, err := bootstrap.OpenDatabase(driver, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	var repo ports.SettlementSource
	if driver == bootstrap.KindPostgres {
		repo = repositories.NewSQLSettlementRepository(conn)
	} else {
		repo = repositories.NewSqliteSettlementRepository(conn)
	}

	g, err := services.LoadGazetteer(ctx, repo)
	if err != nil {
		return err
	}
	fmt.Printf("ok: %d settlements, %d types\n", g.Len(), len(g.Types()))

	return nil
}
