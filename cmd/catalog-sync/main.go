package main

import (
	"database/sql"
	"fmt"
	"os"
	"path"

	"github.com/vintnersrow/storefront/internal/config"
	"github.com/vintnersrow/storefront/internal/modules/catalog"
	"github.com/vintnersrow/storefront/internal/platform"
	catalogsync "github.com/vintnersrow/storefront/internal/sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	_ "github.com/lib/pq"
)

var (
	dryRun bool
	limit  int
)

var rootCmd = &cobra.Command{
	Use:          "catalog-sync [root-path]",
	Short:        "Publish un-synced catalog wines to the commerce platform",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Map and log payloads without publishing")
	rootCmd.Flags().IntVar(&limit, "limit", 25, "Maximum number of wines to sync in this run")
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		if err := godotenv.Load(path.Join(args[0], "config.env")); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := cfg.Logger
	defer func() {
		_ = logger.Sync()
	}()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	client := platform.NewClient(
		cfg.Platform.BaseURL,
		cfg.Platform.AccessToken,
		cfg.Platform.RequestDelay,
	)

	runner := catalogsync.Runner{
		Source:       catalog.NewRepository(db),
		Publisher:    client,
		Logger:       logger,
		Vendor:       cfg.Platform.Vendor,
		Limit:        limit,
		DryRun:       dryRun,
		FailureDelay: 5 * cfg.Platform.RequestDelay,
	}

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d wine(s) failed to sync", report.Failed)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
