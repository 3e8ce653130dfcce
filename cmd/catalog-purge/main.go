package main

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/vintnersrow/storefront/internal/config"
	"github.com/vintnersrow/storefront/internal/platform"
	catalogsync "github.com/vintnersrow/storefront/internal/sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var confirm bool

var rootCmd = &cobra.Command{
	Use:          "catalog-purge [root-path]",
	Short:        "Delete every product from the commerce platform",
	Long:         "Deletes all products from the commerce platform in fixed-size pages. There is no undo.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().BoolVar(&confirm, "confirm", false, "Acknowledge that every platform product will be deleted")
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

	client := platform.NewClient(
		cfg.Platform.BaseURL,
		cfg.Platform.AccessToken,
		cfg.Platform.RequestDelay,
	)

	purger := catalogsync.Purger{
		Store:     client,
		Logger:    logger,
		PageSize:  50,
		Confirmed: confirm,
	}

	report, err := purger.Run(cmd.Context())
	if errors.Is(err, catalogsync.ErrNotConfirmed) {
		return fmt.Errorf("refusing to delete products without --confirm")
	}
	if err != nil {
		return err
	}

	if report.Failed > 0 {
		return fmt.Errorf("%d product(s) failed to delete", report.Failed)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
