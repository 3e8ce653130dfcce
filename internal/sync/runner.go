package sync

import (
	"context"
	"time"

	"github.com/vintnersrow/storefront/internal/modules/catalog/domain"
	"github.com/vintnersrow/storefront/internal/platform"

	"go.uber.org/zap"
)

// CatalogSource is the slice of the catalog repository the sync loop needs.
type CatalogSource interface {
	UnsyncedWines(ctx context.Context, limit int) ([]domain.Wine, error)
	WineVariants(ctx context.Context, wineID int64) ([]domain.PriceVariant, error)
	SetPlatformProductID(ctx context.Context, wineID int64, platformID string) error
}

// ProductPublisher is the slice of the platform client the sync loop needs.
// The client throttles its own calls - the runner never paces requests
// itself, it only backs off after a failure.
type ProductPublisher interface {
	CreateProduct(ctx context.Context, product platform.Product) (platform.Product, error)
}

type Report struct {
	Synced  int
	Failed  int
	Skipped int
}

// Runner publishes un-synced catalog wines to the commerce platform, one at
// a time, in catalog-id order. A wine that fails is logged and counted but
// never retried within the run; the loop pauses FailureDelay and moves on.
type Runner struct {
	Source    CatalogSource
	Publisher ProductPublisher
	Logger    *zap.Logger

	Vendor       string
	Limit        int
	DryRun       bool
	FailureDelay time.Duration
}

func (r *Runner) Run(ctx context.Context) (Report, error) {
	limit := r.Limit
	if limit <= 0 {
		limit = 25
	}

	wines, err := r.Source.UnsyncedWines(ctx, limit)
	if err != nil {
		return Report{}, err
	}

	if len(wines) == 0 {
		r.Logger.Info("nothing to sync")
		return Report{}, nil
	}

	r.Logger.Info("starting catalog sync",
		zap.Int("wines", len(wines)),
		zap.Bool("dry_run", r.DryRun),
	)

	var report Report
	for _, wine := range wines {
		if err := r.syncOne(ctx, wine, &report); err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}

			report.Failed++
			r.Logger.Error("failed to sync wine",
				zap.Int64("wine_id", wine.ID),
				zap.String("slug", wine.Slug),
				zap.Error(err),
			)

			if err := pause(ctx, r.FailureDelay); err != nil {
				return report, err
			}
		}
	}

	r.Logger.Info("catalog sync finished",
		zap.Int("synced", report.Synced),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped),
	)

	return report, nil
}

func (r *Runner) syncOne(ctx context.Context, wine domain.Wine, report *Report) error {
	variants, err := r.Source.WineVariants(ctx, wine.ID)
	if err != nil {
		return err
	}

	product := BuildProduct(wine, variants, r.Vendor)

	if r.DryRun {
		report.Skipped++
		r.Logger.Info("dry run - would publish",
			zap.Int64("wine_id", wine.ID),
			zap.String("title", product.Title),
			zap.Strings("tags", product.Tags),
			zap.Int("variants", len(product.Variants)),
		)
		return nil
	}

	created, err := r.Publisher.CreateProduct(ctx, product)
	if err != nil {
		return err
	}

	// The product now exists on the platform; if this write is lost the
	// next run will publish a duplicate.
	if err := r.Source.SetPlatformProductID(ctx, wine.ID, created.ID); err != nil {
		return err
	}

	report.Synced++
	r.Logger.Info("published wine",
		zap.Int64("wine_id", wine.ID),
		zap.String("platform_product_id", created.ID),
	)

	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
