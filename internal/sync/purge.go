package sync

import (
	"context"
	"errors"

	"github.com/vintnersrow/storefront/internal/platform"

	"go.uber.org/zap"
)

// ErrNotConfirmed is returned when a purge is attempted without the
// explicit confirmation flag. There is no undo.
var ErrNotConfirmed = errors.New("purge requires explicit confirmation")

// ProductStore is the slice of the platform client the purge loop needs.
type ProductStore interface {
	CountProducts(ctx context.Context) (int, error)
	ListProducts(ctx context.Context, limit, page int) ([]platform.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type PurgeReport struct {
	Deleted int
	Failed  int
}

// Purger deletes every product on the commerce platform in fixed-size
// pages. Request pacing comes from the client's limiter.
type Purger struct {
	Store  ProductStore
	Logger *zap.Logger

	PageSize  int
	Confirmed bool
}

func (p *Purger) Run(ctx context.Context) (PurgeReport, error) {
	if !p.Confirmed {
		return PurgeReport{}, ErrNotConfirmed
	}

	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	total, err := p.Store.CountProducts(ctx)
	if err != nil {
		return PurgeReport{}, err
	}

	if total == 0 {
		p.Logger.Info("no products to delete")
		return PurgeReport{}, nil
	}

	p.Logger.Info("starting purge", zap.Int("products", total))

	var report PurgeReport
	for {
		// Deleting shifts the remaining products forward, so the loop
		// always drains page 1.
		products, err := p.Store.ListProducts(ctx, pageSize, 1)
		if err != nil {
			return report, err
		}

		if len(products) == 0 {
			break
		}

		deletedThisPage := 0
		for _, product := range products {
			if err := p.Store.DeleteProduct(ctx, product.ID); err != nil {
				if ctx.Err() != nil {
					return report, ctx.Err()
				}

				report.Failed++
				p.Logger.Error("failed to delete product",
					zap.String("product_id", product.ID),
					zap.Error(err),
				)
				continue
			}

			report.Deleted++
			deletedThisPage++
		}

		// Every delete in the page failed - give up rather than spin on
		// the same page forever.
		if deletedThisPage == 0 {
			break
		}
	}

	p.Logger.Info("purge finished",
		zap.Int("deleted", report.Deleted),
		zap.Int("failed", report.Failed),
	)

	return report, nil
}
