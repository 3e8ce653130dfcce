package catalog

import (
	"context"
	"database/sql"

	"github.com/vintnersrow/storefront/internal/modules/catalog/domain"

	"github.com/eskrenkovic/tql"
)

// Repository covers the catalog reads and the single write the batch sync
// needs. The storefront queries go through the mediator instead.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

// UnsyncedWines returns wines that have never been published to the
// commerce platform, oldest rows first. A wine leaves this result set the
// moment SetPlatformProductID persists an identifier for it.
func (r *Repository) UnsyncedWines(ctx context.Context, limit int) ([]domain.Wine, error) {
	const query = `
		SELECT
			*
		FROM
			wine
		WHERE
			platform_product_id IS NULL
		ORDER BY
			id ASC
		LIMIT $1;`
	return tql.Query[domain.Wine](ctx, r.db, query, limit)
}

// WineVariants returns the price variants of a wine, cheapest first.
func (r *Repository) WineVariants(ctx context.Context, wineID int64) ([]domain.PriceVariant, error) {
	const query = `
		SELECT
			*
		FROM
			wine_variant
		WHERE
			wine_id = $1
		ORDER BY
			price ASC;`
	return tql.Query[domain.PriceVariant](ctx, r.db, query, wineID)
}

func (r *Repository) SetPlatformProductID(ctx context.Context, wineID int64, platformID string) error {
	const stmt = `
		UPDATE
			wine
		SET
			platform_product_id = $1
		WHERE
			id = $2;`
	_, err := tql.Exec(ctx, r.db, stmt, platformID, wineID)
	return err
}
