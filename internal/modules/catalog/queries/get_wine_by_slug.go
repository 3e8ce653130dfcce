package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/vintnersrow/storefront/internal/modules/catalog/domain"
	"github.com/vintnersrow/storefront/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
)

type GetWineBySlugQuery struct {
	Slug string
}

func (q GetWineBySlugQuery) Validate() error {
	if q.Slug == "" {
		return fmt.Errorf("invalid Slug - '%s'", q.Slug)
	}

	return nil
}

// WineDetails is the storefront product-page shape - the wine plus every
// purchasable variant, cheapest first.
type WineDetails struct {
	domain.Wine
	Variants []domain.PriceVariant `json:"variants"`
}

func HandleGetWineBySlug(w http.ResponseWriter, r *http.Request) {
	query := GetWineBySlugQuery{Slug: chi.URLParam(r, "slug")}

	response, err := mediator.Send[GetWineBySlugQuery, WineDetails](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetWineBySlugQueryHandler struct {
	db *sql.DB
}

func NewGetWineBySlugQueryHandler(db *sql.DB) *GetWineBySlugQueryHandler {
	return &GetWineBySlugQueryHandler{db}
}

func (h *GetWineBySlugQueryHandler) Handle(
	ctx context.Context,
	request GetWineBySlugQuery,
) (WineDetails, error) {
	const query = `
		SELECT
			*
		FROM
			wine
		WHERE
			slug = $1;`

	wine, err := tql.QueryFirst[domain.Wine](ctx, h.db, query, request.Slug)
	switch {
	case err != nil && errors.Is(err, sql.ErrNoRows):
		return WineDetails{}, core.NewCommandError(404, err, core.WithReason("wine not found"))
	case err != nil:
		return WineDetails{}, core.NewCommandError(500, err)
	}

	const variantsQuery = `
		SELECT
			*
		FROM
			wine_variant
		WHERE
			wine_id = $1
		ORDER BY
			price ASC;`

	variants, err := tql.Query[domain.PriceVariant](ctx, h.db, variantsQuery, wine.ID)
	if err != nil {
		return WineDetails{}, core.NewCommandError(500, err)
	}

	return WineDetails{Wine: wine, Variants: variants}, nil
}
