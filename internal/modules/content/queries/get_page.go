package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/vintnersrow/storefront/internal/modules/content/domain"
	"github.com/vintnersrow/storefront/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
)

type GetPageQuery struct {
	Slug string
}

func (q GetPageQuery) Validate() error {
	if q.Slug == "" {
		return fmt.Errorf("invalid Slug - '%s'", q.Slug)
	}

	return nil
}

func HandleGetPage(w http.ResponseWriter, r *http.Request) {
	query := GetPageQuery{Slug: chi.URLParam(r, "slug")}

	page, err := mediator.Send[GetPageQuery, domain.Page](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, page)
}

type GetPageQueryHandler struct {
	db *sql.DB
}

func NewGetPageQueryHandler(db *sql.DB) *GetPageQueryHandler {
	return &GetPageQueryHandler{db}
}

func (h *GetPageQueryHandler) Handle(ctx context.Context, request GetPageQuery) (domain.Page, error) {
	const query = `
		SELECT
			*
		FROM
			page
		WHERE
			slug = $1;`

	page, err := tql.QueryFirst[domain.Page](ctx, h.db, query, request.Slug)
	switch {
	case err != nil && errors.Is(err, sql.ErrNoRows):
		return domain.Page{}, core.NewCommandError(404, err, core.WithReason("page not found"))
	case err != nil:
		return domain.Page{}, core.NewCommandError(500, err)
	}

	return page, nil
}
