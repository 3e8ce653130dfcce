package queries

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/vintnersrow/storefront/internal/modules/content/domain"
	"github.com/vintnersrow/storefront/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
)

type GetMerchantConfigQuery struct{}

func HandleGetMerchantConfig(w http.ResponseWriter, r *http.Request) {
	config, err := mediator.Send[GetMerchantConfigQuery, map[string]string](
		r.Context(),
		GetMerchantConfigQuery{},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, config)
}

type GetMerchantConfigQueryHandler struct {
	db *sql.DB
}

func NewGetMerchantConfigQueryHandler(db *sql.DB) *GetMerchantConfigQueryHandler {
	return &GetMerchantConfigQueryHandler{db}
}

// Handle collapses the merchant_config key/value rows into a single object
// the storefront reads at boot (store name, currency, support email, ...).
func (h *GetMerchantConfigQueryHandler) Handle(
	ctx context.Context,
	_ GetMerchantConfigQuery,
) (map[string]string, error) {
	const query = `
		SELECT
			key, value
		FROM
			merchant_config
		ORDER BY
			key ASC;`

	entries, err := tql.Query[domain.ConfigEntry](ctx, h.db, query)
	if err != nil {
		return nil, core.NewCommandError(500, err, core.WithReason("failed to load merchant config"))
	}

	config := make(map[string]string, len(entries))
	for _, entry := range entries {
		config[entry.Key] = entry.Value
	}

	return config, nil
}
