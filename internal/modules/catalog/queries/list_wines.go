package queries

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/vintnersrow/storefront/internal/modules/catalog/domain"
	"github.com/vintnersrow/storefront/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

type ListWinesQuery struct {
	Region   string
	Country  string
	WineType string
	Varietal string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Limit    int
	Offset   int
}

func (q ListWinesQuery) Validate() error {
	if q.Limit < 0 || q.Limit > maxPageSize {
		return fmt.Errorf("invalid limit - '%d'", q.Limit)
	}

	if q.Offset < 0 {
		return fmt.Errorf("invalid offset - '%d'", q.Offset)
	}

	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		return fmt.Errorf("min_price greater than max_price")
	}

	return nil
}

func HandleListWines(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := ListWinesQuery{
		Region:   params.Get("region"),
		Country:  params.Get("country"),
		WineType: params.Get("type"),
		Varietal: params.Get("varietal"),
		Search:   params.Get("q"),
	}

	if limitParam := params.Get("limit"); limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'limit'"))
			return
		}
		query.Limit = limit
	}

	if offsetParam := params.Get("offset"); offsetParam != "" {
		offset, err := strconv.Atoi(offsetParam)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'offset'"))
			return
		}
		query.Offset = offset
	}

	if minParam := params.Get("min_price"); minParam != "" {
		min, err := decimal.NewFromString(minParam)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'min_price'"))
			return
		}
		query.MinPrice = &min
	}

	if maxParam := params.Get("max_price"); maxParam != "" {
		max, err := decimal.NewFromString(maxParam)
		if err != nil {
			core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'max_price'"))
			return
		}
		query.MaxPrice = &max
	}

	response, err := mediator.Send[ListWinesQuery, []domain.Wine](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type ListWinesQueryHandler struct {
	db *sql.DB
}

func NewListWinesQueryHandler(db *sql.DB) *ListWinesQueryHandler {
	return &ListWinesQueryHandler{db}
}

func (h *ListWinesQueryHandler) Handle(
	ctx context.Context,
	request ListWinesQuery,
) ([]domain.Wine, error) {
	var (
		conditions []string
		params     []any
	)

	addCondition := func(condition string, param any) {
		params = append(params, param)
		conditions = append(conditions, fmt.Sprintf(condition, len(params)))
	}

	if request.Region != "" {
		addCondition("region = $%d", request.Region)
	}

	if request.Country != "" {
		addCondition("country = $%d", request.Country)
	}

	if request.WineType != "" {
		addCondition("wine_type = $%d", request.WineType)
	}

	if request.Varietal != "" {
		addCondition("varietal = $%d", request.Varietal)
	}

	if request.Search != "" {
		addCondition("(name ILIKE '%%' || $%d || '%%' OR producer ILIKE '%%' || $%[1]d || '%%')", request.Search)
	}

	if request.MinPrice != nil {
		addCondition("retail_price >= $%d", *request.MinPrice)
	}

	if request.MaxPrice != nil {
		addCondition("retail_price <= $%d", *request.MaxPrice)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	limit := request.Limit
	if limit == 0 {
		limit = defaultPageSize
	}

	params = append(params, limit)
	limitClause := fmt.Sprintf("LIMIT $%d", len(params))

	params = append(params, request.Offset)
	offsetClause := fmt.Sprintf("OFFSET $%d", len(params))

	query := fmt.Sprintf(
		"SELECT * FROM wine %s ORDER BY name ASC %s %s;",
		where,
		limitClause,
		offsetClause,
	)

	wines, err := tql.Query[domain.Wine](ctx, h.db, query, params...)
	if err != nil {
		return nil, core.NewCommandError(500, err, core.WithReason("failed to query wines"))
	}

	return wines, nil
}
