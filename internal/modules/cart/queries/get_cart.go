package queries

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/vintnersrow/storefront/internal/modules/core"
	"github.com/vintnersrow/storefront/internal/platform"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
)

type GetCartQuery struct {
	CartID string
}

func (q GetCartQuery) Validate() error {
	if q.CartID == "" {
		return fmt.Errorf("invalid CartID - '%s'", q.CartID)
	}

	return nil
}

func HandleGetCart(w http.ResponseWriter, r *http.Request) {
	query := GetCartQuery{CartID: chi.URLParam(r, "id")}

	cart, err := mediator.Send[GetCartQuery, platform.Cart](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, cart)
}

type GetCartQueryHandler struct {
	platform *platform.Client
}

func NewGetCartQueryHandler(client *platform.Client) *GetCartQueryHandler {
	return &GetCartQueryHandler{client}
}

func (h *GetCartQueryHandler) Handle(ctx context.Context, request GetCartQuery) (platform.Cart, error) {
	cart, err := h.platform.GetCart(ctx, request.CartID)
	switch {
	case err != nil && errors.Is(err, platform.ErrNotFound):
		return platform.Cart{}, core.NewCommandError(404, err, core.WithReason("cart not found"))
	case err != nil:
		return platform.Cart{}, core.NewCommandError(502, err, core.WithReason("failed to fetch cart"))
	}

	return cart, nil
}
