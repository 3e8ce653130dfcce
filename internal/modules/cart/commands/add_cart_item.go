package commands

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

type AddCartItemCommand struct {
	CartID    string `json:"-"`
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

func (c AddCartItemCommand) Validate() error {
	if c.CartID == "" {
		return fmt.Errorf("invalid CartID - '%s'", c.CartID)
	}

	if c.ProductID == "" {
		return fmt.Errorf("invalid ProductID - '%s'", c.ProductID)
	}

	if c.Quantity < 1 {
		return fmt.Errorf("invalid Quantity - '%d'", c.Quantity)
	}

	return nil
}

func HandleAddCartItem(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[AddCartItemCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.CartID = chi.URLParam(r, "id")

	cart, err := mediator.Send[AddCartItemCommand, platform.Cart](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, cart)
}

type AddCartItemCommandHandler struct {
	platform *platform.Client
}

func NewAddCartItemCommandHandler(client *platform.Client) *AddCartItemCommandHandler {
	return &AddCartItemCommandHandler{client}
}

func (h *AddCartItemCommandHandler) Handle(
	ctx context.Context,
	request AddCartItemCommand,
) (platform.Cart, error) {
	item := platform.CartItemInput{
		ProductID: request.ProductID,
		VariantID: request.VariantID,
		Quantity:  request.Quantity,
	}

	cart, err := h.platform.AddCartItem(ctx, request.CartID, item)
	switch {
	case err != nil && errors.Is(err, platform.ErrNotFound):
		return platform.Cart{}, core.NewCommandError(404, err, core.WithReason("cart not found"))
	case err != nil:
		return platform.Cart{}, core.NewCommandError(502, err, core.WithReason("failed to add cart item"))
	}

	return cart, nil
}
