package commands

import (
	"context"
	"net/http"
	"path"

	"github.com/vintnersrow/storefront/internal/modules/core"
	"github.com/vintnersrow/storefront/internal/platform"

	"github.com/eskrenkovic/mediator-go"
)

type CreateCartCommand struct{}

func HandleCreateCart(w http.ResponseWriter, r *http.Request) {
	cart, err := mediator.Send[CreateCartCommand, platform.Cart](r.Context(), CreateCartCommand{})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "carts", cart.ID)
	core.WriteCreated(w, r, location, cart)
}

type CreateCartCommandHandler struct {
	platform *platform.Client
}

func NewCreateCartCommandHandler(client *platform.Client) *CreateCartCommandHandler {
	return &CreateCartCommandHandler{client}
}

func (h *CreateCartCommandHandler) Handle(
	ctx context.Context,
	_ CreateCartCommand,
) (platform.Cart, error) {
	cart, err := h.platform.CreateCart(ctx)
	if err != nil {
		return platform.Cart{}, core.NewCommandError(502, err, core.WithReason("failed to create cart"))
	}

	return cart, nil
}
