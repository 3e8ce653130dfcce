package commands

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/vintnersrow/storefront/internal/modules/core"
	"github.com/vintnersrow/storefront/internal/modules/sommelier/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type AppendMemoryCommand struct {
	SessionID uuid.UUID `json:"-"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
}

func (c AppendMemoryCommand) Validate() error {
	if c.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", c.SessionID.String())
	}

	if err := domain.ValidateRole(c.Role); err != nil {
		return err
	}

	if c.Content == "" {
		return fmt.Errorf("invalid Content - empty")
	}

	return nil
}

func HandleAppendMemory(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	command, err := core.RequestBody[AppendMemoryCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command.SessionID = sessionID

	if _, err := mediator.Send[AppendMemoryCommand, core.Unit](r.Context(), command); err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, nil)
}

type AppendMemoryCommandHandler struct {
	db *sql.DB
}

func NewAppendMemoryCommandHandler(db *sql.DB) *AppendMemoryCommandHandler {
	return &AppendMemoryCommandHandler{db}
}

// retainedEntries caps how much conversation is kept per session. The
// context window only ever reads the tail, so anything older is dead weight.
const retainedEntries = 200

func (h *AppendMemoryCommandHandler) Handle(
	ctx context.Context,
	request AppendMemoryCommand,
) (core.Unit, error) {
	const insertStmt = `
		INSERT INTO
			sommelier_memory (session_id, role, content)
		VALUES
			($1, $2, $3);`

	const trimStmt = `
		DELETE FROM
			sommelier_memory
		WHERE
			session_id = $1
			AND id NOT IN (
				SELECT id FROM sommelier_memory
				WHERE session_id = $1
				ORDER BY id DESC
				LIMIT $2
			);`

	err := core.Tx(ctx, h.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tql.Exec(ctx, tx, insertStmt, request.SessionID, request.Role, request.Content); err != nil {
			return err
		}

		_, err := tql.Exec(ctx, tx, trimStmt, request.SessionID, retainedEntries)
		return err
	})
	if err != nil {
		return core.Unit{}, core.NewCommandError(500, err, core.WithReason("failed to store memory entry"))
	}

	return core.Unit{}, nil
}
