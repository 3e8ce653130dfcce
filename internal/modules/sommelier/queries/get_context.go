package queries

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	catalogdomain "github.com/vintnersrow/storefront/internal/modules/catalog/domain"
	"github.com/vintnersrow/storefront/internal/modules/core"
	"github.com/vintnersrow/storefront/internal/modules/sommelier/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const (
	memoryWindow   = 20
	maxSuggestions = 5
	maxSearchTerms = 4
)

type GetContextQuery struct {
	SessionID uuid.UUID
}

func (q GetContextQuery) Validate() error {
	if q.SessionID == uuid.Nil {
		return fmt.Errorf("invalid SessionID - '%s'", q.SessionID.String())
	}

	return nil
}

// AgentContext is the payload handed to the hosted agent runtime: the
// recent conversation plus catalog wines matching what the customer last
// asked about.
type AgentContext struct {
	SessionID   uuid.UUID            `json:"session_id"`
	Memory      []domain.MemoryEntry `json:"memory"`
	Suggestions []catalogdomain.Wine `json:"suggestions"`
}

func HandleGetContext(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	response, err := mediator.Send[GetContextQuery, AgentContext](
		r.Context(),
		GetContextQuery{SessionID: sessionID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetContextQueryHandler struct {
	db *sql.DB
}

func NewGetContextQueryHandler(db *sql.DB) *GetContextQueryHandler {
	return &GetContextQueryHandler{db}
}

func (h *GetContextQueryHandler) Handle(
	ctx context.Context,
	request GetContextQuery,
) (AgentContext, error) {
	const memoryQuery = `
		SELECT
			*
		FROM
			(SELECT * FROM sommelier_memory WHERE session_id = $1 ORDER BY id DESC LIMIT $2) recent
		ORDER BY
			id ASC;`

	memory, err := tql.Query[domain.MemoryEntry](ctx, h.db, memoryQuery, request.SessionID, memoryWindow)
	if err != nil {
		return AgentContext{}, core.NewCommandError(500, err, core.WithReason("failed to load memory"))
	}

	agentContext := AgentContext{
		SessionID:   request.SessionID,
		Memory:      memory,
		Suggestions: []catalogdomain.Wine{},
	}

	terms := SearchTerms(lastUserMessage(memory))
	if len(terms) == 0 {
		return agentContext, nil
	}

	const winesQuery = `
		SELECT
			*
		FROM
			wine
		WHERE
			EXISTS (
				SELECT 1 FROM unnest($1::text[]) term
				WHERE name ILIKE '%' || term || '%'
					OR varietal ILIKE '%' || term || '%'
					OR region ILIKE '%' || term || '%'
			)
		ORDER BY
			name ASC
		LIMIT $2;`

	wines, err := tql.Query[catalogdomain.Wine](ctx, h.db, winesQuery, pq.Array(terms), maxSuggestions)
	if err != nil {
		return AgentContext{}, core.NewCommandError(500, err, core.WithReason("failed to load suggestions"))
	}

	agentContext.Suggestions = wines
	return agentContext, nil
}

func lastUserMessage(memory []domain.MemoryEntry) string {
	for i := len(memory) - 1; i >= 0; i-- {
		if memory[i].Role == domain.RoleUser {
			return memory[i].Content
		}
	}

	return ""
}

// SearchTerms picks the catalog search terms out of a customer message -
// lowercased words of four letters or more, stop words dropped.
func SearchTerms(message string) []string {
	if message == "" {
		return nil
	}

	stopWords := map[string]struct{}{
		"with": {}, "that": {}, "this": {}, "what": {}, "have": {},
		"like": {}, "want": {}, "some": {}, "would": {}, "wine": {},
		"bottle": {}, "recommend": {}, "something": {},
	}

	words := core.Map(strings.Fields(strings.ToLower(message)), func(field string) string {
		return strings.Trim(field, ".,!?;:'\"()")
	})

	terms := core.Filter(words, func(term string) bool {
		if len(term) < 4 {
			return false
		}

		_, stop := stopWords[term]
		return !stop
	})

	if len(terms) > maxSearchTerms {
		terms = terms[:maxSearchTerms]
	}

	if len(terms) == 0 {
		return nil
	}

	return terms
}
