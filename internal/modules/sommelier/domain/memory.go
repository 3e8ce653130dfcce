package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// MemoryEntry is one turn of a sommelier conversation, persisted so the
// hosted agent runtime can be re-primed between requests.
type MemoryEntry struct {
	ID        int64     `db:"id" json:"id"`
	SessionID uuid.UUID `db:"session_id" json:"session_id"`
	Role      string    `db:"role" json:"role"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func ValidateRole(role string) error {
	if role != RoleUser && role != RoleAssistant {
		return fmt.Errorf("invalid role - '%s'", role)
	}

	return nil
}
