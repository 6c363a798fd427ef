package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	SoftDeleteSet          = "SOFT_DELETE_SET"
	SoftDeleteReset        = "SOFT_DELETE_RESET"
	CascadeSoftDeleteSet   = "CASCADE_SOFT_DELETE_SET"
	CascadeSoftDeleteReset = "CASCADE_SOFT_DELETE_RESET"
)

// NewSoftDeleteEvent reports a committed change of delete state. affected is
// the number of entities whose state changed.
func NewSoftDeleteEvent(eventType, entityType string, key uuid.UUID, affected int) BaseEvent {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"entity_type": entityType,
			"entity_id":   key.String(),
			"affected":    affected,
		},
		OccurredAt: time.Now().UTC(),
	}
}
