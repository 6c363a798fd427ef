package dto

import (
	"time"

	"github.com/google/uuid"
)

// SoftDeleteEventMessage is the payload of a published soft delete event.
type SoftDeleteEventMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

type SoftDeleteKeyRequest struct {
	EntityType string `validate:"required"`
	Key        string `validate:"required,uuid"`
}

type SoftDeletedEntriesRequest struct {
	EntityType string `validate:"required"`
	Limit      int    `validate:"gte=1,lte=1000"`
}

type SoftDeleteStatusResponse struct {
	EntityType string    `json:"entity_type"`
	Key        uuid.UUID `json:"key"`
	Result     int       `json:"result"`
}

type SoftDeletedEntryResponse struct {
	EntityType      string    `json:"entity_type"`
	Key             uuid.UUID `json:"key"`
	SoftDeleted     bool      `json:"soft_deleted"`
	SoftDeleteLevel uint8     `json:"soft_delete_level"`
}

type GetSoftDeletedEntriesResponse struct {
	EntityType string                      `json:"entity_type"`
	Entries    []*SoftDeletedEntryResponse `json:"entries"`
}
