package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Request event types, one per workflow step.
const (
	RequestEventCreated   = "CREATED"
	RequestEventApproved  = "APPROVED"
	RequestEventRejected  = "REJECTED"
	RequestEventCompleted = "COMPLETED"
)

// RequestEvent is an append-only audit entry for the request workflow.
type RequestEvent struct {
	EventID     uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	RequestID   uuid.UUID      `gorm:"column:request_id;type:uuid;not null;index" json:"request_id"`
	EventType   string         `gorm:"column:event_type;type:varchar(20);not null" json:"event_type"`
	ActorUserID uuid.UUID      `gorm:"column:actor_user_id;type:uuid;not null" json:"actor_user_id"`
	EventData   datatypes.JSON `gorm:"column:event_data;type:json" json:"event_data"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (RequestEvent) TableName() string {
	return "request_events"
}

func (e *RequestEvent) BeforeCreate(tx *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}
