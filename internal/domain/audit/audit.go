// Package audit defines the change history contract used by domain services.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"inventory/internal/core/id"
	"inventory/pkg/logger"
)

// Action is the kind of audited change.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionStatusChange Action = "status_change"
	ActionAdjust       Action = "adjust"
)

// Entity types written to the audit log.
const (
	EntityInvoice = "invoice"
	EntityStock   = "stock"
)

// Entry is one recorded change.
type Entry struct {
	ID         id.ID           `json:"id"`
	EntityType string          `json:"entityType"`
	EntityID   id.ID           `json:"entityId"`
	Action     Action          `json:"action"`
	UserID     string          `json:"userId"`
	UserEmail  string          `json:"userEmail"`
	Changes    json.RawMessage `json:"changes"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Recorder persists and reads change history.
type Recorder interface {
	LogChange(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) error
	GetEntityHistory(ctx context.Context, entityType string, entityID id.ID, limit int) ([]Entry, error)
}

// Nop discards every change.
type Nop struct{}

func (Nop) LogChange(context.Context, string, id.ID, Action, map[string]any) error { return nil }

func (Nop) GetEntityHistory(context.Context, string, id.ID, int) ([]Entry, error) {
	return []Entry{}, nil
}

// Record writes a change and logs instead of failing when the write fails.
// Business operations never fail because of the audit trail.
func Record(ctx context.Context, rec Recorder, entityType string, entityID id.ID, action Action, changes map[string]any) {
	if rec == nil {
		return
	}
	if err := rec.LogChange(ctx, entityType, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit write failed",
			"entity_type", entityType, "entity_id", entityID, "action", action, "error", err)
	}
}
