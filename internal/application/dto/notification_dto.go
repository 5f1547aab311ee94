package dto

import "time"

// NotificationResponse sortie d'une notification persistée.
type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Titre     string    `json:"titre"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// PushMessage trame poussée sur le canal temps réel.
type PushMessage struct {
	Type      string    `json:"type"` // "notification" | "admin"
	Titre     string    `json:"titre"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditLogResponse sortie d'une entrée du journal d'audit.
type AuditLogResponse struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	UserID     *string   `json:"user_id"`
	PrevState  any       `json:"prev_state,omitempty"`
	NewState   any       `json:"new_state,omitempty"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
}
