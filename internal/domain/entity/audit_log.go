package entity

import (
	"encoding/json"
	"time"
)

// Actions auditées.
const (
	AuditActionLogin    = "LOGIN"
	AuditActionCreate   = "CREATE"
	AuditActionUpdate   = "UPDATE"
	AuditActionDelete   = "DELETE"
	AuditActionMovement = "MOVEMENT"
	AuditActionAdjust   = "ADJUST"
	AuditActionTransfer = "TRANSFER"
)

// Types d'entités auditées.
const (
	AuditEntityUser      = "USER"
	AuditEntitySite      = "SITE"
	AuditEntityProduct   = "PRODUCT"
	AuditEntityActif     = "ACTIF"
	AuditEntityPassif    = "PASSIF"
	AuditEntityMovement  = "MOVEMENT"
	AuditEntityDepotItem = "DEPOT_ITEM"
)

// AuditLog enregistrement en append-only d'une action qui change l'état.
// UserID est nil pour les actions refusées avant authentification.
type AuditLog struct {
	ID         string
	Action     string
	EntityType string
	EntityID   string
	UserID     *string
	PrevState  json.RawMessage
	NewState   json.RawMessage
	IP         string
	UserAgent  string
	CreatedAt  time.Time
}
