package model

import "time"

// AuditAction classifies the mutation that produced an audit entry.
type AuditAction string

const (
	AuditActionCreate     AuditAction = "CREATE"
	AuditActionUpdate     AuditAction = "UPDATE"
	AuditActionDelete     AuditAction = "DELETE"
	AuditActionAdjust     AuditAction = "ADJUST"
	AuditActionUserEdit   AuditAction = "USER_EDIT"
	AuditActionUserDelete AuditAction = "USER_DELETE"
)

// AuditEntity names the record type an audit entry refers to.
type AuditEntity string

const (
	AuditEntityFueling AuditEntity = "FUELING"
	AuditEntityRefill  AuditEntity = "REFILL"
	AuditEntityMachine AuditEntity = "MACHINE"
	AuditEntityUser    AuditEntity = "USER"
	AuditEntityTank    AuditEntity = "TANK"
)

// AuditLog is an append-only trail entry. Entries are never modified or
// deleted. One entry is written per tank adjustment, fueling edit/delete,
// correction resolution, and user edit/delete — plain creations by their own
// actor are not audited.
type AuditLog struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	UserID    string      `json:"userId"`
	Action    AuditAction `json:"action"`
	Entity    AuditEntity `json:"entity"`
	OldValue  *string     `json:"oldValue,omitempty"`
	NewValue  *string     `json:"newValue,omitempty"`
	Reason    string      `json:"reason"`
	Synced    bool        `json:"synced"`
}
