package domain

import "time"

type AuditAction string

const (
	AuditActionApproveTenant    AuditAction = "approve_tenant"
	AuditActionRejectTenant     AuditAction = "reject_tenant"
	AuditActionBlockTenant      AuditAction = "block_tenant"
	AuditActionSuspendTenant    AuditAction = "suspend_tenant"
	AuditActionBanTenant        AuditAction = "ban_tenant"
	AuditActionReactivateTenant AuditAction = "reactivate_tenant"
	AuditActionDeactivateTenant AuditAction = "deactivate_tenant"
	AuditActionDeleteTenant     AuditAction = "delete_tenant"
	AuditActionDeleteUser       AuditAction = "delete_user"
	AuditActionCreateUser       AuditAction = "create_user"
	AuditActionUpdateTenant     AuditAction = "update_tenant"
)

// AuditLogEntry is immutable once written. Target and actor names are
// snapshotted at write time so the row stays legible after either entity is
// deleted. There is intentionally no update or delete path for this type
// anywhere in the codebase.
type AuditLogEntry struct {
	ID         int64       `json:"id"`
	Action     AuditAction `json:"action"`
	TargetID   string      `json:"target_id"`
	TargetName string      `json:"target_name"`
	ActorID    string      `json:"actor_id"`
	ActorName  string      `json:"actor_name"`
	Details    string      `json:"details"`
	IPAddress  string      `json:"ip_address"`
	CreatedAt  time.Time   `json:"created_at"`
}

// AuditLogFilter narrows a ledger query. Zero values mean "no constraint";
// Search matches target name, actor name and details.
type AuditLogFilter struct {
	Action AuditAction
	Search string
	From   time.Time
	To     time.Time
}

// CascadeSummary reports what a completed cascade deletion removed.
type CascadeSummary struct {
	TenantID           string `json:"tenant_id"`
	TenantName         string `json:"tenant_name"`
	UsersRemoved       int64  `json:"users_removed"`
	SalesOrdersRemoved int64  `json:"sales_orders_removed"`
	AuditEntryID       int64  `json:"audit_entry_id"`
}
