package domain

import "time"

// TenantStatus is the published status vocabulary. The names are an external
// contract shared with clients and stored rows; never rename them.
type TenantStatus string

const (
	TenantStatusPendingApproval TenantStatus = "pending_approval"
	TenantStatusActive          TenantStatus = "active"
	TenantStatusRejected        TenantStatus = "rejected"
	TenantStatusBlocked         TenantStatus = "blocked"
	TenantStatusSuspended       TenantStatus = "suspended"
	TenantStatusBanned          TenantStatus = "banned"
	TenantStatusInactive        TenantStatus = "inactive"
)

var AllTenantStatuses = []TenantStatus{
	TenantStatusPendingApproval,
	TenantStatusActive,
	TenantStatusRejected,
	TenantStatusBlocked,
	TenantStatusSuspended,
	TenantStatusBanned,
	TenantStatusInactive,
}

func (s TenantStatus) IsValid() bool {
	for _, v := range AllTenantStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Tenant is one business account on the platform. Status fields only change
// through the lifecycle state machine; StatusVersion backs its optimistic
// concurrency check.
type Tenant struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	ContactName         string       `json:"contact_name"`
	ContactEmail        string       `json:"contact_email"`
	Status              TenantStatus `json:"status"`
	StatusReason        string       `json:"status_reason,omitempty"`
	StatusChangedAt     time.Time    `json:"status_changed_at"`
	StatusChangedBy     string       `json:"status_changed_by,omitempty"`
	SuspensionExpiresAt *time.Time   `json:"suspension_expires_at,omitempty"`
	StatusVersion       int64        `json:"status_version"`
	CreatedOn           string       `json:"created_on"`
}

// Actor is the authenticated identity performing an administrative operation,
// as recorded in audit and history entries.
type Actor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
}
