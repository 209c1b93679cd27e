package domain

type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleMember UserRole = "member"
)

type User struct {
	ID           string   `json:"id"`
	TenantID     string   `json:"tenant_id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	CreatedOn    string   `json:"created_on"`
}
