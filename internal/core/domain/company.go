package domain

import "time"

// Company is the tenant root. Every other entity is scoped to exactly one
// company, and every query and invariant is implicitly per-company.
type Company struct {
	CompanyID    string `json:"companyID"`    // Primary Key (UUID)
	Name         string `json:"name"`         // Legal/display name
	BaseCurrency string `json:"baseCurrency"` // ISO 4217 code, e.g. "USD"
	IsActive     bool   `json:"isActive"`
	AuditFields
}

// UserCompanyRole defines the possible roles a user can have within a company.
type UserCompanyRole string

const (
	RoleAdmin    UserCompanyRole = "ADMIN"
	RoleMember   UserCompanyRole = "MEMBER"
	RoleReadOnly UserCompanyRole = "READONLY"
)

// roleRank orders roles for authorization checks.
var roleRank = map[UserCompanyRole]int{
	RoleReadOnly: 1,
	RoleMember:   2,
	RoleAdmin:    3,
}

// Satisfies reports whether the role meets the required minimum role.
func (r UserCompanyRole) Satisfies(required UserCompanyRole) bool {
	return roleRank[r] >= roleRank[required]
}

// UserCompany represents the membership of a user in a company.
type UserCompany struct {
	UserID    string          `json:"userID"`
	CompanyID string          `json:"companyID"`
	Role      UserCompanyRole `json:"role"`
	JoinedAt  time.Time       `json:"joinedAt"`
}
