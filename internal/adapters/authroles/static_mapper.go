package authroles

import (
	domainauth "github.com/vendosaas/vendo/internal/domain/auth"
)

// StaticRoleMapper maps provider groups to dashboard roles by simple string
// membership. Tenant membership wins over customer when a user carries both.
type StaticRoleMapper struct {
	TenantGroup   string
	CustomerGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	for _, g := range groups {
		if m.TenantGroup != "" && g == m.TenantGroup {
			return domainauth.RoleTenant
		}
	}
	for _, g := range groups {
		if m.CustomerGroup != "" && g == m.CustomerGroup {
			return domainauth.RoleCustomer
		}
	}
	return domainauth.RoleGuest
}
