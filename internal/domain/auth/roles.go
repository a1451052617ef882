package auth

const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
	RoleCaregiver   = "caregiver"
)

const (
	PermCaregiversRead  = "core.caregivers.read"
	PermCaregiversWrite = "core.caregivers.write"
	PermClientsRead     = "core.clients.read"
	PermClientsWrite    = "core.clients.write"
	PermSchedulingRead  = "scheduling.read"
	PermSchedulingWrite = "scheduling.write"
	PermSchedulingEVV   = "scheduling.evv"
	PermMatchingRead    = "matching.read"
	PermBillingRead     = "billing.read"
	PermAuditRead       = "audit.read"
	PermSystemAdmin     = "admin.system"
)

var RolePermissions = map[string][]string{
	RoleCaregiver: {
		PermClientsRead,
		PermSchedulingRead,
		PermSchedulingEVV,
	},
	RoleCoordinator: {
		PermCaregiversRead,
		PermCaregiversWrite,
		PermClientsRead,
		PermClientsWrite,
		PermSchedulingRead,
		PermSchedulingWrite,
		PermSchedulingEVV,
		PermMatchingRead,
		PermBillingRead,
		PermAuditRead,
	},
	RoleAdmin: {
		PermSystemAdmin,
	},
}

// HasPermission reports whether a role grants a permission. The admin role
// is a superset of everything.
func HasPermission(role, perm string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == perm || p == PermSystemAdmin {
			return true
		}
	}
	return false
}
