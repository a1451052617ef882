package auth

import "testing"

func TestRolePermissionsNonEmpty(t *testing.T) {
	for role, perms := range RolePermissions {
		if len(perms) == 0 {
			t.Fatalf("role %s has no permissions", role)
		}
	}
}

func TestHasPermission(t *testing.T) {
	if !HasPermission(RoleCoordinator, PermSchedulingWrite) {
		t.Fatal("coordinator must be able to write schedules")
	}
	if HasPermission(RoleCaregiver, PermSchedulingWrite) {
		t.Fatal("caregiver must not write schedules")
	}
	if !HasPermission(RoleCaregiver, PermSchedulingEVV) {
		t.Fatal("caregiver must clock their own visits")
	}
	if !HasPermission(RoleAdmin, PermBillingRead) {
		t.Fatal("admin grants everything")
	}
	if HasPermission("unknown", PermClientsRead) {
		t.Fatal("unknown role grants nothing")
	}
}
