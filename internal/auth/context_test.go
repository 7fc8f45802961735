package auth

import (
	"context"
	"testing"
)

func TestPrincipalContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := PrincipalFromContext(ctx); ok {
		t.Fatal("unexpected principal in empty context")
	}

	p := Principal{Email: "user1@example.com", Roles: []Role{RoleSociete}}
	ctx = ContextWithPrincipal(ctx, p)

	got, ok := PrincipalFromContext(ctx)
	if !ok {
		t.Fatal("principal not found")
	}
	if got.Email != p.Email {
		t.Fatalf("unexpected email: %q", got.Email)
	}
	if !got.HasRole(RoleSociete) || got.HasRole(RoleComptable) {
		t.Fatalf("unexpected roles: %v", got.Roles)
	}
}

func TestParseRolesDropsUnknown(t *testing.T) {
	roles := ParseRoles([]string{"ROLE_SOCIETE", "ROLE_ADMIN", "ROLE_COMPTABLE", ""})
	if len(roles) != 2 {
		t.Fatalf("want 2 roles, got %v", roles)
	}
	if roles[0] != RoleSociete || roles[1] != RoleComptable {
		t.Fatalf("unexpected roles: %v", roles)
	}
}
