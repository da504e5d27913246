package domain

import (
	"errors"
	"slices"
	"testing"
)

func TestParseRole(t *testing.T) {
	for raw, want := range map[string]Role{
		"GUEST":       RoleGuest,
		"employee":    RoleEmployee,
		" Admin ":     RoleAdmin,
		"super_admin": RoleSuperAdmin,
	} {
		got, err := ParseRole(raw)
		if err != nil {
			t.Fatalf("ParseRole(%q): %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseRole(%q) = %q, want %q", raw, got, want)
		}
	}

	if _, err := ParseRole("OWNER"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown role should be ErrInvalidInput, got %v", err)
	}
}

func TestAuthoritiesAreSupersets(t *testing.T) {
	ladder := []Role{RoleGuest, RoleEmployee, RoleAdmin, RoleSuperAdmin}
	for i := 1; i < len(ladder); i++ {
		lower := ladder[i-1].Authorities()
		higher := ladder[i].Authorities()
		for _, perm := range lower {
			if !slices.Contains(higher, perm) {
				t.Fatalf("%s is missing %q granted to %s", ladder[i], perm, ladder[i-1])
			}
		}
		if len(higher) <= len(lower) {
			t.Fatalf("%s should grant more than %s", ladder[i], ladder[i-1])
		}
	}
}

func TestGuestAuthorities(t *testing.T) {
	got := RoleGuest.Authorities()
	if len(got) != 1 || got[0] != "content:read" {
		t.Fatalf("guest authorities = %v", got)
	}
}
