package accesscontrol

import (
	"errors"
	"reflect"
	"testing"
)

func TestPermissionsForAllRoles(t *testing.T) {
	for _, role := range []Role{RoleOwner, RoleExpert, RoleClient} {
		first, err := PermissionsFor(role)
		if err != nil {
			t.Fatalf("PermissionsFor(%s) returned error: %v", role, err)
		}
		if len(first) == 0 {
			t.Fatalf("PermissionsFor(%s) returned an empty set", role)
		}

		second, err := PermissionsFor(role)
		if err != nil {
			t.Fatalf("PermissionsFor(%s) second call returned error: %v", role, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("PermissionsFor(%s) is not deterministic: %v vs %v", role, first, second)
		}
	}
}

func TestPermissionsForIsolatesCallers(t *testing.T) {
	set, err := PermissionsFor(RoleClient)
	if err != nil {
		t.Fatal(err)
	}
	set[WorkspacesDelete] = struct{}{}

	fresh, err := PermissionsFor(RoleClient)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.Has(WorkspacesDelete) {
		t.Error("mutating a returned set leaked into a later call")
	}
}

func TestPermissionsForUnknownRole(t *testing.T) {
	set, err := PermissionsFor(Role("superuser"))
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if len(set) != 0 {
		t.Errorf("unknown role must deny everything, got %d capabilities", len(set))
	}
}

func TestCheckAnySemantics(t *testing.T) {
	granted := PermissionSet{SessionsView: {}}

	tests := []struct {
		name     string
		required []Capability
		want     bool
	}{
		{"single present", []Capability{SessionsView}, true},
		{"single absent", []Capability{SessionsEdit}, false},
		{"one of two present", []Capability{SessionsEdit, SessionsView}, true},
		{"one of two present, other order", []Capability{SessionsView, SessionsEdit}, true},
		{"none of two present", []Capability{SessionsEdit, SessionsDelete}, false},
		{"empty requirement", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Check(granted, tt.required...); got != tt.want {
				t.Errorf("Check(%v) = %v, want %v", tt.required, got, tt.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"owner", "expert", "client"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("ParseRole(%q) returned error: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "admin", "Owner", "OWNER"} {
		if _, err := ParseRole(invalid); !errors.Is(err, ErrUnknownRole) {
			t.Errorf("ParseRole(%q) expected ErrUnknownRole, got %v", invalid, err)
		}
	}
}
