package authorize

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{"doctor", RoleDoctor, true},
		{" Admin ", RoleAdmin, true},
		{"PATIENT", RolePatient, true},
		{"", "", false},
		{"nurse", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ParseRole(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestActionForMethod(t *testing.T) {
	tests := map[string]Action{
		"GET":    ActionRead,
		"HEAD":   ActionRead,
		"POST":   ActionCreate,
		"put":    ActionUpdate,
		"PATCH":  ActionUpdate,
		"DELETE": ActionDelete,
	}
	for method, want := range tests {
		if got := ActionForMethod(method); got != want {
			t.Errorf("ActionForMethod(%q) = %q, want %q", method, got, want)
		}
	}
}

func TestKnownRolesHaveDisplayNames(t *testing.T) {
	for r := range KnownRoles {
		if RoleDisplayNamesES[r] == "" {
			t.Errorf("role %q has no display name", r)
		}
	}
}

func TestDefaultPoliciesAreValid(t *testing.T) {
	for _, p := range DefaultPolicies {
		if _, ok := KnownRoles[p.Subject]; !ok {
			t.Errorf("policy %v has unknown role", p)
		}
		if _, ok := KnownResources[p.Object]; !ok && p.Object != WildcardResource {
			t.Errorf("policy %v has unknown resource", p)
		}
		if _, ok := KnownActions[p.Action]; !ok && p.Action != WildcardAction {
			t.Errorf("policy %v has unknown action", p)
		}
	}
}
