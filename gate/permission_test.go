package gate_test

import (
	"testing"

	"bootstore-backoffice/gate"
)

func TestNewPermission(t *testing.T) {
	if p := gate.NewPermission("order", gate.ActionCreate); p != "order:create" {
		t.Errorf("expected 'order:create', got %q", p)
	}
}

func TestPermission_Parse(t *testing.T) {
	res, act := gate.Permission("catalog:manage").Parse()
	if res != "catalog" || act != gate.ActionManage {
		t.Errorf("unexpected parse result: %q, %q", res, act)
	}

	res, act = gate.Permission("malformed").Parse()
	if res != "" || act != "" {
		t.Errorf("malformed permission should parse to empty parts, got %q, %q", res, act)
	}
}

func TestPermission_Matches(t *testing.T) {
	tests := []struct {
		held      gate.Permission
		requested gate.Permission
		want      bool
	}{
		{"order:create", "order:create", true},
		{"order:create", "order:delete", false},
		{"order:create", "product:create", false},
		{"order:*", "order:delete", true},
		{"order:*", "product:delete", false},
		{gate.PermissionAll, "anything:at_all", true},
		{"malformed", "order:view", false},
	}
	for _, tt := range tests {
		if got := tt.held.Matches(tt.requested); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.held, tt.requested, got, tt.want)
		}
	}
}
