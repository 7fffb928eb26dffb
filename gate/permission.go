package gate

import "strings"

// Permission is an allowed action on a resource type, in "resource:action"
// form (e.g. "order:create", "catalog:manage").
type Permission string

// NewPermission builds a permission from its two parts.
func NewPermission(resource string, action Action) Permission {
	return Permission(resource + ":" + string(action))
}

// Parse splits a permission back into resource type and action. Malformed
// permissions yield two empty values and never match anything.
func (p Permission) Parse() (resource string, action Action) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], Action(parts[1])
}

const (
	wildcard = "*"

	// PermissionAll is the administrator wildcard matching every permission.
	PermissionAll Permission = "*:*"
)

// Matches reports whether this held permission satisfies a requested one.
// "*:*" matches everything; "order:*" matches every order action.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionAll {
		return true
	}
	if p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	return res == reqRes && string(act) == wildcard
}
