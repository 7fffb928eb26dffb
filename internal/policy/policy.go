// Package policy maps the fixed role model onto capabilities. Order CRUD
// and catalog-panel visibility are deliberately independent policies; the
// two surfaces grant different things to managers.
package policy

import (
	"context"

	"bootstore-backoffice/gate"
	"bootstore-backoffice/session"
)

// Resource names used in permissions.
const (
	ResourceOrder   = "order"
	ResourceProduct = "product"
	ResourceCatalog = "catalog"
)

// Capabilities is the per-role capability set for one resource, in the shape
// the UI shell consumes to enable or hide its buttons.
type Capabilities struct {
	CanCreate bool
	CanUpdate bool
	CanDelete bool
}

// PanelVisibility drives the catalog management panel: managers see the
// panel, only administrators see the add/delete buttons.
type PanelVisibility struct {
	ShowManagerPanel bool
	ShowAdminButtons bool
}

// Access answers capability questions for role ids. Role profiles are fixed;
// the guest profile exists only in process, never in the store.
type Access struct {
	gate *gate.Gate[uint]
}

func NewAccess() *Access {
	resolver := gate.NewStaticResolver[uint]()
	resolver.Set(session.RoleAdmin, gate.NewStaticProfile("administrator", gate.PermissionAll))
	resolver.Set(session.RoleManager, gate.NewStaticProfile("manager",
		gate.NewPermission(ResourceCatalog, gate.ActionManage),
		gate.NewPermission(ResourceProduct, gate.ActionList),
		gate.NewPermission(ResourceProduct, gate.ActionView),
		gate.NewPermission(ResourceProduct, gate.ActionUpdate),
		gate.NewPermission(ResourceOrder, gate.ActionList),
		gate.NewPermission(ResourceOrder, gate.ActionView),
	))
	resolver.Set(session.RoleClient, gate.NewStaticProfile("client",
		gate.NewPermission(ResourceProduct, gate.ActionList),
		gate.NewPermission(ResourceProduct, gate.ActionView),
		gate.NewPermission(ResourceOrder, gate.ActionList),
		gate.NewPermission(ResourceOrder, gate.ActionView),
	))
	resolver.Set(session.RoleGuest, gate.NewStaticProfile("guest",
		gate.NewPermission(ResourceProduct, gate.ActionList),
		gate.NewPermission(ResourceProduct, gate.ActionView),
	))
	return &Access{gate: gate.New[uint](resolver)}
}

// Authorize returns nil when the role may perform action on resource.
func (a *Access) Authorize(ctx context.Context, roleID uint, action gate.Action, resource string) error {
	return a.gate.Authorize(ctx, roleID, action, resource)
}

// OrderCapabilities is the order CRUD policy: administrators only.
func (a *Access) OrderCapabilities(ctx context.Context, roleID uint) Capabilities {
	return Capabilities{
		CanCreate: a.gate.Can(ctx, roleID, gate.ActionCreate, ResourceOrder),
		CanUpdate: a.gate.Can(ctx, roleID, gate.ActionUpdate, ResourceOrder),
		CanDelete: a.gate.Can(ctx, roleID, gate.ActionDelete, ResourceOrder),
	}
}

// ProductCapabilities is the catalog mutation policy; managers may edit but
// not add or remove products.
func (a *Access) ProductCapabilities(ctx context.Context, roleID uint) Capabilities {
	return Capabilities{
		CanCreate: a.gate.Can(ctx, roleID, gate.ActionCreate, ResourceProduct),
		CanUpdate: a.gate.Can(ctx, roleID, gate.ActionUpdate, ResourceProduct),
		CanDelete: a.gate.Can(ctx, roleID, gate.ActionDelete, ResourceProduct),
	}
}

// CatalogPanel is the catalog-page visibility policy.
func (a *Access) CatalogPanel(ctx context.Context, roleID uint) PanelVisibility {
	return PanelVisibility{
		ShowManagerPanel: a.gate.Can(ctx, roleID, gate.ActionManage, ResourceCatalog),
		ShowAdminButtons: a.gate.Can(ctx, roleID, gate.ActionDelete, ResourceProduct),
	}
}
