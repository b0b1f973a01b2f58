package model

// Role groups users for coarse-grained access control.
type Role struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Default role assigned to newly registered accounts.
const DefaultRoleID int64 = 2

// RolePermission carries the per-module access flags of one role. The
// (role_id, module) pair is unique.
type RolePermission struct {
	ID        int64  `db:"id" json:"id"`
	RoleID    int64  `db:"role_id" json:"role_id"`
	Module    string `db:"module" json:"module"`
	CanView   bool   `db:"can_view" json:"can_view"`
	CanCreate bool   `db:"can_create" json:"can_create"`
	CanEdit   bool   `db:"can_edit" json:"can_edit"`
	CanDelete bool   `db:"can_delete" json:"can_delete"`
}
