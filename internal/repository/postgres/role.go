package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/jmoiron/sqlx"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

type roleRepository struct {
	base
}

func NewRoleRepository(db *sqlx.DB) repository.RoleRepository {
	return &roleRepository{base{db: db}}
}

func (r *roleRepository) List(ctx context.Context) ([]*model.Role, error) {
	roles := []*model.Role{}
	err := sqlx.SelectContext(ctx, r.ext(ctx), &roles,
		`SELECT id, name FROM auth.roles ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return roles, nil
}

func (r *roleRepository) Get(ctx context.Context, id int64) (*model.Role, error) {
	var role model.Role
	err := sqlx.GetContext(ctx, r.ext(ctx), &role,
		`SELECT id, name FROM auth.roles WHERE id = $1`, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("role", err)
		}
		return nil, errors.Internal(err)
	}
	return &role, nil
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	err := sqlx.GetContext(ctx, r.ext(ctx), &role,
		`SELECT id, name FROM auth.roles WHERE lower(name) = lower($1)`, name)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("role", err)
		}
		return nil, errors.Internal(err)
	}
	return &role, nil
}

func (r *roleRepository) ListPermissions(ctx context.Context, roleID int64) ([]*model.RolePermission, error) {
	query := `
		SELECT role_id, module, can_view, can_create, can_edit, can_delete
		FROM auth.role_permissions
		WHERE role_id = $1
		ORDER BY module ASC
	`
	perms := []*model.RolePermission{}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &perms, query, roleID); err != nil {
		return nil, errors.Internal(err)
	}
	return perms, nil
}
