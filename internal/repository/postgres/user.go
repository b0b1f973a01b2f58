package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

const userColumns = `
	u.id, u.first_name, u.last_name, u.email, u.password, u.birth_date,
	u.role_id, r.name AS role_name, u.is_active, u.created_at`

const userJoin = `
	FROM auth.auth_users u
	JOIN auth.roles r ON r.id = u.role_id`

type userRepository struct {
	base
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{base{db: db}}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO auth.auth_users (
			first_name, last_name, email, password, birth_date,
			role_id, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	user.CreatedAt = time.Now().UTC()

	err := r.ext(ctx).QueryRowxContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.Password, user.BirthDate,
		user.RoleID, user.IsActive, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT` + userColumns + userJoin + ` WHERE u.id = $1`
	var user model.User
	if err := sqlx.GetContext(ctx, r.ext(ctx), &user, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user", err)
		}
		return nil, errors.Internal(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT` + userColumns + userJoin + ` WHERE lower(u.email) = lower($1)`
	var user model.User
	if err := sqlx.GetContext(ctx, r.ext(ctx), &user, query, email); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user", err)
		}
		return nil, errors.Internal(err)
	}
	return &user, nil
}

func (r *userRepository) GetSummary(ctx context.Context, id int64) (*model.UserSummary, error) {
	query := `SELECT id, first_name, last_name, email FROM auth.auth_users WHERE id = $1`
	var summary model.UserSummary
	if err := sqlx.GetContext(ctx, r.ext(ctx), &summary, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user", err)
		}
		return nil, errors.Internal(err)
	}
	return &summary, nil
}

// userListWhere builds the WHERE clause for the user listing. The first
// name is an exact match, not a substring search; the birth-date range is
// applied only when both bounds are present.
func userListWhere(filters *model.UserFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	if filters != nil {
		if filters.Role != "" {
			args = append(args, filters.Role)
			conditions = append(conditions, fmt.Sprintf("lower(r.name) = lower($%d)", len(args)))
		}
		if filters.FirstName != "" {
			args = append(args, filters.FirstName)
			conditions = append(conditions, fmt.Sprintf("u.first_name = $%d", len(args)))
		}
		if filters.StartBirthDate != nil && filters.EndBirthDate != nil {
			args = append(args, *filters.StartBirthDate)
			conditions = append(conditions, fmt.Sprintf("u.birth_date >= $%d", len(args)))
			args = append(args, *filters.EndBirthDate)
			conditions = append(conditions, fmt.Sprintf("u.birth_date <= $%d", len(args)))
		}
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *userRepository) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	where, args := userListWhere(filters)
	query := fmt.Sprintf(`SELECT%s%s %s ORDER BY u.id ASC`, userColumns, userJoin, where)

	users := []*model.User{}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &users, query, args...); err != nil {
		return nil, errors.Internal(err)
	}
	return users, nil
}

func (r *userRepository) ListByRole(ctx context.Context, roleID int64) ([]*model.User, error) {
	query := `SELECT` + userColumns + userJoin + `
	WHERE u.role_id = $1 AND u.is_active
	ORDER BY u.last_name ASC, u.first_name ASC`

	users := []*model.User{}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &users, query, roleID); err != nil {
		return nil, errors.Internal(err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	query := `
		UPDATE auth.auth_users SET
			first_name = $1, last_name = $2, email = $3, birth_date = $4,
			role_id = $5, is_active = $6
		WHERE id = $7
	`
	res, err := r.ext(ctx).ExecContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.BirthDate,
		user.RoleID, user.IsActive, user.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("user", nil)
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	res, err := r.ext(ctx).ExecContext(ctx,
		`UPDATE auth.auth_users SET password = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("user", nil)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM auth.auth_users WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("user", nil)
	}
	return nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM auth.auth_users
			WHERE lower(email) = lower($1) AND id <> $2
		)
	`
	var exists bool
	if err := sqlx.GetContext(ctx, r.ext(ctx), &exists, query, email, excludeID); err != nil {
		return false, errors.Internal(err)
	}
	return exists, nil
}
