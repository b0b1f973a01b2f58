package user

import (
	"context"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
	"github.com/fenixclinic/clinic-api/pkg/security"
)

type Service interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	ListRoles(ctx context.Context) ([]*model.Role, error)
	ListByRole(ctx context.Context, roleID int64) ([]*model.User, error)
	ListPermissions(ctx context.Context, roleID int64) ([]*model.RolePermission, error)
	Update(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error)
	ChangePassword(ctx context.Context, id int64, req *model.ChangePasswordRequest) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	users        repository.UserRepository
	roles        repository.RoleRepository
	appointments repository.AppointmentRepository
	hasher       security.PasswordHasher
}

func NewService(users repository.UserRepository, roles repository.RoleRepository, appointments repository.AppointmentRepository, hasher security.PasswordHasher) Service {
	return &service{
		users:        users,
		roles:        roles,
		appointments: appointments,
		hasher:       hasher,
	}
}

func (s *service) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.users.Get(ctx, id)
}

func (s *service) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	if filters != nil {
		oneBound := (filters.StartBirthDate == nil) != (filters.EndBirthDate == nil)
		if oneBound {
			return nil, errors.Validation("birth date range requires both start and end", nil)
		}
	}
	return s.users.List(ctx, filters)
}

func (s *service) ListRoles(ctx context.Context) ([]*model.Role, error) {
	return s.roles.List(ctx)
}

func (s *service) ListByRole(ctx context.Context, roleID int64) ([]*model.User, error) {
	role, err := s.roles.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return s.users.ListByRole(ctx, role.ID)
}

func (s *service) ListPermissions(ctx context.Context, roleID int64) ([]*model.RolePermission, error) {
	if _, err := s.roles.Get(ctx, roleID); err != nil {
		return nil, err
	}
	return s.roles.ListPermissions(ctx, roleID)
}

func (s *service) Update(ctx context.Context, id int64, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		exists, err := s.users.ExistsByEmail(ctx, *req.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.Conflict("a user with this email already exists", nil)
		}
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		parsed, err := model.ParseDate(*req.BirthDate)
		if err != nil {
			return nil, errors.Validation(err.Error(), err)
		}
		user.BirthDate = &parsed
	}
	if req.Role != nil {
		role, err := s.roles.GetByName(ctx, *req.Role)
		if err != nil {
			return nil, err
		}
		user.RoleID = role.ID
		user.RoleName = role.Name
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) ChangePassword(ctx context.Context, id int64, req *model.ChangePasswordRequest) error {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.hasher.Compare(user.Password, req.CurrentPassword); err != nil {
		return errors.Validation("current password is incorrect", err)
	}
	hashed, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return errors.Validation("password does not meet requirements", err)
	}
	return s.users.UpdatePassword(ctx, id, hashed)
}

// Delete refuses to remove a user who still attends appointments: the
// encounter history must keep pointing at a real doctor.
func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.users.Get(ctx, id); err != nil {
		return err
	}
	attending, err := s.appointments.ExistsByUser(ctx, id)
	if err != nil {
		return err
	}
	if attending {
		return errors.Conflict("user has appointments and cannot be deleted", nil)
	}
	return s.users.Delete(ctx, id)
}
