package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository/repositorytest"
	"github.com/fenixclinic/clinic-api/pkg/errors"
	"github.com/fenixclinic/clinic-api/pkg/security"
)

func newTestService(users *repositorytest.UserRepository, roles *repositorytest.RoleRepository, appointments *repositorytest.AppointmentRepository) Service {
	return NewService(users, roles, appointments, security.NewBcryptHasher(4))
}

func TestListRejectsHalfOpenBirthRange(t *testing.T) {
	svc := newTestService(&repositorytest.UserRepository{}, &repositorytest.RoleRepository{}, &repositorytest.AppointmentRepository{})
	start := model.NewDate(1980, 1, 1)

	_, err := svc.List(context.Background(), &model.UserFilters{StartBirthDate: &start})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidation))
}

func TestListPassesCompleteRange(t *testing.T) {
	called := false
	users := &repositorytest.UserRepository{
		ListFn: func(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
			called = true
			return nil, nil
		},
	}
	svc := newTestService(users, &repositorytest.RoleRepository{}, &repositorytest.AppointmentRepository{})
	start := model.NewDate(1980, 1, 1)
	end := model.NewDate(1990, 12, 31)

	_, err := svc.List(context.Background(), &model.UserFilters{StartBirthDate: &start, EndBirthDate: &end})

	require.NoError(t, err)
	assert.True(t, called)
}

func TestListByRoleChecksRoleFirst(t *testing.T) {
	roles := &repositorytest.RoleRepository{
		GetFn: func(ctx context.Context, id int64) (*model.Role, error) {
			assert.Equal(t, int64(2), id)
			return &model.Role{ID: 2, Name: "doctor"}, nil
		},
	}
	var gotRoleID int64
	users := &repositorytest.UserRepository{
		ListByRoleFn: func(ctx context.Context, roleID int64) ([]*model.User, error) {
			gotRoleID = roleID
			return nil, nil
		},
	}
	svc := newTestService(users, roles, &repositorytest.AppointmentRepository{})

	_, err := svc.ListByRole(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, int64(2), gotRoleID)
}

func TestListByRoleUnknownRole(t *testing.T) {
	roles := &repositorytest.RoleRepository{
		GetFn: func(ctx context.Context, id int64) (*model.Role, error) {
			return nil, errors.NotFound("role", nil)
		},
	}
	listed := false
	users := &repositorytest.UserRepository{
		ListByRoleFn: func(ctx context.Context, roleID int64) ([]*model.User, error) {
			listed = true
			return nil, nil
		},
	}
	svc := newTestService(users, roles, &repositorytest.AppointmentRepository{})

	_, err := svc.ListByRole(context.Background(), 99)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
	assert.False(t, listed)
}

func TestUpdateRejectsDuplicateEmail(t *testing.T) {
	users := &repositorytest.UserRepository{
		GetFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Email: "old@clinic.test"}, nil
		},
		ExistsByEmailFn: func(ctx context.Context, email string, excludeID int64) (bool, error) {
			assert.Equal(t, "taken@clinic.test", email)
			assert.Equal(t, int64(8), excludeID)
			return true, nil
		},
	}
	svc := newTestService(users, &repositorytest.RoleRepository{}, &repositorytest.AppointmentRepository{})

	email := "taken@clinic.test"
	_, err := svc.Update(context.Background(), 8, &model.UpdateUserRequest{Email: &email})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	hasher := security.NewBcryptHasher(4)
	hashed, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	updateCalled := false
	users := &repositorytest.UserRepository{
		GetFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Password: hashed}, nil
		},
		UpdatePasswordFn: func(ctx context.Context, id int64, passwordHash string) error {
			updateCalled = true
			return nil
		},
	}
	svc := NewService(users, &repositorytest.RoleRepository{}, &repositorytest.AppointmentRepository{}, hasher)

	err = svc.ChangePassword(context.Background(), 1, &model.ChangePasswordRequest{
		CurrentPassword: "battery-staple",
		NewPassword:     "new-password-1",
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidation))
	assert.False(t, updateCalled)
}

func TestChangePasswordStoresNewHash(t *testing.T) {
	hasher := security.NewBcryptHasher(4)
	hashed, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	var storedHash string
	users := &repositorytest.UserRepository{
		GetFn: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Password: hashed}, nil
		},
		UpdatePasswordFn: func(ctx context.Context, id int64, passwordHash string) error {
			storedHash = passwordHash
			return nil
		},
	}
	svc := NewService(users, &repositorytest.RoleRepository{}, &repositorytest.AppointmentRepository{}, hasher)

	err = svc.ChangePassword(context.Background(), 1, &model.ChangePasswordRequest{
		CurrentPassword: "correct-horse",
		NewPassword:     "new-password-1",
	})

	require.NoError(t, err)
	require.NotEmpty(t, storedHash)
	assert.NoError(t, hasher.Compare(storedHash, "new-password-1"))
}

func TestDeleteRefusedWhileAttending(t *testing.T) {
	appointments := &repositorytest.AppointmentRepository{
		ExistsByUserFn: func(ctx context.Context, userID int64) (bool, error) {
			return true, nil
		},
	}
	deleted := false
	users := &repositorytest.UserRepository{
		DeleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(users, &repositorytest.RoleRepository{}, appointments)

	err := svc.Delete(context.Background(), 3)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
	assert.False(t, deleted)
}

func TestDeleteWithoutAppointments(t *testing.T) {
	deleted := false
	users := &repositorytest.UserRepository{
		DeleteFn: func(ctx context.Context, id int64) error {
			deleted = true
			return nil
		},
	}
	svc := newTestService(users, &repositorytest.RoleRepository{}, &repositorytest.AppointmentRepository{})

	err := svc.Delete(context.Background(), 3)

	require.NoError(t, err)
	assert.True(t, deleted)
}
