// Package repositorytest provides hand-written repository mocks for service
// tests. Every method delegates to an optional func field; unset methods
// return zero values so tests only wire what they assert on.
package repositorytest

import (
	"context"

	"github.com/fenixclinic/clinic-api/internal/model"
)

// Transactor runs the function directly, without a real transaction.
type Transactor struct {
	Calls int
}

func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

type PatientRepository struct {
	CreateFn           func(ctx context.Context, p *model.Patient) error
	GetFn              func(ctx context.Context, id int64) (*model.Patient, error)
	GetSummaryFn       func(ctx context.Context, id int64) (*model.PatientSummary, error)
	ListFn             func(ctx context.Context, skip, limit int) ([]*model.Patient, error)
	SearchFn           func(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error)
	CountFn            func(ctx context.Context) (int, error)
	UpdateFn           func(ctx context.Context, p *model.Patient) error
	DeleteFn           func(ctx context.Context, id int64) error
	ExistsByDocumentFn func(ctx context.Context, documentID string, excludeID int64) (bool, error)
}

func (m *PatientRepository) Create(ctx context.Context, p *model.Patient) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, p)
}

func (m *PatientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	if m.GetFn == nil {
		return &model.Patient{ID: id}, nil
	}
	return m.GetFn(ctx, id)
}

func (m *PatientRepository) GetSummary(ctx context.Context, id int64) (*model.PatientSummary, error) {
	if m.GetSummaryFn == nil {
		return &model.PatientSummary{ID: id}, nil
	}
	return m.GetSummaryFn(ctx, id)
}

func (m *PatientRepository) List(ctx context.Context, skip, limit int) ([]*model.Patient, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx, skip, limit)
}

func (m *PatientRepository) Search(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error) {
	if m.SearchFn == nil {
		return nil, nil
	}
	return m.SearchFn(ctx, query, skip, limit)
}

func (m *PatientRepository) Count(ctx context.Context) (int, error) {
	if m.CountFn == nil {
		return 0, nil
	}
	return m.CountFn(ctx)
}

func (m *PatientRepository) Update(ctx context.Context, p *model.Patient) error {
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(ctx, p)
}

func (m *PatientRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *PatientRepository) ExistsByDocument(ctx context.Context, documentID string, excludeID int64) (bool, error) {
	if m.ExistsByDocumentFn == nil {
		return false, nil
	}
	return m.ExistsByDocumentFn(ctx, documentID, excludeID)
}

type ContactRepository struct {
	ListByPatientFn   func(ctx context.Context, patientID int64) ([]*model.Contact, error)
	InsertFn          func(ctx context.Context, c *model.Contact) error
	UpdateFn          func(ctx context.Context, c *model.Contact) error
	DeleteFn          func(ctx context.Context, id int64) error
	DeleteByPatientFn func(ctx context.Context, patientID int64) error
}

func (m *ContactRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Contact, error) {
	if m.ListByPatientFn == nil {
		return nil, nil
	}
	return m.ListByPatientFn(ctx, patientID)
}

func (m *ContactRepository) Insert(ctx context.Context, c *model.Contact) error {
	if m.InsertFn == nil {
		return nil
	}
	return m.InsertFn(ctx, c)
}

func (m *ContactRepository) Update(ctx context.Context, c *model.Contact) error {
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(ctx, c)
}

func (m *ContactRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *ContactRepository) DeleteByPatient(ctx context.Context, patientID int64) error {
	if m.DeleteByPatientFn == nil {
		return nil
	}
	return m.DeleteByPatientFn(ctx, patientID)
}

type AppointmentRepository struct {
	CreateFn          func(ctx context.Context, apt *model.Appointment) error
	GetFn             func(ctx context.Context, id int64) (*model.Appointment, error)
	ListFn            func(ctx context.Context, skip, limit int) ([]*model.Appointment, error)
	ListByUserFn      func(ctx context.Context, userID int64, skip, limit int) ([]*model.Appointment, error)
	ListByPatientFn   func(ctx context.Context, patientID int64, skip, limit int) ([]*model.Appointment, error)
	ListTodayFn       func(ctx context.Context) ([]*model.Appointment, error)
	ListUpcomingFn    func(ctx context.Context, daysAhead, skip, limit int) ([]*model.Appointment, error)
	CountByPatientFn  func(ctx context.Context, patientID int64) (int, error)
	SearchFn          func(ctx context.Context, filters *model.AppointmentSearchFilters) ([]*model.Appointment, error)
	UpdateFn          func(ctx context.Context, apt *model.Appointment) error
	DeleteFn          func(ctx context.Context, id int64) error
	DeleteByPatientFn func(ctx context.Context, patientID int64) error
	SlotTakenFn       func(ctx context.Context, date model.Date, t model.TimeOfDay, excludeID int64) (bool, error)
	ExistsByUserFn    func(ctx context.Context, userID int64) (bool, error)
}

func (m *AppointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, apt)
}

func (m *AppointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	if m.GetFn == nil {
		return &model.Appointment{ID: id}, nil
	}
	return m.GetFn(ctx, id)
}

func (m *AppointmentRepository) List(ctx context.Context, skip, limit int) ([]*model.Appointment, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx, skip, limit)
}

func (m *AppointmentRepository) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*model.Appointment, error) {
	if m.ListByUserFn == nil {
		return nil, nil
	}
	return m.ListByUserFn(ctx, userID, skip, limit)
}

func (m *AppointmentRepository) ListByPatient(ctx context.Context, patientID int64, skip, limit int) ([]*model.Appointment, error) {
	if m.ListByPatientFn == nil {
		return nil, nil
	}
	return m.ListByPatientFn(ctx, patientID, skip, limit)
}

func (m *AppointmentRepository) ListToday(ctx context.Context) ([]*model.Appointment, error) {
	if m.ListTodayFn == nil {
		return nil, nil
	}
	return m.ListTodayFn(ctx)
}

func (m *AppointmentRepository) ListUpcoming(ctx context.Context, daysAhead, skip, limit int) ([]*model.Appointment, error) {
	if m.ListUpcomingFn == nil {
		return nil, nil
	}
	return m.ListUpcomingFn(ctx, daysAhead, skip, limit)
}

func (m *AppointmentRepository) CountByPatient(ctx context.Context, patientID int64) (int, error) {
	if m.CountByPatientFn == nil {
		return 0, nil
	}
	return m.CountByPatientFn(ctx, patientID)
}

func (m *AppointmentRepository) Search(ctx context.Context, filters *model.AppointmentSearchFilters) ([]*model.Appointment, error) {
	if m.SearchFn == nil {
		return nil, nil
	}
	return m.SearchFn(ctx, filters)
}

func (m *AppointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(ctx, apt)
}

func (m *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *AppointmentRepository) DeleteByPatient(ctx context.Context, patientID int64) error {
	if m.DeleteByPatientFn == nil {
		return nil
	}
	return m.DeleteByPatientFn(ctx, patientID)
}

func (m *AppointmentRepository) SlotTaken(ctx context.Context, date model.Date, t model.TimeOfDay, excludeID int64) (bool, error) {
	if m.SlotTakenFn == nil {
		return false, nil
	}
	return m.SlotTakenFn(ctx, date, t, excludeID)
}

func (m *AppointmentRepository) ExistsByUser(ctx context.Context, userID int64) (bool, error) {
	if m.ExistsByUserFn == nil {
		return false, nil
	}
	return m.ExistsByUserFn(ctx, userID)
}

type DiagnosisRepository struct {
	ListByAppointmentFn   func(ctx context.Context, appointmentID int64) ([]*model.Diagnosis, error)
	InsertFn              func(ctx context.Context, d *model.Diagnosis) error
	UpdateFn              func(ctx context.Context, d *model.Diagnosis) error
	DeleteFn              func(ctx context.Context, id int64) error
	DeleteByAppointmentFn func(ctx context.Context, appointmentID int64) error
	DeleteByPatientFn     func(ctx context.Context, patientID int64) error
}

func (m *DiagnosisRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Diagnosis, error) {
	if m.ListByAppointmentFn == nil {
		return nil, nil
	}
	return m.ListByAppointmentFn(ctx, appointmentID)
}

func (m *DiagnosisRepository) Insert(ctx context.Context, d *model.Diagnosis) error {
	if m.InsertFn == nil {
		return nil
	}
	return m.InsertFn(ctx, d)
}

func (m *DiagnosisRepository) Update(ctx context.Context, d *model.Diagnosis) error {
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(ctx, d)
}

func (m *DiagnosisRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *DiagnosisRepository) DeleteByAppointment(ctx context.Context, appointmentID int64) error {
	if m.DeleteByAppointmentFn == nil {
		return nil
	}
	return m.DeleteByAppointmentFn(ctx, appointmentID)
}

func (m *DiagnosisRepository) DeleteByPatient(ctx context.Context, patientID int64) error {
	if m.DeleteByPatientFn == nil {
		return nil
	}
	return m.DeleteByPatientFn(ctx, patientID)
}

type RecipeRepository struct {
	ListByAppointmentFn   func(ctx context.Context, appointmentID int64) ([]*model.Recipe, error)
	InsertFn              func(ctx context.Context, r *model.Recipe) error
	UpdateFn              func(ctx context.Context, r *model.Recipe) error
	DeleteFn              func(ctx context.Context, id int64) error
	DeleteByAppointmentFn func(ctx context.Context, appointmentID int64) error
	DeleteByPatientFn     func(ctx context.Context, patientID int64) error
}

func (m *RecipeRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Recipe, error) {
	if m.ListByAppointmentFn == nil {
		return nil, nil
	}
	return m.ListByAppointmentFn(ctx, appointmentID)
}

func (m *RecipeRepository) Insert(ctx context.Context, r *model.Recipe) error {
	if m.InsertFn == nil {
		return nil
	}
	return m.InsertFn(ctx, r)
}

func (m *RecipeRepository) Update(ctx context.Context, r *model.Recipe) error {
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(ctx, r)
}

func (m *RecipeRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *RecipeRepository) DeleteByAppointment(ctx context.Context, appointmentID int64) error {
	if m.DeleteByAppointmentFn == nil {
		return nil
	}
	return m.DeleteByAppointmentFn(ctx, appointmentID)
}

func (m *RecipeRepository) DeleteByPatient(ctx context.Context, patientID int64) error {
	if m.DeleteByPatientFn == nil {
		return nil
	}
	return m.DeleteByPatientFn(ctx, patientID)
}

type UserRepository struct {
	CreateFn         func(ctx context.Context, u *model.User) error
	GetFn            func(ctx context.Context, id int64) (*model.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*model.User, error)
	GetSummaryFn     func(ctx context.Context, id int64) (*model.UserSummary, error)
	ListFn           func(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	ListByRoleFn     func(ctx context.Context, roleID int64) ([]*model.User, error)
	UpdateFn         func(ctx context.Context, u *model.User) error
	UpdatePasswordFn func(ctx context.Context, id int64, passwordHash string) error
	DeleteFn         func(ctx context.Context, id int64) error
	ExistsByEmailFn  func(ctx context.Context, email string, excludeID int64) (bool, error)
}

func (m *UserRepository) Create(ctx context.Context, u *model.User) error {
	if m.CreateFn == nil {
		return nil
	}
	return m.CreateFn(ctx, u)
}

func (m *UserRepository) Get(ctx context.Context, id int64) (*model.User, error) {
	if m.GetFn == nil {
		return &model.User{ID: id}, nil
	}
	return m.GetFn(ctx, id)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.GetByEmailFn == nil {
		return &model.User{Email: email}, nil
	}
	return m.GetByEmailFn(ctx, email)
}

func (m *UserRepository) GetSummary(ctx context.Context, id int64) (*model.UserSummary, error) {
	if m.GetSummaryFn == nil {
		return &model.UserSummary{ID: id}, nil
	}
	return m.GetSummaryFn(ctx, id)
}

func (m *UserRepository) List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx, filters)
}

func (m *UserRepository) ListByRole(ctx context.Context, roleID int64) ([]*model.User, error) {
	if m.ListByRoleFn == nil {
		return nil, nil
	}
	return m.ListByRoleFn(ctx, roleID)
}

func (m *UserRepository) Update(ctx context.Context, u *model.User) error {
	if m.UpdateFn == nil {
		return nil
	}
	return m.UpdateFn(ctx, u)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	if m.UpdatePasswordFn == nil {
		return nil
	}
	return m.UpdatePasswordFn(ctx, id, passwordHash)
}

func (m *UserRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn == nil {
		return nil
	}
	return m.DeleteFn(ctx, id)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	if m.ExistsByEmailFn == nil {
		return false, nil
	}
	return m.ExistsByEmailFn(ctx, email, excludeID)
}

type RoleRepository struct {
	ListFn            func(ctx context.Context) ([]*model.Role, error)
	GetFn             func(ctx context.Context, id int64) (*model.Role, error)
	GetByNameFn       func(ctx context.Context, name string) (*model.Role, error)
	ListPermissionsFn func(ctx context.Context, roleID int64) ([]*model.RolePermission, error)
}

func (m *RoleRepository) List(ctx context.Context) ([]*model.Role, error) {
	if m.ListFn == nil {
		return nil, nil
	}
	return m.ListFn(ctx)
}

func (m *RoleRepository) Get(ctx context.Context, id int64) (*model.Role, error) {
	if m.GetFn == nil {
		return &model.Role{ID: id}, nil
	}
	return m.GetFn(ctx, id)
}

func (m *RoleRepository) GetByName(ctx context.Context, name string) (*model.Role, error) {
	if m.GetByNameFn == nil {
		return &model.Role{ID: 1, Name: name}, nil
	}
	return m.GetByNameFn(ctx, name)
}

func (m *RoleRepository) ListPermissions(ctx context.Context, roleID int64) ([]*model.RolePermission, error) {
	if m.ListPermissionsFn == nil {
		return nil, nil
	}
	return m.ListPermissionsFn(ctx, roleID)
}
