package repository

import (
	"context"

	"github.com/fenixclinic/clinic-api/internal/model"
)

// Transactor runs fn with a storage transaction carried in the context; all
// repository calls made through that context join the transaction and commit
// or roll back as a unit.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// All repository interfaces in one file
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		GetSummary(ctx context.Context, id int64) (*model.PatientSummary, error)
		List(ctx context.Context, skip, limit int) ([]*model.Patient, error)
		Search(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error)
		Count(ctx context.Context) (int, error)
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id int64) error
		ExistsByDocument(ctx context.Context, documentID string, excludeID int64) (bool, error)
	}

	ContactRepository interface {
		ListByPatient(ctx context.Context, patientID int64) ([]*model.Contact, error)
		Insert(ctx context.Context, contact *model.Contact) error
		Update(ctx context.Context, contact *model.Contact) error
		Delete(ctx context.Context, id int64) error
		DeleteByPatient(ctx context.Context, patientID int64) error
	}

	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id int64) (*model.Appointment, error)
		List(ctx context.Context, skip, limit int) ([]*model.Appointment, error)
		ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*model.Appointment, error)
		ListByPatient(ctx context.Context, patientID int64, skip, limit int) ([]*model.Appointment, error)
		ListToday(ctx context.Context) ([]*model.Appointment, error)
		ListUpcoming(ctx context.Context, daysAhead, skip, limit int) ([]*model.Appointment, error)
		CountByPatient(ctx context.Context, patientID int64) (int, error)
		Search(ctx context.Context, filters *model.AppointmentSearchFilters) ([]*model.Appointment, error)
		Update(ctx context.Context, apt *model.Appointment) error
		Delete(ctx context.Context, id int64) error
		DeleteByPatient(ctx context.Context, patientID int64) error
		SlotTaken(ctx context.Context, date model.Date, t model.TimeOfDay, excludeID int64) (bool, error)
		ExistsByUser(ctx context.Context, userID int64) (bool, error)
	}

	DiagnosisRepository interface {
		ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Diagnosis, error)
		Insert(ctx context.Context, d *model.Diagnosis) error
		Update(ctx context.Context, d *model.Diagnosis) error
		Delete(ctx context.Context, id int64) error
		DeleteByAppointment(ctx context.Context, appointmentID int64) error
		DeleteByPatient(ctx context.Context, patientID int64) error
	}

	RecipeRepository interface {
		ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Recipe, error)
		Insert(ctx context.Context, r *model.Recipe) error
		Update(ctx context.Context, r *model.Recipe) error
		Delete(ctx context.Context, id int64) error
		DeleteByAppointment(ctx context.Context, appointmentID int64) error
		DeleteByPatient(ctx context.Context, patientID int64) error
	}

	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id int64) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		GetSummary(ctx context.Context, id int64) (*model.UserSummary, error)
		List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
		ListByRole(ctx context.Context, roleID int64) ([]*model.User, error)
		Update(ctx context.Context, user *model.User) error
		UpdatePassword(ctx context.Context, id int64, passwordHash string) error
		Delete(ctx context.Context, id int64) error
		ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	}

	RoleRepository interface {
		List(ctx context.Context) ([]*model.Role, error)
		Get(ctx context.Context, id int64) (*model.Role, error)
		GetByName(ctx context.Context, name string) (*model.Role, error)
		ListPermissions(ctx context.Context, roleID int64) ([]*model.RolePermission, error)
	}
)
