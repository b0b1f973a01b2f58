package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository/repositorytest"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

type fixture struct {
	appointments *repositorytest.AppointmentRepository
	diagnoses    *repositorytest.DiagnosisRepository
	recipes      *repositorytest.RecipeRepository
	patients     *repositorytest.PatientRepository
	users        *repositorytest.UserRepository
	tx           *repositorytest.Transactor
}

func newFixture() *fixture {
	return &fixture{
		appointments: &repositorytest.AppointmentRepository{},
		diagnoses:    &repositorytest.DiagnosisRepository{},
		recipes:      &repositorytest.RecipeRepository{},
		patients:     &repositorytest.PatientRepository{},
		users:        &repositorytest.UserRepository{},
		tx:           &repositorytest.Transactor{},
	}
}

func (f *fixture) service() Service {
	return NewService(f.appointments, f.diagnoses, f.recipes, f.patients, f.users, f.tx)
}

func TestCreateRejectsTakenSlot(t *testing.T) {
	f := newFixture()
	f.appointments.SlotTakenFn = func(ctx context.Context, date model.Date, tod model.TimeOfDay, excludeID int64) (bool, error) {
		assert.Equal(t, int64(0), excludeID)
		return true, nil
	}

	_, err := f.service().Create(context.Background(), &model.CreateAppointmentRequest{
		PatientID: 1,
		UserID:    2,
		Date:      model.NewDate(2026, 9, 1),
		Time:      "09:30",
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
	assert.Equal(t, 0, f.tx.Calls, "a taken slot must not open a transaction")
}

func TestCreateNormalizesTimeAndInsertsChildren(t *testing.T) {
	f := newFixture()
	f.appointments.CreateFn = func(ctx context.Context, apt *model.Appointment) error {
		assert.Equal(t, model.TimeOfDay("09:30:00"), apt.Time)
		apt.ID = 77
		return nil
	}
	f.appointments.GetFn = func(ctx context.Context, id int64) (*model.Appointment, error) {
		return &model.Appointment{ID: id, PatientID: 1, UserID: 2}, nil
	}
	var diagTypes []string
	var recipeCount int
	f.diagnoses.InsertFn = func(ctx context.Context, d *model.Diagnosis) error {
		assert.Equal(t, int64(77), d.AppointmentID)
		diagTypes = append(diagTypes, d.Type)
		return nil
	}
	f.recipes.InsertFn = func(ctx context.Context, r *model.Recipe) error {
		assert.Equal(t, int64(77), r.AppointmentID)
		recipeCount++
		return nil
	}

	primary := model.DiagnosisTypePrimary
	apt, err := f.service().Create(context.Background(), &model.CreateAppointmentRequest{
		PatientID: 1,
		UserID:    2,
		Date:      model.NewDate(2026, 9, 1),
		Time:      "09:30",
		Diagnoses: []model.DiagnosisInput{
			{Code: "J00", Description: "Acute nasopharyngitis", Type: &primary},
			{Code: "J45", Description: "Asthma"},
		},
		Recipes: []model.RecipeInput{
			{Medicine: "Paracetamol", Amount: "500mg", Instructions: "every 8 hours"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), apt.ID)
	// An omitted type means a secondary diagnosis.
	assert.Equal(t, []string{model.DiagnosisTypePrimary, model.DiagnosisTypeSecondary}, diagTypes)
	assert.Equal(t, 1, recipeCount)
}

func TestCreateRejectsMalformedTime(t *testing.T) {
	f := newFixture()

	_, err := f.service().Create(context.Background(), &model.CreateAppointmentRequest{
		PatientID: 1,
		UserID:    2,
		Date:      model.NewDate(2026, 9, 1),
		Time:      "9h30",
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidation))
}

func TestUpdateSlotCheckExcludesSelf(t *testing.T) {
	f := newFixture()
	f.appointments.GetFn = func(ctx context.Context, id int64) (*model.Appointment, error) {
		return &model.Appointment{
			ID:        id,
			PatientID: 1,
			UserID:    2,
			Date:      model.NewDate(2026, 9, 1),
			Time:      "09:30:00",
		}, nil
	}
	var checkedExclude int64 = -1
	f.appointments.SlotTakenFn = func(ctx context.Context, date model.Date, tod model.TimeOfDay, excludeID int64) (bool, error) {
		checkedExclude = excludeID
		assert.True(t, model.NewDate(2026, 9, 2).Equal(date))
		assert.Equal(t, model.TimeOfDay("09:30:00"), tod)
		return false, nil
	}

	newDate := model.NewDate(2026, 9, 2)
	_, err := f.service().Update(context.Background(), 15, &model.UpdateAppointmentRequest{
		Date: &newDate,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(15), checkedExclude)
}

func TestUpdateSkipsSlotCheckWhenUnchanged(t *testing.T) {
	f := newFixture()
	sameDate := model.NewDate(2026, 9, 1)
	f.appointments.GetFn = func(ctx context.Context, id int64) (*model.Appointment, error) {
		return &model.Appointment{ID: id, PatientID: 1, UserID: 2, Date: sameDate, Time: "09:30:00"}, nil
	}
	checked := false
	f.appointments.SlotTakenFn = func(ctx context.Context, date model.Date, tod model.TimeOfDay, excludeID int64) (bool, error) {
		checked = true
		return false, nil
	}

	sameTime := model.TimeOfDay("09:30")
	_, err := f.service().Update(context.Background(), 15, &model.UpdateAppointmentRequest{
		Date: &sameDate,
		Time: &sameTime,
	})

	require.NoError(t, err)
	assert.False(t, checked, "an unchanged schedule needs no slot check")
}

func TestManageSlotCheckNeedsBothDateAndTime(t *testing.T) {
	f := newFixture()
	f.appointments.GetFn = func(ctx context.Context, id int64) (*model.Appointment, error) {
		return &model.Appointment{ID: id, PatientID: 1, UserID: 2, Date: model.NewDate(2026, 9, 1), Time: "09:30:00"}, nil
	}
	checked := false
	f.appointments.SlotTakenFn = func(ctx context.Context, date model.Date, tod model.TimeOfDay, excludeID int64) (bool, error) {
		checked = true
		return false, nil
	}

	newDate := model.NewDate(2026, 9, 3)
	_, err := f.service().Manage(context.Background(), 15, &model.UpdateAppointmentRequest{
		Date: &newDate,
	})
	require.NoError(t, err)
	assert.False(t, checked)

	newTime := model.TimeOfDay("10:00")
	_, err = f.service().Manage(context.Background(), 15, &model.UpdateAppointmentRequest{
		Date: &newDate,
		Time: &newTime,
	})
	require.NoError(t, err)
	assert.True(t, checked)
}

func TestSearchNeedsAtLeastOneCriterion(t *testing.T) {
	f := newFixture()
	f.appointments.SearchFn = func(ctx context.Context, filters *model.AppointmentSearchFilters) ([]*model.Appointment, error) {
		t.Fatal("storage must not be queried without criteria")
		return nil, nil
	}

	_, err := f.service().Search(context.Background(), &model.AppointmentSearchFilters{})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrValidation))
}

func TestUpdateReconcilesDiagnoses(t *testing.T) {
	f := newFixture()
	f.appointments.GetFn = func(ctx context.Context, id int64) (*model.Appointment, error) {
		return &model.Appointment{ID: id, PatientID: 1, UserID: 2, Date: model.NewDate(2026, 9, 1), Time: "09:30:00"}, nil
	}
	keptID := int64(3)
	f.diagnoses.ListByAppointmentFn = func(ctx context.Context, appointmentID int64) ([]*model.Diagnosis, error) {
		return []*model.Diagnosis{
			{ID: keptID, AppointmentID: appointmentID, Code: "J00", Description: "old", Type: model.DiagnosisTypePrimary},
			{ID: 4, AppointmentID: appointmentID, Code: "J45", Description: "dropped", Type: model.DiagnosisTypeSecondary},
		}, nil
	}
	var inserted, updated, deleted int
	f.diagnoses.InsertFn = func(ctx context.Context, d *model.Diagnosis) error { inserted++; return nil }
	f.diagnoses.UpdateFn = func(ctx context.Context, d *model.Diagnosis) error {
		assert.Equal(t, keptID, d.ID)
		assert.Equal(t, "revised", d.Description)
		updated++
		return nil
	}
	f.diagnoses.DeleteFn = func(ctx context.Context, id int64) error {
		assert.Equal(t, int64(4), id)
		deleted++
		return nil
	}

	incoming := []model.DiagnosisInput{
		{ID: &keptID, Code: "J00", Description: "revised"},
		{Code: "J11", Description: "new"},
	}
	_, err := f.service().Update(context.Background(), 20, &model.UpdateAppointmentRequest{
		Diagnoses: &incoming,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, deleted)
}

func TestDeleteRemovesChildrenFirst(t *testing.T) {
	f := newFixture()
	var order []string
	f.diagnoses.DeleteByAppointmentFn = func(ctx context.Context, appointmentID int64) error {
		order = append(order, "diagnoses")
		return nil
	}
	f.recipes.DeleteByAppointmentFn = func(ctx context.Context, appointmentID int64) error {
		order = append(order, "recipes")
		return nil
	}
	f.appointments.DeleteFn = func(ctx context.Context, id int64) error {
		order = append(order, "appointment")
		return nil
	}

	err := f.service().Delete(context.Background(), 30)

	require.NoError(t, err)
	assert.Equal(t, []string{"diagnoses", "recipes", "appointment"}, order)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestListUpcomingUsesDefaultWindow(t *testing.T) {
	f := newFixture()
	var gotDays int
	f.appointments.ListUpcomingFn = func(ctx context.Context, daysAhead, skip, limit int) ([]*model.Appointment, error) {
		gotDays = daysAhead
		return nil, nil
	}

	_, err := f.service().ListUpcoming(context.Background(), 0, 10)

	require.NoError(t, err)
	assert.Equal(t, UpcomingDays, gotDays)
}
