package patient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository/repositorytest"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

func strPtr(s string) *string { return &s }

func newTestService(
	patients *repositorytest.PatientRepository,
	contacts *repositorytest.ContactRepository,
	appointments *repositorytest.AppointmentRepository,
	diagnoses *repositorytest.DiagnosisRepository,
	recipes *repositorytest.RecipeRepository,
	tx *repositorytest.Transactor,
) Service {
	return NewService(patients, contacts, appointments, diagnoses, recipes, tx)
}

func TestCreateRejectsDuplicateDocument(t *testing.T) {
	created := false
	patients := &repositorytest.PatientRepository{
		ExistsByDocumentFn: func(ctx context.Context, documentID string, excludeID int64) (bool, error) {
			assert.Equal(t, "9999999", documentID)
			assert.Equal(t, int64(0), excludeID)
			return true, nil
		},
		CreateFn: func(ctx context.Context, p *model.Patient) error {
			created = true
			return nil
		},
	}
	svc := newTestService(patients, &repositorytest.ContactRepository{}, &repositorytest.AppointmentRepository{}, &repositorytest.DiagnosisRepository{}, &repositorytest.RecipeRepository{}, &repositorytest.Transactor{})

	birth := model.NewDate(1990, 5, 20)
	_, err := svc.Create(context.Background(), &model.CreatePatientRequest{
		FirstName:  "Ana",
		LastName:   "Lopez",
		BirthDate:  &birth,
		Gender:     "female",
		DocumentID: "9999999",
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
	assert.False(t, created, "duplicate document must not reach the store")
}

func TestCreateInsertsContactsInTransaction(t *testing.T) {
	var inserted []*model.Contact
	patients := &repositorytest.PatientRepository{
		CreateFn: func(ctx context.Context, p *model.Patient) error {
			p.ID = 42
			return nil
		},
	}
	contacts := &repositorytest.ContactRepository{
		InsertFn: func(ctx context.Context, c *model.Contact) error {
			inserted = append(inserted, c)
			return nil
		},
	}
	tx := &repositorytest.Transactor{}
	svc := newTestService(patients, contacts, &repositorytest.AppointmentRepository{}, &repositorytest.DiagnosisRepository{}, &repositorytest.RecipeRepository{}, tx)

	birth := model.NewDate(1985, 1, 2)
	patient, err := svc.Create(context.Background(), &model.CreatePatientRequest{
		FirstName:  "Luis",
		LastName:   "Vera",
		BirthDate:  &birth,
		Gender:     "male",
		DocumentID: "1234567",
		Contacts: []model.ContactInput{
			{FirstName: "Marta", LastName: "Vera", Phone: "0991111111", RelationshipType: "spouse"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, tx.Calls)
	require.Len(t, inserted, 1)
	assert.Equal(t, int64(42), inserted[0].PatientID)
	assert.Len(t, patient.Contacts, 1)
}

func TestSearchReFiltersStorageResults(t *testing.T) {
	patients := &repositorytest.PatientRepository{
		SearchFn: func(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error) {
			// Simulate a collation that matched more rows than the
			// criterion warrants.
			return []*model.Patient{
				{ID: 1, FirstName: "Garcia", LastName: "Mora", DocumentID: "111"},
				{ID: 2, FirstName: "Pedro", LastName: "Suarez", DocumentID: "222"},
				{ID: 3, FirstName: "Ines", LastName: "GARCIA", DocumentID: "333"},
			}, nil
		},
	}
	svc := newTestService(patients, &repositorytest.ContactRepository{}, &repositorytest.AppointmentRepository{}, &repositorytest.DiagnosisRepository{}, &repositorytest.RecipeRepository{}, &repositorytest.Transactor{})

	matched, err := svc.Search(context.Background(), "garcia", 0, 10)

	require.NoError(t, err)
	require.Len(t, matched, 2)
	assert.Equal(t, int64(1), matched[0].ID)
	assert.Equal(t, int64(3), matched[1].ID)
}

func TestUpdateChecksDocumentAgainstOtherPatients(t *testing.T) {
	patients := &repositorytest.PatientRepository{
		GetFn: func(ctx context.Context, id int64) (*model.Patient, error) {
			return &model.Patient{ID: id, FirstName: "Ana", DocumentID: "1234567"}, nil
		},
		ExistsByDocumentFn: func(ctx context.Context, documentID string, excludeID int64) (bool, error) {
			assert.Equal(t, "7654321", documentID)
			assert.Equal(t, int64(5), excludeID)
			return true, nil
		},
	}
	svc := newTestService(patients, &repositorytest.ContactRepository{}, &repositorytest.AppointmentRepository{}, &repositorytest.DiagnosisRepository{}, &repositorytest.RecipeRepository{}, &repositorytest.Transactor{})

	_, err := svc.Update(context.Background(), 5, &model.UpdatePatientRequest{
		DocumentID: strPtr("7654321"),
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConflict))
}

func TestUpdateReconcilesContacts(t *testing.T) {
	existingID := int64(10)
	patients := &repositorytest.PatientRepository{
		GetFn: func(ctx context.Context, id int64) (*model.Patient, error) {
			return &model.Patient{ID: id, DocumentID: "1234567"}, nil
		},
	}
	var insertedPhones []string
	var updated, deleted []int64
	contacts := &repositorytest.ContactRepository{
		ListByPatientFn: func(ctx context.Context, patientID int64) ([]*model.Contact, error) {
			return []*model.Contact{
				{ID: existingID, PatientID: patientID, FirstName: "Old", Phone: "000"},
				{ID: 11, PatientID: patientID, FirstName: "Gone", Phone: "111"},
			}, nil
		},
		InsertFn: func(ctx context.Context, c *model.Contact) error {
			c.ID = 12
			insertedPhones = append(insertedPhones, c.Phone)
			return nil
		},
		UpdateFn: func(ctx context.Context, c *model.Contact) error {
			updated = append(updated, c.ID)
			return nil
		},
		DeleteFn: func(ctx context.Context, id int64) error {
			deleted = append(deleted, id)
			return nil
		},
	}
	svc := newTestService(patients, contacts, &repositorytest.AppointmentRepository{}, &repositorytest.DiagnosisRepository{}, &repositorytest.RecipeRepository{}, &repositorytest.Transactor{})

	incoming := []model.ContactInput{
		{ID: &existingID, FirstName: "Renamed", LastName: "Kept", Phone: "000", RelationshipType: "sibling"},
		{FirstName: "Fresh", LastName: "New", Phone: "222", RelationshipType: "friend"},
	}
	patient, err := svc.Update(context.Background(), 7, &model.UpdatePatientRequest{Contacts: &incoming})

	require.NoError(t, err)
	assert.Equal(t, []string{"222"}, insertedPhones)
	assert.Equal(t, []int64{existingID}, updated)
	assert.Equal(t, []int64{11}, deleted)
	assert.Len(t, patient.Contacts, 2)
}

func TestManageRequiresMedicalHistory(t *testing.T) {
	svc := newTestService(&repositorytest.PatientRepository{}, &repositorytest.ContactRepository{}, &repositorytest.AppointmentRepository{}, &repositorytest.DiagnosisRepository{}, &repositorytest.RecipeRepository{}, &repositorytest.Transactor{})
	birth := model.NewDate(1980, 3, 3)

	for _, history := range []*string{nil, strPtr(""), strPtr("   ")} {
		_, err := svc.Manage(context.Background(), 1, &model.ManagePatientRequest{
			FirstName:      "Ana",
			LastName:       "Lopez",
			BirthDate:      &birth,
			Gender:         "female",
			DocumentID:     "1234567",
			MedicalHistory: history,
		})
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrValidation))
	}
}

func TestDeleteRemovesDependentsFirst(t *testing.T) {
	var order []string
	patients := &repositorytest.PatientRepository{
		DeleteFn: func(ctx context.Context, id int64) error {
			order = append(order, "patient")
			return nil
		},
	}
	contacts := &repositorytest.ContactRepository{
		DeleteByPatientFn: func(ctx context.Context, patientID int64) error {
			order = append(order, "contacts")
			return nil
		},
	}
	appointments := &repositorytest.AppointmentRepository{
		DeleteByPatientFn: func(ctx context.Context, patientID int64) error {
			order = append(order, "appointments")
			return nil
		},
	}
	diagnoses := &repositorytest.DiagnosisRepository{
		DeleteByPatientFn: func(ctx context.Context, patientID int64) error {
			order = append(order, "diagnoses")
			return nil
		},
	}
	recipes := &repositorytest.RecipeRepository{
		DeleteByPatientFn: func(ctx context.Context, patientID int64) error {
			order = append(order, "recipes")
			return nil
		},
	}
	svc := newTestService(patients, contacts, appointments, diagnoses, recipes, &repositorytest.Transactor{})

	err := svc.Delete(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, []string{"recipes", "diagnoses", "appointments", "contacts", "patient"}, order)
}

func TestDeleteUnknownPatient(t *testing.T) {
	patients := &repositorytest.PatientRepository{
		GetSummaryFn: func(ctx context.Context, id int64) (*model.PatientSummary, error) {
			return nil, errors.NotFound("patient", nil)
		},
	}
	svc := newTestService(patients, &repositorytest.ContactRepository{}, &repositorytest.AppointmentRepository{}, &repositorytest.DiagnosisRepository{}, &repositorytest.RecipeRepository{}, &repositorytest.Transactor{})

	err := svc.Delete(context.Background(), 404)

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}
