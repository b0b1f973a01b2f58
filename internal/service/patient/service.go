package patient

import (
	"context"
	"strings"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/reconcile"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

type Service interface {
	Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error)
	Get(ctx context.Context, id int64) (*model.Patient, error)
	List(ctx context.Context, skip, limit int) ([]*model.Patient, int, error)
	Search(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error)
	Count(ctx context.Context) (int, error)
	Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error)
	Manage(ctx context.Context, id int64, req *model.ManagePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	patients     repository.PatientRepository
	contacts     repository.ContactRepository
	appointments repository.AppointmentRepository
	diagnoses    repository.DiagnosisRepository
	recipes      repository.RecipeRepository
	tx           repository.Transactor
}

func NewService(
	patients repository.PatientRepository,
	contacts repository.ContactRepository,
	appointments repository.AppointmentRepository,
	diagnoses repository.DiagnosisRepository,
	recipes repository.RecipeRepository,
	tx repository.Transactor,
) Service {
	return &service{
		patients:     patients,
		contacts:     contacts,
		appointments: appointments,
		diagnoses:    diagnoses,
		recipes:      recipes,
		tx:           tx,
	}
}

func (s *service) Create(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	exists, err := s.patients.ExistsByDocument(ctx, req.DocumentID, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.Conflict("a patient with this document id already exists", nil)
	}

	patient := &model.Patient{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      req.BirthDate,
		Gender:         req.Gender,
		DocumentID:     req.DocumentID,
		MaritalStatus:  req.MaritalStatus,
		Occupation:     req.Occupation,
		Education:      req.Education,
		Origin:         req.Origin,
		Province:       req.Province,
		City:           req.City,
		Neighborhood:   req.Neighborhood,
		Street:         req.Street,
		HouseNumber:    req.HouseNumber,
		MedicalHistory: req.MedicalHistory,
		Notes:          req.Notes,
		Enterprise:     req.Enterprise,
		WorkActivity:   req.WorkActivity,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.patients.Create(ctx, patient); err != nil {
			return err
		}
		for _, input := range req.Contacts {
			contact := contactFromInput(patient.ID, input)
			if err := s.contacts.Insert(ctx, contact); err != nil {
				return err
			}
			patient.Contacts = append(patient.Contacts, contact)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	contacts, err := s.contacts.ListByPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	patient.Contacts = contacts
	return patient, nil
}

func (s *service) List(ctx context.Context, skip, limit int) ([]*model.Patient, int, error) {
	patients, err := s.patients.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.patients.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

// Search delegates the ILIKE match to storage, then re-checks each row
// against the criterion so a looser collation can never widen the result.
func (s *service) Search(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error) {
	patients, err := s.patients.Search(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]*model.Patient, 0, len(patients))
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.FirstName), needle) ||
			strings.Contains(strings.ToLower(p.LastName), needle) ||
			strings.Contains(strings.ToLower(p.DocumentID), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	return s.patients.Count(ctx)
}

func (s *service) Update(ctx context.Context, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DocumentID != nil && *req.DocumentID != patient.DocumentID {
		exists, err := s.patients.ExistsByDocument(ctx, *req.DocumentID, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.Conflict("a patient with this document id already exists", nil)
		}
		patient.DocumentID = *req.DocumentID
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyOptional := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}

	applyString(&patient.FirstName, req.FirstName)
	applyString(&patient.LastName, req.LastName)
	applyString(&patient.Gender, req.Gender)
	if req.BirthDate != nil {
		patient.BirthDate = req.BirthDate
	}
	applyOptional(&patient.MaritalStatus, req.MaritalStatus)
	applyOptional(&patient.Occupation, req.Occupation)
	applyOptional(&patient.Education, req.Education)
	applyOptional(&patient.Origin, req.Origin)
	applyOptional(&patient.Province, req.Province)
	applyOptional(&patient.City, req.City)
	applyOptional(&patient.Neighborhood, req.Neighborhood)
	applyOptional(&patient.Street, req.Street)
	applyOptional(&patient.HouseNumber, req.HouseNumber)
	applyOptional(&patient.MedicalHistory, req.MedicalHistory)
	applyOptional(&patient.Notes, req.Notes)
	applyOptional(&patient.Enterprise, req.Enterprise)
	applyOptional(&patient.WorkActivity, req.WorkActivity)

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.patients.Update(ctx, patient); err != nil {
			return err
		}
		if req.Contacts != nil {
			reconciled, err := s.reconcileContacts(ctx, patient.ID, patient.Contacts, *req.Contacts)
			if err != nil {
				return err
			}
			patient.Contacts = reconciled
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patient, nil
}

// Manage is the clinical management flow: a full overwrite that additionally
// requires the medical history to be recorded.
func (s *service) Manage(ctx context.Context, id int64, req *model.ManagePatientRequest) (*model.Patient, error) {
	if req.MedicalHistory == nil || strings.TrimSpace(*req.MedicalHistory) == "" {
		return nil, errors.Validation("medical history is required to manage a patient", nil)
	}

	patient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DocumentID != patient.DocumentID {
		exists, err := s.patients.ExistsByDocument(ctx, req.DocumentID, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.Conflict("a patient with this document id already exists", nil)
		}
	}

	existing := patient.Contacts

	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	patient.BirthDate = req.BirthDate
	patient.Gender = req.Gender
	patient.DocumentID = req.DocumentID
	patient.MaritalStatus = req.MaritalStatus
	patient.Occupation = req.Occupation
	patient.Education = req.Education
	patient.Origin = req.Origin
	patient.Province = req.Province
	patient.City = req.City
	patient.Neighborhood = req.Neighborhood
	patient.Street = req.Street
	patient.HouseNumber = req.HouseNumber
	patient.MedicalHistory = req.MedicalHistory
	patient.Notes = req.Notes
	patient.Enterprise = req.Enterprise
	patient.WorkActivity = req.WorkActivity

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.patients.Update(ctx, patient); err != nil {
			return err
		}
		reconciled, err := s.reconcileContacts(ctx, patient.ID, existing, req.Contacts)
		if err != nil {
			return err
		}
		patient.Contacts = reconciled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.patients.GetSummary(ctx, id); err != nil {
		return err
	}

	// Children first: recipes and diagnoses hang off the appointments,
	// contacts off the patient.
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.recipes.DeleteByPatient(ctx, id); err != nil {
			return err
		}
		if err := s.diagnoses.DeleteByPatient(ctx, id); err != nil {
			return err
		}
		if err := s.appointments.DeleteByPatient(ctx, id); err != nil {
			return err
		}
		if err := s.contacts.DeleteByPatient(ctx, id); err != nil {
			return err
		}
		return s.patients.Delete(ctx, id)
	})
}

func (s *service) reconcileContacts(ctx context.Context, patientID int64, existing []*model.Contact, incoming []model.ContactInput) ([]*model.Contact, error) {
	return reconcile.Apply(ctx, existing, incoming, reconcile.Config[*model.Contact, model.ContactInput]{
		ExistingID: func(c *model.Contact) int64 { return c.ID },
		IncomingID: func(in model.ContactInput) *int64 { return in.ID },
		Update: func(c *model.Contact, in model.ContactInput) bool {
			changed := c.FirstName != in.FirstName ||
				c.LastName != in.LastName ||
				c.Phone != in.Phone ||
				c.RelationshipType != in.RelationshipType ||
				!equalOptional(c.Email, in.Email) ||
				!equalOptional(c.DocumentID, in.DocumentID)
			if changed {
				c.FirstName = in.FirstName
				c.LastName = in.LastName
				c.Phone = in.Phone
				c.RelationshipType = in.RelationshipType
				c.Email = in.Email
				c.DocumentID = in.DocumentID
			}
			return changed
		},
		Insert: func(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
			contact := contactFromInput(patientID, in)
			if err := s.contacts.Insert(ctx, contact); err != nil {
				return nil, err
			}
			return contact, nil
		},
		Save:   s.contacts.Update,
		Delete: s.contacts.Delete,
	})
}

func contactFromInput(patientID int64, in model.ContactInput) *model.Contact {
	return &model.Contact{
		PatientID:        patientID,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Phone:            in.Phone,
		Email:            in.Email,
		RelationshipType: in.RelationshipType,
		DocumentID:       in.DocumentID,
	}
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
