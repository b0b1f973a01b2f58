package appointment

import (
	"context"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/reconcile"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

// UpcomingDays is the horizon of the upcoming-appointments listing.
const UpcomingDays = 7

type Service interface {
	Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error)
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	List(ctx context.Context, skip, limit int) ([]*model.Appointment, error)
	ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID int64, skip, limit int) ([]*model.Appointment, error)
	ListToday(ctx context.Context) ([]*model.Appointment, error)
	ListUpcoming(ctx context.Context, skip, limit int) ([]*model.Appointment, error)
	CountByPatient(ctx context.Context, patientID int64) (int, error)
	Search(ctx context.Context, filters *model.AppointmentSearchFilters) ([]*model.Appointment, error)
	Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	Manage(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	appointments repository.AppointmentRepository
	diagnoses    repository.DiagnosisRepository
	recipes      repository.RecipeRepository
	patients     repository.PatientRepository
	users        repository.UserRepository
	tx           repository.Transactor
}

func NewService(
	appointments repository.AppointmentRepository,
	diagnoses repository.DiagnosisRepository,
	recipes repository.RecipeRepository,
	patients repository.PatientRepository,
	users repository.UserRepository,
	tx repository.Transactor,
) Service {
	return &service{
		appointments: appointments,
		diagnoses:    diagnoses,
		recipes:      recipes,
		patients:     patients,
		users:        users,
		tx:           tx,
	}
}

func (s *service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.patients.GetSummary(ctx, req.PatientID); err != nil {
		return nil, err
	}
	if _, err := s.users.GetSummary(ctx, req.UserID); err != nil {
		return nil, err
	}

	t, err := model.ParseTimeOfDay(string(req.Time))
	if err != nil {
		return nil, errors.Validation(err.Error(), err)
	}

	if err := s.checkSlotAvailable(ctx, req.Date, t, 0); err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		PatientID:              req.PatientID,
		UserID:                 req.UserID,
		Date:                   req.Date,
		Time:                   t,
		CurrentIllness:         req.CurrentIllness,
		PhysicalExamination:    req.PhysicalExamination,
		Observations:           req.Observations,
		LaboratoryTests:        req.LaboratoryTests,
		Temperature:            req.Temperature,
		BloodPressure:          req.BloodPressure,
		HeartRate:              req.HeartRate,
		OxygenSaturation:       req.OxygenSaturation,
		Weight:                 req.Weight,
		WeightUnit:             req.WeightUnit,
		Height:                 req.Height,
		RepresentativeName:     req.RepresentativeName,
		RepresentativeDocument: req.RepresentativeDocument,
		ContingencyType:        req.ContingencyType,
		RestStartDate:          req.RestStartDate,
		RestEndDate:            req.RestEndDate,
		RestDays:               req.RestDays,
		MedicalPreinscription:  req.MedicalPreinscription,
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.appointments.Create(ctx, apt); err != nil {
			return err
		}
		for _, input := range req.Diagnoses {
			d := diagnosisFromInput(apt.ID, input)
			if err := s.diagnoses.Insert(ctx, d); err != nil {
				return err
			}
			apt.Diagnoses = append(apt.Diagnoses, d)
		}
		for _, input := range req.Recipes {
			rec := recipeFromInput(apt.ID, input)
			if err := s.recipes.Insert(ctx, rec); err != nil {
				return err
			}
			apt.Recipes = append(apt.Recipes, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, apt.ID)
}

// Get returns the appointment with its children and the patient and doctor
// summaries attached.
func (s *service) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Patient, err = s.patients.GetSummary(ctx, apt.PatientID); err != nil {
		return nil, err
	}
	if apt.User, err = s.users.GetSummary(ctx, apt.UserID); err != nil {
		return nil, err
	}
	if apt.Diagnoses, err = s.diagnoses.ListByAppointment(ctx, id); err != nil {
		return nil, err
	}
	if apt.Recipes, err = s.recipes.ListByAppointment(ctx, id); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *service) List(ctx context.Context, skip, limit int) ([]*model.Appointment, error) {
	return s.appointments.List(ctx, skip, limit)
}

func (s *service) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*model.Appointment, error) {
	if _, err := s.users.GetSummary(ctx, userID); err != nil {
		return nil, err
	}
	return s.appointments.ListByUser(ctx, userID, skip, limit)
}

func (s *service) ListByPatient(ctx context.Context, patientID int64, skip, limit int) ([]*model.Appointment, error) {
	if _, err := s.patients.GetSummary(ctx, patientID); err != nil {
		return nil, err
	}
	return s.appointments.ListByPatient(ctx, patientID, skip, limit)
}

func (s *service) ListToday(ctx context.Context) ([]*model.Appointment, error) {
	return s.appointments.ListToday(ctx)
}

func (s *service) ListUpcoming(ctx context.Context, skip, limit int) ([]*model.Appointment, error) {
	return s.appointments.ListUpcoming(ctx, UpcomingDays, skip, limit)
}

func (s *service) CountByPatient(ctx context.Context, patientID int64) (int, error) {
	if _, err := s.patients.GetSummary(ctx, patientID); err != nil {
		return 0, err
	}
	return s.appointments.CountByPatient(ctx, patientID)
}

func (s *service) Search(ctx context.Context, filters *model.AppointmentSearchFilters) ([]*model.Appointment, error) {
	if filters.Empty() {
		return nil, errors.Validation("at least one search criterion is required", nil)
	}
	return s.appointments.Search(ctx, filters)
}

// Update reschedules and edits an appointment. The attending doctor is
// immutable; the slot check runs against the effective date and time so a
// partial reschedule still cannot land on an occupied slot.
func (s *service) Update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	return s.update(ctx, id, req, false)
}

// Manage is the clinical management flow. The slot check runs only when the
// request reschedules both the date and the time.
func (s *service) Manage(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	return s.update(ctx, id, req, true)
}

func (s *service) update(ctx context.Context, id int64, req *model.UpdateAppointmentRequest, requireBothForSlotCheck bool) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PatientID != nil && *req.PatientID != apt.PatientID {
		if _, err := s.patients.GetSummary(ctx, *req.PatientID); err != nil {
			return nil, err
		}
		apt.PatientID = *req.PatientID
	}

	rescheduled := false
	if req.Date != nil && !req.Date.Equal(apt.Date) {
		apt.Date = *req.Date
		rescheduled = true
	}
	if req.Time != nil {
		t, err := model.ParseTimeOfDay(string(*req.Time))
		if err != nil {
			return nil, errors.Validation(err.Error(), err)
		}
		if t != apt.Time {
			apt.Time = t
			rescheduled = true
		}
	}
	if rescheduled {
		check := true
		if requireBothForSlotCheck {
			check = req.Date != nil && req.Time != nil
		}
		if check {
			if err := s.checkSlotAvailable(ctx, apt.Date, apt.Time, apt.ID); err != nil {
				return nil, err
			}
		}
	}

	applyOptional := func(dst **string, src *string) {
		if src != nil {
			*dst = src
		}
	}
	applyOptional(&apt.CurrentIllness, req.CurrentIllness)
	applyOptional(&apt.PhysicalExamination, req.PhysicalExamination)
	applyOptional(&apt.Observations, req.Observations)
	applyOptional(&apt.LaboratoryTests, req.LaboratoryTests)
	applyOptional(&apt.Temperature, req.Temperature)
	applyOptional(&apt.BloodPressure, req.BloodPressure)
	applyOptional(&apt.HeartRate, req.HeartRate)
	applyOptional(&apt.OxygenSaturation, req.OxygenSaturation)
	if req.Weight != nil {
		apt.Weight = req.Weight
	}
	applyOptional(&apt.WeightUnit, req.WeightUnit)
	applyOptional(&apt.Height, req.Height)
	applyOptional(&apt.RepresentativeName, req.RepresentativeName)
	applyOptional(&apt.RepresentativeDocument, req.RepresentativeDocument)
	applyOptional(&apt.ContingencyType, req.ContingencyType)
	if req.RestStartDate != nil {
		apt.RestStartDate = req.RestStartDate
	}
	if req.RestEndDate != nil {
		apt.RestEndDate = req.RestEndDate
	}
	if req.RestDays != nil {
		apt.RestDays = req.RestDays
	}
	applyOptional(&apt.MedicalPreinscription, req.MedicalPreinscription)

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.appointments.Update(ctx, apt); err != nil {
			return err
		}
		if req.Diagnoses != nil {
			existing, err := s.diagnoses.ListByAppointment(ctx, apt.ID)
			if err != nil {
				return err
			}
			if _, err := s.reconcileDiagnoses(ctx, apt.ID, existing, *req.Diagnoses); err != nil {
				return err
			}
		}
		if req.Recipes != nil {
			existing, err := s.recipes.ListByAppointment(ctx, apt.ID)
			if err != nil {
				return err
			}
			if _, err := s.reconcileRecipes(ctx, apt.ID, existing, *req.Recipes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, apt.ID)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.appointments.Get(ctx, id); err != nil {
		return err
	}
	return s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.diagnoses.DeleteByAppointment(ctx, id); err != nil {
			return err
		}
		if err := s.recipes.DeleteByAppointment(ctx, id); err != nil {
			return err
		}
		return s.appointments.Delete(ctx, id)
	})
}

// checkSlotAvailable gives the friendly pre-check message; the unique
// constraint on (date, time) is the guarantee under concurrent writers.
func (s *service) checkSlotAvailable(ctx context.Context, date model.Date, t model.TimeOfDay, excludeID int64) error {
	taken, err := s.appointments.SlotTaken(ctx, date, t, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return errors.Conflict("an appointment already exists at this date and time", nil)
	}
	return nil
}

func (s *service) reconcileDiagnoses(ctx context.Context, appointmentID int64, existing []*model.Diagnosis, incoming []model.DiagnosisInput) ([]*model.Diagnosis, error) {
	return reconcile.Apply(ctx, existing, incoming, reconcile.Config[*model.Diagnosis, model.DiagnosisInput]{
		ExistingID: func(d *model.Diagnosis) int64 { return d.ID },
		IncomingID: func(in model.DiagnosisInput) *int64 { return in.ID },
		Update: func(d *model.Diagnosis, in model.DiagnosisInput) bool {
			typ := diagnosisType(in.Type)
			changed := d.Code != in.Code ||
				d.Description != in.Description ||
				d.Type != typ ||
				!equalOptional(d.Observations, in.Observations)
			if changed {
				d.Code = in.Code
				d.Description = in.Description
				d.Type = typ
				d.Observations = in.Observations
			}
			return changed
		},
		Insert: func(ctx context.Context, in model.DiagnosisInput) (*model.Diagnosis, error) {
			d := diagnosisFromInput(appointmentID, in)
			if err := s.diagnoses.Insert(ctx, d); err != nil {
				return nil, err
			}
			return d, nil
		},
		Save:   s.diagnoses.Update,
		Delete: s.diagnoses.Delete,
	})
}

func (s *service) reconcileRecipes(ctx context.Context, appointmentID int64, existing []*model.Recipe, incoming []model.RecipeInput) ([]*model.Recipe, error) {
	return reconcile.Apply(ctx, existing, incoming, reconcile.Config[*model.Recipe, model.RecipeInput]{
		ExistingID: func(r *model.Recipe) int64 { return r.ID },
		IncomingID: func(in model.RecipeInput) *int64 { return in.ID },
		Update: func(r *model.Recipe, in model.RecipeInput) bool {
			changed := r.Medicine != in.Medicine ||
				r.Amount != in.Amount ||
				r.Instructions != in.Instructions ||
				!equalOptional(r.LunchTime, in.LunchTime) ||
				!equalOptional(r.Observations, in.Observations)
			if changed {
				r.Medicine = in.Medicine
				r.Amount = in.Amount
				r.Instructions = in.Instructions
				r.LunchTime = in.LunchTime
				r.Observations = in.Observations
			}
			return changed
		},
		Insert: func(ctx context.Context, in model.RecipeInput) (*model.Recipe, error) {
			rec := recipeFromInput(appointmentID, in)
			if err := s.recipes.Insert(ctx, rec); err != nil {
				return nil, err
			}
			return rec, nil
		},
		Save:   s.recipes.Update,
		Delete: s.recipes.Delete,
	})
}

func diagnosisFromInput(appointmentID int64, in model.DiagnosisInput) *model.Diagnosis {
	return &model.Diagnosis{
		AppointmentID: appointmentID,
		Code:          in.Code,
		Description:   in.Description,
		Type:          diagnosisType(in.Type),
		Observations:  in.Observations,
	}
}

// A diagnosis submitted without a type is recorded as secondary; primary
// must be stated explicitly.
func diagnosisType(t *string) string {
	if t == nil || *t == "" {
		return model.DiagnosisTypeSecondary
	}
	return *t
}

func recipeFromInput(appointmentID int64, in model.RecipeInput) *model.Recipe {
	return &model.Recipe{
		AppointmentID: appointmentID,
		Medicine:      in.Medicine,
		Amount:        in.Amount,
		Instructions:  in.Instructions,
		LunchTime:     in.LunchTime,
		Observations:  in.Observations,
	}
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
