package contact

import (
	"context"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
)

type Service interface {
	ListByPatient(ctx context.Context, patientID int64) ([]*model.Contact, error)
}

type service struct {
	contacts repository.ContactRepository
	patients repository.PatientRepository
}

func NewService(contacts repository.ContactRepository, patients repository.PatientRepository) Service {
	return &service{contacts: contacts, patients: patients}
}

func (s *service) ListByPatient(ctx context.Context, patientID int64) ([]*model.Contact, error) {
	if _, err := s.patients.GetSummary(ctx, patientID); err != nil {
		return nil, err
	}
	return s.contacts.ListByPatient(ctx, patientID)
}
