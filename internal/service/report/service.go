package report

import (
	"context"
	"encoding/base64"
	"os"
	"strconv"

	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
	"github.com/fenixclinic/clinic-api/pkg/report"
)

// Template names shipped in the report template directory.
const (
	templateMedicalHistory     = "medical_history"
	templateMedicalCertificate = "medical_certificate"
	templateRecipe             = "recipe"
)

// Document is a generated PDF held as a base64 payload for JSON transport.
type Document struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

type Service interface {
	MedicalHistory(ctx context.Context, patientID int64) (*Document, error)
	MedicalCertificate(ctx context.Context, appointmentID int64) (*report.File, error)
	Recipe(ctx context.Context, appointmentID int64) (*report.File, error)

	// ScheduleCleanup removes a generated file after the configured delay.
	ScheduleCleanup(f *report.File)
}

type service struct {
	generator    *report.Generator
	patients     repository.PatientRepository
	appointments repository.AppointmentRepository
}

func NewService(generator *report.Generator, patients repository.PatientRepository, appointments repository.AppointmentRepository) Service {
	return &service{
		generator:    generator,
		patients:     patients,
		appointments: appointments,
	}
}

// MedicalHistory renders the full encounter history of a patient. The PDF
// comes back base64-encoded inside a JSON envelope, which is what the
// frontend viewer consumes.
func (s *service) MedicalHistory(ctx context.Context, patientID int64) (*Document, error) {
	if _, err := s.patients.GetSummary(ctx, patientID); err != nil {
		return nil, err
	}

	f, err := s.generator.Generate(ctx, templateMedicalHistory, map[string]string{
		"filtro": strconv.FormatInt(patientID, 10),
	})
	if err != nil {
		return nil, err
	}
	defer s.generator.ScheduleCleanup(f)

	content, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errors.Internal(err)
	}

	return &Document{
		Filename: f.Name,
		Content:  base64.StdEncoding.EncodeToString(content),
		Encoding: "base64",
	}, nil
}

func (s *service) MedicalCertificate(ctx context.Context, appointmentID int64) (*report.File, error) {
	return s.generateForAppointment(ctx, templateMedicalCertificate, appointmentID)
}

func (s *service) Recipe(ctx context.Context, appointmentID int64) (*report.File, error) {
	return s.generateForAppointment(ctx, templateRecipe, appointmentID)
}

func (s *service) generateForAppointment(ctx context.Context, template string, appointmentID int64) (*report.File, error) {
	if _, err := s.appointments.Get(ctx, appointmentID); err != nil {
		return nil, err
	}
	return s.generator.Generate(ctx, template, map[string]string{
		"filtro": strconv.FormatInt(appointmentID, 10),
	})
}

func (s *service) ScheduleCleanup(f *report.File) {
	s.generator.ScheduleCleanup(f)
}
