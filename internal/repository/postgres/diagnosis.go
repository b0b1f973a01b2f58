package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

type diagnosisRepository struct {
	base
}

func NewDiagnosisRepository(db *sqlx.DB) repository.DiagnosisRepository {
	return &diagnosisRepository{base{db: db}}
}

func (r *diagnosisRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Diagnosis, error) {
	query := `
		SELECT id, appointment_id, diagnosis_code, diagnosis_description,
		       diagnosis_type, diagnosis_observations, created_at
		FROM medical.appointment_diagnoses
		WHERE appointment_id = $1
		ORDER BY id ASC
	`
	diagnoses := []*model.Diagnosis{}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &diagnoses, query, appointmentID); err != nil {
		return nil, errors.Internal(err)
	}
	return diagnoses, nil
}

func (r *diagnosisRepository) Insert(ctx context.Context, d *model.Diagnosis) error {
	query := `
		INSERT INTO medical.appointment_diagnoses (
			appointment_id, diagnosis_code, diagnosis_description,
			diagnosis_type, diagnosis_observations, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	d.CreatedAt = time.Now().UTC()
	err := r.ext(ctx).QueryRowxContext(ctx, query,
		d.AppointmentID, d.Code, d.Description, d.Type, d.Observations, d.CreatedAt,
	).Scan(&d.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *diagnosisRepository) Update(ctx context.Context, d *model.Diagnosis) error {
	query := `
		UPDATE medical.appointment_diagnoses
		SET diagnosis_code = $1, diagnosis_description = $2,
		    diagnosis_type = $3, diagnosis_observations = $4
		WHERE id = $5
	`
	res, err := r.ext(ctx).ExecContext(ctx, query, d.Code, d.Description, d.Type, d.Observations, d.ID)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("diagnosis", nil)
	}
	return nil
}

func (r *diagnosisRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ext(ctx).ExecContext(ctx,
		`DELETE FROM medical.appointment_diagnoses WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *diagnosisRepository) DeleteByAppointment(ctx context.Context, appointmentID int64) error {
	_, err := r.ext(ctx).ExecContext(ctx,
		`DELETE FROM medical.appointment_diagnoses WHERE appointment_id = $1`, appointmentID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *diagnosisRepository) DeleteByPatient(ctx context.Context, patientID int64) error {
	query := `
		DELETE FROM medical.appointment_diagnoses
		WHERE appointment_id IN (
			SELECT id FROM medical.appointments WHERE patient_id = $1
		)
	`
	if _, err := r.ext(ctx).ExecContext(ctx, query, patientID); err != nil {
		return translateError(err)
	}
	return nil
}
