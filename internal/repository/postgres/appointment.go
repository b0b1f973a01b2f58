package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

const appointmentColumns = `
	a.id, a.patient_id, a.user_id, a.appointment_date, a.appointment_time,
	a.current_illness, a.physical_examination, a.observations, a.laboratory_tests,
	a.temperature, a.blood_pressure, a.heart_rate, a.oxygen_saturation,
	a.weight, a.weight_unit, a.height,
	a.representative_name, a.representative_document, a.contingency_type,
	a.rest_start_date, a.rest_end_date, a.rest_days,
	a.medical_preinscription, a.created_at, a.updated_at`

const patientSummaryColumns = `
	p.first_name AS patient_first_name, p.last_name AS patient_last_name,
	p.document_id AS patient_document_id, p.medical_history AS patient_medical_history`

// appointmentRow carries an appointment joined with its patient summary.
type appointmentRow struct {
	model.Appointment
	PatientFirstName      string  `db:"patient_first_name"`
	PatientLastName       string  `db:"patient_last_name"`
	PatientDocumentID     string  `db:"patient_document_id"`
	PatientMedicalHistory *string `db:"patient_medical_history"`
}

func (r *appointmentRow) toModel() *model.Appointment {
	apt := r.Appointment
	apt.Patient = &model.PatientSummary{
		ID:             apt.PatientID,
		FirstName:      r.PatientFirstName,
		LastName:       r.PatientLastName,
		DocumentID:     r.PatientDocumentID,
		MedicalHistory: r.PatientMedicalHistory,
	}
	return &apt
}

type appointmentRepository struct {
	base
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{base{db: db}}
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO medical.appointments (
			patient_id, user_id, appointment_date, appointment_time,
			current_illness, physical_examination, observations, laboratory_tests,
			temperature, blood_pressure, heart_rate, oxygen_saturation,
			weight, weight_unit, height,
			representative_name, representative_document, contingency_type,
			rest_start_date, rest_end_date, rest_days,
			medical_preinscription, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		          $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id
	`
	apt.CreatedAt = time.Now().UTC()

	err := r.ext(ctx).QueryRowxContext(ctx, query,
		apt.PatientID, apt.UserID, apt.Date, apt.Time,
		apt.CurrentIllness, apt.PhysicalExamination, apt.Observations, apt.LaboratoryTests,
		apt.Temperature, apt.BloodPressure, apt.HeartRate, apt.OxygenSaturation,
		apt.Weight, apt.WeightUnit, apt.Height,
		apt.RepresentativeName, apt.RepresentativeDocument, apt.ContingencyType,
		apt.RestStartDate, apt.RestEndDate, apt.RestDays,
		apt.MedicalPreinscription, apt.CreatedAt,
	).Scan(&apt.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT` + appointmentColumns + ` FROM medical.appointments a WHERE a.id = $1`
	var apt model.Appointment
	if err := sqlx.GetContext(ctx, r.ext(ctx), &apt, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("appointment", err)
		}
		return nil, errors.Internal(err)
	}
	return &apt, nil
}

func (r *appointmentRepository) selectJoined(ctx context.Context, where string, order string, args ...interface{}) ([]*model.Appointment, error) {
	query := `
		SELECT` + appointmentColumns + `,` + patientSummaryColumns + `
		FROM medical.appointments a
		JOIN medical.patients p ON p.id = a.patient_id
		` + where + `
		` + order
	rows := []*appointmentRow{}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &rows, query, args...); err != nil {
		return nil, errors.Internal(err)
	}
	out := make([]*model.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}

func (r *appointmentRepository) List(ctx context.Context, skip, limit int) ([]*model.Appointment, error) {
	return r.selectJoined(ctx, "",
		`ORDER BY a.appointment_date DESC, a.appointment_time DESC OFFSET $1 LIMIT $2`,
		skip, limit)
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID int64, skip, limit int) ([]*model.Appointment, error) {
	return r.selectJoined(ctx, `WHERE a.user_id = $1`,
		`ORDER BY a.appointment_date DESC, a.appointment_time DESC OFFSET $2 LIMIT $3`,
		userID, skip, limit)
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64, skip, limit int) ([]*model.Appointment, error) {
	return r.selectJoined(ctx, `WHERE a.patient_id = $1`,
		`ORDER BY a.appointment_date DESC, a.appointment_time DESC OFFSET $2 LIMIT $3`,
		patientID, skip, limit)
}

func (r *appointmentRepository) ListToday(ctx context.Context) ([]*model.Appointment, error) {
	return r.selectJoined(ctx, `WHERE a.appointment_date = CURRENT_DATE`,
		`ORDER BY a.appointment_time ASC`)
}

func (r *appointmentRepository) ListUpcoming(ctx context.Context, daysAhead, skip, limit int) ([]*model.Appointment, error) {
	return r.selectJoined(ctx,
		`WHERE a.appointment_date >= CURRENT_DATE AND a.appointment_date <= CURRENT_DATE + $1::int`,
		`ORDER BY a.appointment_date ASC, a.appointment_time ASC OFFSET $2 LIMIT $3`,
		daysAhead, skip, limit)
}

func (r *appointmentRepository) CountByPatient(ctx context.Context, patientID int64) (int, error) {
	var count int
	err := sqlx.GetContext(ctx, r.ext(ctx), &count,
		`SELECT COUNT(*) FROM medical.appointments WHERE patient_id = $1`, patientID)
	if err != nil {
		return 0, errors.Internal(err)
	}
	return count, nil
}

// Search combines the free-text criterion (patient name/document or linked
// diagnosis code/description) with the inclusive date bounds, all ANDed.
func (r *appointmentRepository) Search(ctx context.Context, filters *model.AppointmentSearchFilters) ([]*model.Appointment, error) {
	conditions := []string{}
	args := []interface{}{}

	if filters.Query != "" {
		pattern := "%" + filters.Query + "%"
		args = append(args, pattern)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(`(
			p.first_name ILIKE $%d OR p.last_name ILIKE $%d OR p.document_id ILIKE $%d
			OR EXISTS (
				SELECT 1 FROM medical.appointment_diagnoses d
				WHERE d.appointment_id = a.id
				  AND (d.diagnosis_code ILIKE $%d OR d.diagnosis_description ILIKE $%d)
			))`, n, n, n, n, n))
	}
	if filters.StartDate != nil {
		args = append(args, *filters.StartDate)
		conditions = append(conditions, fmt.Sprintf("a.appointment_date >= $%d", len(args)))
	}
	if filters.EndDate != nil {
		args = append(args, *filters.EndDate)
		conditions = append(conditions, fmt.Sprintf("a.appointment_date <= $%d", len(args)))
	}

	where := "WHERE " + strings.Join(conditions, " AND ")
	args = append(args, filters.Skip, filters.Limit)
	order := fmt.Sprintf(
		"ORDER BY a.appointment_date DESC, a.appointment_time DESC OFFSET $%d LIMIT $%d",
		len(args)-1, len(args),
	)

	return r.selectJoined(ctx, where, order, args...)
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	// user_id is deliberately absent: the attending doctor is immutable.
	query := `
		UPDATE medical.appointments SET
			patient_id = $1, appointment_date = $2, appointment_time = $3,
			current_illness = $4, physical_examination = $5, observations = $6,
			laboratory_tests = $7, temperature = $8, blood_pressure = $9,
			heart_rate = $10, oxygen_saturation = $11, weight = $12,
			weight_unit = $13, height = $14,
			representative_name = $15, representative_document = $16,
			contingency_type = $17, rest_start_date = $18, rest_end_date = $19,
			rest_days = $20, medical_preinscription = $21, updated_at = $22
		WHERE id = $23
	`
	now := time.Now().UTC()
	apt.UpdatedAt = &now

	res, err := r.ext(ctx).ExecContext(ctx, query,
		apt.PatientID, apt.Date, apt.Time,
		apt.CurrentIllness, apt.PhysicalExamination, apt.Observations,
		apt.LaboratoryTests, apt.Temperature, apt.BloodPressure,
		apt.HeartRate, apt.OxygenSaturation, apt.Weight,
		apt.WeightUnit, apt.Height,
		apt.RepresentativeName, apt.RepresentativeDocument,
		apt.ContingencyType, apt.RestStartDate, apt.RestEndDate,
		apt.RestDays, apt.MedicalPreinscription, apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM medical.appointments WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) DeleteByPatient(ctx context.Context, patientID int64) error {
	_, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM medical.appointments WHERE patient_id = $1`, patientID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

// SlotTaken reports whether another appointment already occupies the exact
// (date, time) pair, system-wide. Pass excludeID = 0 when creating.
func (r *appointmentRepository) SlotTaken(ctx context.Context, date model.Date, t model.TimeOfDay, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM medical.appointments
			WHERE appointment_date = $1 AND appointment_time = $2 AND id <> $3
		)
	`
	var taken bool
	if err := sqlx.GetContext(ctx, r.ext(ctx), &taken, query, date, t, excludeID); err != nil {
		return false, errors.Internal(err)
	}
	return taken, nil
}

func (r *appointmentRepository) ExistsByUser(ctx context.Context, userID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM medical.appointments WHERE user_id = $1)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.ext(ctx), &exists, query, userID); err != nil {
		return false, errors.Internal(err)
	}
	return exists, nil
}
