package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

const patientColumns = `
	id, first_name, last_name, birth_date, gender, document_id,
	marital_status, occupation, education, origin, province, city,
	neighborhood, street, house_number, medical_history, notes,
	enterprise, work_activity, created_at, updated_at`

type patientRepository struct {
	base
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{base{db: db}}
}

func (r *patientRepository) Create(ctx context.Context, p *model.Patient) error {
	query := `
		INSERT INTO medical.patients (
			first_name, last_name, birth_date, gender, document_id,
			marital_status, occupation, education, origin, province, city,
			neighborhood, street, house_number, medical_history, notes,
			enterprise, work_activity, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id
	`
	p.CreatedAt = time.Now().UTC()

	err := r.ext(ctx).QueryRowxContext(ctx, query,
		p.FirstName, p.LastName, p.BirthDate, p.Gender, p.DocumentID,
		p.MaritalStatus, p.Occupation, p.Education, p.Origin, p.Province, p.City,
		p.Neighborhood, p.Street, p.HouseNumber, p.MedicalHistory, p.Notes,
		p.Enterprise, p.WorkActivity, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT` + patientColumns + ` FROM medical.patients WHERE id = $1`
	var p model.Patient
	if err := sqlx.GetContext(ctx, r.ext(ctx), &p, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("patient", err)
		}
		return nil, errors.Internal(err)
	}
	return &p, nil
}

func (r *patientRepository) GetSummary(ctx context.Context, id int64) (*model.PatientSummary, error) {
	query := `SELECT id, first_name, last_name, document_id, medical_history FROM medical.patients WHERE id = $1`
	var s model.PatientSummary
	if err := sqlx.GetContext(ctx, r.ext(ctx), &s, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("patient", err)
		}
		return nil, errors.Internal(err)
	}
	return &s, nil
}

func (r *patientRepository) List(ctx context.Context, skip, limit int) ([]*model.Patient, error) {
	query := `SELECT` + patientColumns + ` FROM medical.patients ORDER BY id ASC OFFSET $1 LIMIT $2`
	patients := []*model.Patient{}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &patients, query, skip, limit); err != nil {
		return nil, errors.Internal(err)
	}
	return patients, nil
}

// Search matches the query as a case-insensitive substring of first name,
// last name or document id. Ordering is by id so results are deterministic.
func (r *patientRepository) Search(ctx context.Context, query string, skip, limit int) ([]*model.Patient, error) {
	q := `
		SELECT` + patientColumns + `
		FROM medical.patients
		WHERE (first_name IS NOT NULL AND first_name ILIKE $1)
		   OR (last_name IS NOT NULL AND last_name ILIKE $1)
		   OR (document_id IS NOT NULL AND document_id ILIKE $1)
		ORDER BY id ASC
		OFFSET $2 LIMIT $3
	`
	patients := []*model.Patient{}
	pattern := "%" + query + "%"
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &patients, q, pattern, skip, limit); err != nil {
		return nil, errors.Internal(err)
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := sqlx.GetContext(ctx, r.ext(ctx), &count, `SELECT COUNT(*) FROM medical.patients`); err != nil {
		return 0, errors.Internal(err)
	}
	return count, nil
}

func (r *patientRepository) Update(ctx context.Context, p *model.Patient) error {
	query := `
		UPDATE medical.patients SET
			first_name = $1, last_name = $2, birth_date = $3, gender = $4,
			document_id = $5, marital_status = $6, occupation = $7,
			education = $8, origin = $9, province = $10, city = $11,
			neighborhood = $12, street = $13, house_number = $14,
			medical_history = $15, notes = $16, enterprise = $17,
			work_activity = $18, updated_at = $19
		WHERE id = $20
	`
	now := time.Now().UTC()
	p.UpdatedAt = &now

	res, err := r.ext(ctx).ExecContext(ctx, query,
		p.FirstName, p.LastName, p.BirthDate, p.Gender,
		p.DocumentID, p.MaritalStatus, p.Occupation,
		p.Education, p.Origin, p.Province, p.City,
		p.Neighborhood, p.Street, p.HouseNumber,
		p.MedicalHistory, p.Notes, p.Enterprise,
		p.WorkActivity, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM medical.patients WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) ExistsByDocument(ctx context.Context, documentID string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM medical.patients WHERE document_id = $1 AND id <> $2)`
	var exists bool
	if err := sqlx.GetContext(ctx, r.ext(ctx), &exists, query, documentID, excludeID); err != nil {
		return false, errors.Internal(err)
	}
	return exists, nil
}
