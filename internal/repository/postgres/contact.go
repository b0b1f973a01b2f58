package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

type contactRepository struct {
	base
}

func NewContactRepository(db *sqlx.DB) repository.ContactRepository {
	return &contactRepository{base{db: db}}
}

func (r *contactRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Contact, error) {
	query := `
		SELECT id, patient_id, first_name, last_name, phone, email,
		       relationship_type, document_id, created_at
		FROM medical.contacts
		WHERE patient_id = $1
		ORDER BY id ASC
	`
	contacts := []*model.Contact{}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &contacts, query, patientID); err != nil {
		return nil, errors.Internal(err)
	}
	return contacts, nil
}

func (r *contactRepository) Insert(ctx context.Context, c *model.Contact) error {
	query := `
		INSERT INTO medical.contacts (
			patient_id, first_name, last_name, phone, email,
			relationship_type, document_id, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	c.CreatedAt = time.Now().UTC()

	err := r.ext(ctx).QueryRowxContext(ctx, query,
		c.PatientID, c.FirstName, c.LastName, c.Phone, c.Email,
		c.RelationshipType, c.DocumentID, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *contactRepository) Update(ctx context.Context, c *model.Contact) error {
	query := `
		UPDATE medical.contacts SET
			first_name = $1, last_name = $2, phone = $3, email = $4,
			relationship_type = $5, document_id = $6
		WHERE id = $7
	`
	_, err := r.ext(ctx).ExecContext(ctx, query,
		c.FirstName, c.LastName, c.Phone, c.Email,
		c.RelationshipType, c.DocumentID, c.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM medical.contacts WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *contactRepository) DeleteByPatient(ctx context.Context, patientID int64) error {
	_, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM medical.contacts WHERE patient_id = $1`, patientID)
	if err != nil {
		return translateError(err)
	}
	return nil
}
