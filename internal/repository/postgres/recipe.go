package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fenixclinic/clinic-api/internal/model"
	"github.com/fenixclinic/clinic-api/internal/repository"
	"github.com/fenixclinic/clinic-api/pkg/errors"
)

type recipeRepository struct {
	base
}

func NewRecipeRepository(db *sqlx.DB) repository.RecipeRepository {
	return &recipeRepository{base{db: db}}
}

func (r *recipeRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Recipe, error) {
	query := `
		SELECT id, appointment_id, medicine, amount, instructions, lunch_time, observations
		FROM medical.recipe
		WHERE appointment_id = $1
		ORDER BY id ASC
	`
	recipes := []*model.Recipe{}
	if err := sqlx.SelectContext(ctx, r.ext(ctx), &recipes, query, appointmentID); err != nil {
		return nil, errors.Internal(err)
	}
	return recipes, nil
}

func (r *recipeRepository) Insert(ctx context.Context, rec *model.Recipe) error {
	query := `
		INSERT INTO medical.recipe (
			appointment_id, medicine, amount, instructions, lunch_time, observations
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.ext(ctx).QueryRowxContext(ctx, query,
		rec.AppointmentID, rec.Medicine, rec.Amount, rec.Instructions,
		rec.LunchTime, rec.Observations,
	).Scan(&rec.ID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *recipeRepository) Update(ctx context.Context, rec *model.Recipe) error {
	query := `
		UPDATE medical.recipe
		SET medicine = $1, amount = $2, instructions = $3, lunch_time = $4, observations = $5
		WHERE id = $6
	`
	res, err := r.ext(ctx).ExecContext(ctx, query,
		rec.Medicine, rec.Amount, rec.Instructions, rec.LunchTime, rec.Observations, rec.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.NotFound("prescription", nil)
	}
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ext(ctx).ExecContext(ctx, `DELETE FROM medical.recipe WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *recipeRepository) DeleteByAppointment(ctx context.Context, appointmentID int64) error {
	_, err := r.ext(ctx).ExecContext(ctx,
		`DELETE FROM medical.recipe WHERE appointment_id = $1`, appointmentID)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (r *recipeRepository) DeleteByPatient(ctx context.Context, patientID int64) error {
	query := `
		DELETE FROM medical.recipe
		WHERE appointment_id IN (
			SELECT id FROM medical.appointments WHERE patient_id = $1
		)
	`
	if _, err := r.ext(ctx).ExecContext(ctx, query, patientID); err != nil {
		return translateError(err)
	}
	return nil
}
