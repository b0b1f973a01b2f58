package postgres

import (
	stderrors "errors"
	"strings"

	"github.com/lib/pq"

	"github.com/fenixclinic/clinic-api/pkg/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translateError converts storage-level integrity violations caught at write
// or commit time into the application taxonomy by inspecting the violated
// constraint name. The pre-checks in the services give friendlier messages;
// this layer is the actual guarantee under concurrent writers.
func translateError(err error) error {
	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return errors.Internal(err)
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		switch {
		case strings.Contains(pqErr.Constraint, "document_id"):
			return errors.Conflict("a patient with this document id already exists", err)
		case strings.Contains(pqErr.Constraint, "email"):
			return errors.Conflict("a user with this email already exists", err)
		case strings.Contains(pqErr.Constraint, "appointment_slot"):
			return errors.Conflict("an appointment already exists at this date and time", err)
		case strings.Contains(pqErr.Constraint, "role_module"):
			return errors.Conflict("a permission entry for this role and module already exists", err)
		default:
			return errors.Conflict("the submitted data violates a uniqueness constraint", err)
		}
	case pqForeignKeyViolation:
		return errors.Validation("the submitted data references a record that does not exist", err)
	default:
		return errors.Internal(err)
	}
}
