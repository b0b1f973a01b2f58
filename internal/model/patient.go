package model

import "time"

// Patient is the subject of care and the root of the contact and
// appointment collections. Lives in the medical schema.
type Patient struct {
	ID             int64      `db:"id" json:"id"`
	FirstName      string     `db:"first_name" json:"first_name"`
	LastName       string     `db:"last_name" json:"last_name"`
	BirthDate      *Date      `db:"birth_date" json:"birth_date,omitempty"`
	Gender         string     `db:"gender" json:"gender"`
	DocumentID     string     `db:"document_id" json:"document_id"`
	MaritalStatus  *string    `db:"marital_status" json:"marital_status,omitempty"`
	Occupation     *string    `db:"occupation" json:"occupation,omitempty"`
	Education      *string    `db:"education" json:"education,omitempty"`
	Origin         *string    `db:"origin" json:"origin,omitempty"`
	Province       *string    `db:"province" json:"province,omitempty"`
	City           *string    `db:"city" json:"city,omitempty"`
	Neighborhood   *string    `db:"neighborhood" json:"neighborhood,omitempty"`
	Street         *string    `db:"street" json:"street,omitempty"`
	HouseNumber    *string    `db:"house_number" json:"house_number,omitempty"`
	MedicalHistory *string    `db:"medical_history" json:"medical_history,omitempty"`
	Notes          *string    `db:"notes" json:"notes,omitempty"`
	Enterprise     *string    `db:"enterprise" json:"enterprise,omitempty"`
	WorkActivity   *string    `db:"work_activity" json:"work_activity,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time `db:"updated_at" json:"updated_at,omitempty"`

	Contacts []*Contact `db:"-" json:"contacts,omitempty"`
}

// PatientSummary is the shallow projection embedded in appointments.
type PatientSummary struct {
	ID             int64   `db:"id" json:"id"`
	FirstName      string  `db:"first_name" json:"first_name"`
	LastName       string  `db:"last_name" json:"last_name"`
	DocumentID     string  `db:"document_id" json:"document_id"`
	MedicalHistory *string `db:"medical_history" json:"medical_history,omitempty"`
}

type CreatePatientRequest struct {
	FirstName      string         `json:"first_name" binding:"required"`
	LastName       string         `json:"last_name" binding:"required"`
	BirthDate      *Date          `json:"birth_date" binding:"required"`
	Gender         string         `json:"gender" binding:"required"`
	DocumentID     string         `json:"document_id" binding:"required"`
	MaritalStatus  *string        `json:"marital_status"`
	Occupation     *string        `json:"occupation"`
	Education      *string        `json:"education"`
	Origin         *string        `json:"origin"`
	Province       *string        `json:"province"`
	City           *string        `json:"city"`
	Neighborhood   *string        `json:"neighborhood"`
	Street         *string        `json:"street"`
	HouseNumber    *string        `json:"house_number"`
	MedicalHistory *string        `json:"medical_history"`
	Notes          *string        `json:"notes"`
	Enterprise     *string        `json:"enterprise"`
	WorkActivity   *string        `json:"work_activity"`
	Contacts       []ContactInput `json:"contacts"`
}

// UpdatePatientRequest is a partial update: nil fields are left untouched.
// Contacts, when present, replace the stored collection through
// reconciliation.
type UpdatePatientRequest struct {
	FirstName      *string         `json:"first_name"`
	LastName       *string         `json:"last_name"`
	BirthDate      *Date           `json:"birth_date"`
	Gender         *string         `json:"gender"`
	DocumentID     *string         `json:"document_id"`
	MaritalStatus  *string         `json:"marital_status"`
	Occupation     *string         `json:"occupation"`
	Education      *string         `json:"education"`
	Origin         *string         `json:"origin"`
	Province       *string         `json:"province"`
	City           *string         `json:"city"`
	Neighborhood   *string         `json:"neighborhood"`
	Street         *string         `json:"street"`
	HouseNumber    *string         `json:"house_number"`
	MedicalHistory *string         `json:"medical_history"`
	Notes          *string         `json:"notes"`
	Enterprise     *string         `json:"enterprise"`
	WorkActivity   *string         `json:"work_activity"`
	Contacts       *[]ContactInput `json:"contacts"`
}

// ManagePatientRequest is the clinical management flow: a full payload that
// additionally requires the medical history to be recorded.
type ManagePatientRequest struct {
	FirstName      string         `json:"first_name" binding:"required"`
	LastName       string         `json:"last_name" binding:"required"`
	BirthDate      *Date          `json:"birth_date" binding:"required"`
	Gender         string         `json:"gender" binding:"required"`
	DocumentID     string         `json:"document_id" binding:"required"`
	MaritalStatus  *string        `json:"marital_status"`
	Occupation     *string        `json:"occupation"`
	Education      *string        `json:"education"`
	Origin         *string        `json:"origin"`
	Province       *string        `json:"province"`
	City           *string        `json:"city"`
	Neighborhood   *string        `json:"neighborhood"`
	Street         *string        `json:"street"`
	HouseNumber    *string        `json:"house_number"`
	MedicalHistory *string        `json:"medical_history"`
	Notes          *string        `json:"notes"`
	Enterprise     *string        `json:"enterprise"`
	WorkActivity   *string        `json:"work_activity"`
	Contacts       []ContactInput `json:"contacts"`
}
