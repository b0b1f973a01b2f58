package model

import "time"

// Contact is an emergency or legal contact tied to one patient.
type Contact struct {
	ID               int64     `db:"id" json:"id"`
	PatientID        int64     `db:"patient_id" json:"patient_id"`
	FirstName        string    `db:"first_name" json:"first_name"`
	LastName         string    `db:"last_name" json:"last_name"`
	Phone            string    `db:"phone" json:"phone"`
	Email            *string   `db:"email" json:"email,omitempty"`
	RelationshipType string    `db:"relationship_type" json:"relationship_type"`
	DocumentID       *string   `db:"document_id" json:"document_id,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// ContactInput is a contact as submitted by the client. A nil or unknown ID
// means "insert as new"; a known ID updates the stored record in place.
type ContactInput struct {
	ID               *int64  `json:"id"`
	FirstName        string  `json:"first_name" binding:"required"`
	LastName         string  `json:"last_name" binding:"required"`
	Phone            string  `json:"phone" binding:"required"`
	Email            *string `json:"email" binding:"omitempty,email"`
	RelationshipType string  `json:"relationship_type" binding:"required"`
	DocumentID       *string `json:"document_id"`
}
