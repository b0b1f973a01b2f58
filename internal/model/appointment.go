package model

import "time"

// Diagnosis types
const (
	DiagnosisTypePrimary   = "primary"
	DiagnosisTypeSecondary = "secondary"
)

// Appointment is one clinical encounter between a patient and an attending
// doctor at a specific date and time. The (date, time) pair is unique across
// the whole system and the attending doctor is immutable after creation.
type Appointment struct {
	ID        int64     `db:"id" json:"id"`
	PatientID int64     `db:"patient_id" json:"patient_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Date      Date      `db:"appointment_date" json:"appointment_date"`
	Time      TimeOfDay `db:"appointment_time" json:"appointment_time"`

	CurrentIllness      *string `db:"current_illness" json:"current_illness,omitempty"`
	PhysicalExamination *string `db:"physical_examination" json:"physical_examination,omitempty"`
	Observations        *string `db:"observations" json:"observations,omitempty"`
	LaboratoryTests     *string `db:"laboratory_tests" json:"laboratory_tests,omitempty"`

	Temperature      *string  `db:"temperature" json:"temperature,omitempty"`
	BloodPressure    *string  `db:"blood_pressure" json:"blood_pressure,omitempty"`
	HeartRate        *string  `db:"heart_rate" json:"heart_rate,omitempty"`
	OxygenSaturation *string  `db:"oxygen_saturation" json:"oxygen_saturation,omitempty"`
	Weight           *float64 `db:"weight" json:"weight,omitempty"`
	WeightUnit       *string  `db:"weight_unit" json:"weight_unit,omitempty"`
	Height           *string  `db:"height" json:"height,omitempty"`

	RepresentativeName     *string `db:"representative_name" json:"representative_name,omitempty"`
	RepresentativeDocument *string `db:"representative_document" json:"representative_document,omitempty"`
	ContingencyType        *string `db:"contingency_type" json:"contingency_type,omitempty"`

	RestStartDate *Date `db:"rest_start_date" json:"rest_start_date,omitempty"`
	RestEndDate   *Date `db:"rest_end_date" json:"rest_end_date,omitempty"`
	RestDays      *int  `db:"rest_days" json:"rest_days,omitempty"`

	MedicalPreinscription *string `db:"medical_preinscription" json:"medical_preinscription,omitempty"`

	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at,omitempty"`

	Patient   *PatientSummary `db:"-" json:"patient,omitempty"`
	User      *UserSummary    `db:"-" json:"user,omitempty"`
	Diagnoses []*Diagnosis    `db:"-" json:"diagnoses"`
	Recipes   []*Recipe       `db:"-" json:"recipes"`
}

// Diagnosis is a coded clinical finding (CIE-10) attached to one appointment.
type Diagnosis struct {
	ID            int64     `db:"id" json:"id"`
	AppointmentID int64     `db:"appointment_id" json:"appointment_id"`
	Code          string    `db:"diagnosis_code" json:"diagnosis_code"`
	Description   string    `db:"diagnosis_description" json:"diagnosis_description"`
	Type          string    `db:"diagnosis_type" json:"diagnosis_type"`
	Observations  *string   `db:"diagnosis_observations" json:"diagnosis_observations,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Recipe is a medication order attached to one appointment.
type Recipe struct {
	ID            int64   `db:"id" json:"id"`
	AppointmentID int64   `db:"appointment_id" json:"appointment_id"`
	Medicine      string  `db:"medicine" json:"medicine"`
	Amount        string  `db:"amount" json:"amount"`
	Instructions  string  `db:"instructions" json:"instructions"`
	LunchTime     *string `db:"lunch_time" json:"lunch_time,omitempty"`
	Observations  *string `db:"observations" json:"observations,omitempty"`
}

// DiagnosisInput follows the same reconciliation contract as ContactInput.
type DiagnosisInput struct {
	ID           *int64  `json:"id"`
	Code         string  `json:"diagnosis_code" binding:"required"`
	Description  string  `json:"diagnosis_description" binding:"required"`
	Type         *string `json:"diagnosis_type" binding:"omitempty,oneof=primary secondary"`
	Observations *string `json:"diagnosis_observations"`
}

// RecipeInput follows the same reconciliation contract as ContactInput.
type RecipeInput struct {
	ID           *int64  `json:"id"`
	Medicine     string  `json:"medicine" binding:"required"`
	Amount       string  `json:"amount" binding:"required"`
	Instructions string  `json:"instructions" binding:"required"`
	LunchTime    *string `json:"lunch_time"`
	Observations *string `json:"observations"`
}

type CreateAppointmentRequest struct {
	PatientID int64     `json:"patient_id" binding:"required"`
	UserID    int64     `json:"user_id" binding:"required"`
	Date      Date      `json:"appointment_date" binding:"required"`
	Time      TimeOfDay `json:"appointment_time" binding:"required,timeofday"`

	CurrentIllness      *string `json:"current_illness"`
	PhysicalExamination *string `json:"physical_examination"`
	Observations        *string `json:"observations"`
	LaboratoryTests     *string `json:"laboratory_tests"`

	Temperature      *string  `json:"temperature"`
	BloodPressure    *string  `json:"blood_pressure"`
	HeartRate        *string  `json:"heart_rate"`
	OxygenSaturation *string  `json:"oxygen_saturation"`
	Weight           *float64 `json:"weight"`
	WeightUnit       *string  `json:"weight_unit"`
	Height           *string  `json:"height"`

	RepresentativeName     *string `json:"representative_name"`
	RepresentativeDocument *string `json:"representative_document"`
	ContingencyType        *string `json:"contingency_type"`

	RestStartDate *Date `json:"rest_start_date"`
	RestEndDate   *Date `json:"rest_end_date"`
	RestDays      *int  `json:"rest_days"`

	MedicalPreinscription *string `json:"medical_preinscription"`

	Diagnoses []DiagnosisInput `json:"diagnoses"`
	Recipes   []RecipeInput    `json:"recipes"`
}

// UpdateAppointmentRequest is a partial update. The attending doctor cannot
// be changed, so there is no user_id field. Nil child lists leave the stored
// collections alone; non-nil lists are reconciled.
type UpdateAppointmentRequest struct {
	PatientID *int64     `json:"patient_id"`
	Date      *Date      `json:"appointment_date"`
	Time      *TimeOfDay `json:"appointment_time" binding:"omitempty,timeofday"`

	CurrentIllness      *string `json:"current_illness"`
	PhysicalExamination *string `json:"physical_examination"`
	Observations        *string `json:"observations"`
	LaboratoryTests     *string `json:"laboratory_tests"`

	Temperature      *string  `json:"temperature"`
	BloodPressure    *string  `json:"blood_pressure"`
	HeartRate        *string  `json:"heart_rate"`
	OxygenSaturation *string  `json:"oxygen_saturation"`
	Weight           *float64 `json:"weight"`
	WeightUnit       *string  `json:"weight_unit"`
	Height           *string  `json:"height"`

	RepresentativeName     *string `json:"representative_name"`
	RepresentativeDocument *string `json:"representative_document"`
	ContingencyType        *string `json:"contingency_type"`

	RestStartDate *Date `json:"rest_start_date"`
	RestEndDate   *Date `json:"rest_end_date"`
	RestDays      *int  `json:"rest_days"`

	MedicalPreinscription *string `json:"medical_preinscription"`

	Diagnoses *[]DiagnosisInput `json:"diagnoses"`
	Recipes   *[]RecipeInput    `json:"recipes"`
}

// AppointmentSearchFilters combines free-text and date-range criteria with
// logical AND. At least one criterion must be present.
type AppointmentSearchFilters struct {
	Query     string `form:"query"`
	StartDate *Date  `form:"start_date"`
	EndDate   *Date  `form:"end_date"`
	Pagination
}

func (f *AppointmentSearchFilters) Empty() bool {
	return f.Query == "" && f.StartDate == nil && f.EndDate == nil
}
