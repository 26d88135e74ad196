package models

import (
	"time"

	"github.com/google/uuid"
)

// Mapping links a patient to a doctor. The (PatientID, DoctorID) pair is
// unique and AssignedDate is set by the server at creation.
type Mapping struct {
	ID           uuid.UUID `json:"id"`
	PatientID    uuid.UUID `json:"patient_id"`
	DoctorID     uuid.UUID `json:"doctor_id"`
	AssignedDate time.Time `json:"assigned_date"`
	Notes        string    `json:"notes"`
	IsActive     bool      `json:"is_active"`
}

type MappingCreateRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Notes     string `json:"notes"`
	IsActive  *bool  `json:"is_active"`
}

// MappingDetailView nests full patient and doctor info, used for single
// mapping reads and the create response.
type MappingDetailView struct {
	ID           uuid.UUID   `json:"id"`
	Patient      PatientView `json:"patient"`
	Doctor       DoctorView  `json:"doctor"`
	AssignedDate time.Time   `json:"assigned_date"`
	Notes        string      `json:"notes"`
	IsActive     bool        `json:"is_active"`
}

func NewMappingDetailView(m *Mapping, patient PatientView, doctor DoctorView) MappingDetailView {
	return MappingDetailView{
		ID:           m.ID,
		Patient:      patient,
		Doctor:       doctor,
		AssignedDate: m.AssignedDate,
		Notes:        m.Notes,
		IsActive:     m.IsActive,
	}
}

// MappingSummary is the flattened list projection, produced by the store
// with patient and doctor columns joined in.
type MappingSummary struct {
	ID                   uuid.UUID `json:"id"`
	PatientID            uuid.UUID `json:"patient_id"`
	PatientName          string    `json:"patient_name"`
	DoctorID             uuid.UUID `json:"doctor_id"`
	DoctorName           string    `json:"doctor_name"`
	DoctorSpecialization string    `json:"doctor_specialization"`
	AssignedDate         time.Time `json:"assigned_date"`
	IsActive             bool      `json:"is_active"`
}
