package models

import (
	"time"

	"github.com/google/uuid"
)

// Specialization choices a doctor can be registered under.
const (
	SpecializationCardiology  = "CARDIOLOGY"
	SpecializationNeurology   = "NEUROLOGY"
	SpecializationPediatrics  = "PEDIATRICS"
	SpecializationOrthopedics = "ORTHOPEDICS"
	SpecializationDermatology = "DERMATOLOGY"
	SpecializationGeneral     = "GENERAL"
)

var SpecializationDisplay = map[string]string{
	SpecializationCardiology:  "Cardiology",
	SpecializationNeurology:   "Neurology",
	SpecializationPediatrics:  "Pediatrics",
	SpecializationOrthopedics: "Orthopedics",
	SpecializationDermatology: "Dermatology",
	SpecializationGeneral:     "General Physician",
}

type Doctor struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	Contact         string    `json:"contact"`
	Email           string    `json:"email"`
	ExperienceYears int       `json:"experience_years"`
	Qualification   string    `json:"qualification"`
	Available       bool      `json:"available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type DoctorCreateRequest struct {
	Name            string `json:"name"`
	Specialization  string `json:"specialization"`
	Contact         string `json:"contact"`
	Email           string `json:"email"`
	ExperienceYears int    `json:"experience_years"`
	Qualification   string `json:"qualification"`
	Available       *bool  `json:"available"`
}

// DoctorUpdateRequest uses pointers so PATCH can tell an omitted field
// from a zero value.
type DoctorUpdateRequest struct {
	Name            *string `json:"name"`
	Specialization  *string `json:"specialization"`
	Contact         *string `json:"contact"`
	Email           *string `json:"email"`
	ExperienceYears *int    `json:"experience_years"`
	Qualification   *string `json:"qualification"`
	Available       *bool   `json:"available"`
}

type DoctorView struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Specialization        string    `json:"specialization"`
	SpecializationDisplay string    `json:"specialization_display"`
	Contact               string    `json:"contact"`
	Email                 string    `json:"email"`
	ExperienceYears       int       `json:"experience_years"`
	Qualification         string    `json:"qualification"`
	Available             bool      `json:"available"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func NewDoctorView(d *Doctor) DoctorView {
	return DoctorView{
		ID:                    d.ID,
		Name:                  d.Name,
		Specialization:        d.Specialization,
		SpecializationDisplay: SpecializationDisplay[d.Specialization],
		Contact:               d.Contact,
		Email:                 d.Email,
		ExperienceYears:       d.ExperienceYears,
		Qualification:         d.Qualification,
		Available:             d.Available,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

func NewDoctorViews(doctors []Doctor) []DoctorView {
	views := make([]DoctorView, 0, len(doctors))
	for i := range doctors {
		views = append(views, NewDoctorView(&doctors[i]))
	}
	return views
}
