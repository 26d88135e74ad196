package models

import (
	"time"

	"github.com/google/uuid"
)

// Gender choices for a patient record.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

var GenderDisplay = map[string]string{
	GenderMale:   "Male",
	GenderFemale: "Female",
	GenderOther:  "Other",
}

// Patient is owned by the user who created it. CreatedBy is set once at
// creation from the authenticated caller and never changes.
type Patient struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender"`
	Contact        string    `json:"contact"`
	Address        string    `json:"address"`
	MedicalHistory string    `json:"medical_history"`
	CreatedBy      uuid.UUID `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PatientCreateRequest struct {
	Name           string `json:"name"`
	Age            int    `json:"age"`
	Gender         string `json:"gender"`
	Contact        string `json:"contact"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medical_history"`
}

type PatientUpdateRequest struct {
	Name           *string `json:"name"`
	Age            *int    `json:"age"`
	Gender         *string `json:"gender"`
	Contact        *string `json:"contact"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
}

type PatientView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Age            int       `json:"age"`
	Gender         string    `json:"gender"`
	GenderDisplay  string    `json:"gender_display"`
	Contact        string    `json:"contact"`
	Address        string    `json:"address"`
	MedicalHistory string    `json:"medical_history"`
	CreatedBy      UserView  `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewPatientView(p *Patient, owner *User) PatientView {
	return PatientView{
		ID:             p.ID,
		Name:           p.Name,
		Age:            p.Age,
		Gender:         p.Gender,
		GenderDisplay:  GenderDisplay[p.Gender],
		Contact:        p.Contact,
		Address:        p.Address,
		MedicalHistory: p.MedicalHistory,
		CreatedBy:      NewUserView(owner),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func NewPatientViews(patients []Patient, owner *User) []PatientView {
	views := make([]PatientView, 0, len(patients))
	for i := range patients {
		views = append(views, NewPatientView(&patients[i], owner))
	}
	return views
}
