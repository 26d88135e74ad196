package storage

import (
	"context"
	"errors"

	"carelink_backend_go/models"

	"github.com/google/uuid"
)

var (
	// ErrNotFound covers both a missing record and an ownership mismatch,
	// so callers cannot tell the two apart.
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateEmail   = errors.New("email already exists")
	ErrDuplicateMapping = errors.New("mapping already exists")
)

// DoctorFilter narrows ListDoctors. Zero value means no filtering.
type DoctorFilter struct {
	AvailableOnly  bool
	Specialization string
}

// Store is the persistence surface for all resources. The production
// implementation is Postgres; tests supply an in-memory one.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// Doctors, globally shared between users.
	CreateDoctor(ctx context.Context, doctor *models.Doctor) error
	GetDoctor(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	ListDoctors(ctx context.Context, filter DoctorFilter) ([]models.Doctor, error)
	UpdateDoctor(ctx context.Context, doctor *models.Doctor) error
	DeleteDoctor(ctx context.Context, id uuid.UUID) error

	// Patients. The ForOwner variants never reveal records the owner does
	// not hold; GetPatient is unscoped and only for internal resolution.
	CreatePatient(ctx context.Context, patient *models.Patient) error
	GetPatient(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	GetPatientForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Patient, error)
	ListPatientsForOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Patient, error)
	UpdatePatient(ctx context.Context, patient *models.Patient) error
	DeletePatientForOwner(ctx context.Context, id, ownerID uuid.UUID) error

	// Mappings, visible through patient ownership only.
	CreateMapping(ctx context.Context, mapping *models.Mapping) error
	GetMappingForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Mapping, error)
	ListMappingsForOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]models.MappingSummary, error)
	ListMappingsForPatient(ctx context.Context, patientID uuid.UUID) ([]models.Mapping, error)
	DeleteMappingForOwner(ctx context.Context, id, ownerID uuid.UUID) error
}
