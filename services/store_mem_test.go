package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"carelink_backend_go/models"
	"carelink_backend_go/storage"

	"github.com/google/uuid"
)

// memStore is an in-memory storage.Store for handler tests. It mirrors the
// Postgres behavior the handlers rely on: unique emails, the unique
// (patient, doctor) pair, ownership scoping and cascade deletes.
type memStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*models.User
	doctors  map[uuid.UUID]*models.Doctor
	patients map[uuid.UUID]*models.Patient
	mappings map[uuid.UUID]*models.Mapping
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uuid.UUID]*models.User),
		doctors:  make(map[uuid.UUID]*models.Doctor),
		patients: make(map[uuid.UUID]*models.Patient),
		mappings: make(map[uuid.UUID]*models.Mapping),
	}
}

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return storage.ErrDuplicateEmail
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *memStore) CreateDoctor(_ context.Context, doctor *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.doctors {
		if d.Email == doctor.Email {
			return storage.ErrDuplicateEmail
		}
	}
	doctor.ID = uuid.New()
	now := time.Now().UTC()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	clone := *doctor
	m.doctors[doctor.ID] = &clone
	return nil
}

func (m *memStore) GetDoctor(_ context.Context, id uuid.UUID) (*models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.doctors[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (m *memStore) ListDoctors(_ context.Context, filter storage.DoctorFilter) ([]models.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var doctors []models.Doctor
	for _, d := range m.doctors {
		if filter.AvailableOnly && !d.Available {
			continue
		}
		if filter.Specialization != "" && d.Specialization != filter.Specialization {
			continue
		}
		doctors = append(doctors, *d)
	}
	sort.Slice(doctors, func(i, j int) bool { return doctors[i].Name < doctors[j].Name })
	return doctors, nil
}

func (m *memStore) UpdateDoctor(_ context.Context, doctor *models.Doctor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[doctor.ID]; !ok {
		return storage.ErrNotFound
	}
	for id, d := range m.doctors {
		if id != doctor.ID && d.Email == doctor.Email {
			return storage.ErrDuplicateEmail
		}
	}
	doctor.UpdatedAt = time.Now().UTC()
	clone := *doctor
	m.doctors[doctor.ID] = &clone
	return nil
}

func (m *memStore) DeleteDoctor(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.doctors[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.doctors, id)
	for mid, mp := range m.mappings {
		if mp.DoctorID == id {
			delete(m.mappings, mid)
		}
	}
	return nil
}

func (m *memStore) CreatePatient(_ context.Context, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	patient.ID = uuid.New()
	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	clone := *patient
	m.patients[patient.ID] = &clone
	return nil
}

func (m *memStore) GetPatient(_ context.Context, id uuid.UUID) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memStore) GetPatientForOwner(_ context.Context, id, ownerID uuid.UUID) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok || p.CreatedBy != ownerID {
		return nil, storage.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *memStore) ListPatientsForOwner(_ context.Context, ownerID uuid.UUID) ([]models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var patients []models.Patient
	for _, p := range m.patients {
		if p.CreatedBy == ownerID {
			patients = append(patients, *p)
		}
	}
	sort.Slice(patients, func(i, j int) bool { return patients[i].CreatedAt.After(patients[j].CreatedAt) })
	return patients, nil
}

func (m *memStore) UpdatePatient(_ context.Context, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[patient.ID]
	if !ok || p.CreatedBy != patient.CreatedBy {
		return storage.ErrNotFound
	}
	patient.UpdatedAt = time.Now().UTC()
	clone := *patient
	m.patients[patient.ID] = &clone
	return nil
}

func (m *memStore) DeletePatientForOwner(_ context.Context, id, ownerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok || p.CreatedBy != ownerID {
		return storage.ErrNotFound
	}
	delete(m.patients, id)
	for mid, mp := range m.mappings {
		if mp.PatientID == id {
			delete(m.mappings, mid)
		}
	}
	return nil
}

func (m *memStore) CreateMapping(_ context.Context, mapping *models.Mapping) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mp := range m.mappings {
		if mp.PatientID == mapping.PatientID && mp.DoctorID == mapping.DoctorID {
			return storage.ErrDuplicateMapping
		}
	}
	mapping.ID = uuid.New()
	mapping.AssignedDate = time.Now().UTC()
	clone := *mapping
	m.mappings[mapping.ID] = &clone
	return nil
}

func (m *memStore) GetMappingForOwner(_ context.Context, id, ownerID uuid.UUID) (*models.Mapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	mp, ok := m.mappings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	p, ok := m.patients[mp.PatientID]
	if !ok || p.CreatedBy != ownerID {
		return nil, storage.ErrNotFound
	}
	clone := *mp
	return &clone, nil
}

func (m *memStore) ListMappingsForOwner(_ context.Context, ownerID uuid.UUID, activeOnly bool) ([]models.MappingSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var summaries []models.MappingSummary
	for _, mp := range m.mappings {
		p, ok := m.patients[mp.PatientID]
		if !ok || p.CreatedBy != ownerID {
			continue
		}
		if activeOnly && !mp.IsActive {
			continue
		}
		d := m.doctors[mp.DoctorID]
		summaries = append(summaries, models.MappingSummary{
			ID:                   mp.ID,
			PatientID:            mp.PatientID,
			PatientName:          p.Name,
			DoctorID:             mp.DoctorID,
			DoctorName:           d.Name,
			DoctorSpecialization: models.SpecializationDisplay[d.Specialization],
			AssignedDate:         mp.AssignedDate,
			IsActive:             mp.IsActive,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].AssignedDate.After(summaries[j].AssignedDate) })
	return summaries, nil
}

func (m *memStore) ListMappingsForPatient(_ context.Context, patientID uuid.UUID) ([]models.Mapping, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var mappings []models.Mapping
	for _, mp := range m.mappings {
		if mp.PatientID == patientID {
			mappings = append(mappings, *mp)
		}
	}
	sort.Slice(mappings, func(i, j int) bool { return mappings[i].AssignedDate.After(mappings[j].AssignedDate) })
	return mappings, nil
}

func (m *memStore) DeleteMappingForOwner(_ context.Context, id, ownerID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	mp, ok := m.mappings[id]
	if !ok {
		return storage.ErrNotFound
	}
	p, ok := m.patients[mp.PatientID]
	if !ok || p.CreatedBy != ownerID {
		return storage.ErrNotFound
	}
	delete(m.mappings, id)
	return nil
}

var _ storage.Store = (*memStore)(nil)
