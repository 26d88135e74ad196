package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"carelink_backend_go/models"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const uniqueViolationCode = "23505"

// PostgresStore implements Store on top of a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects using the DATABASE_* environment variables and
// creates the schema if it is not there yet.
func NewPostgresStore(ctx context.Context) (*PostgresStore, error) {
	host := os.Getenv("DATABASE_HOST")
	port := os.Getenv("DATABASE_PORT")
	user := os.Getenv("DATABASE_USER")
	password := os.Getenv("DATABASE_PASSWORD")
	databaseName := os.Getenv("DATABASE_NAME")

	config, err := pgxpool.ParseConfig(fmt.Sprintf(
		"host=%s port=%s user=%s password=%s database=%s",
		host, port, user, password, databaseName))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	pool, err := pgxpool.ConnectConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &PostgresStore{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	sqlQueries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id uuid PRIMARY KEY,
			email VARCHAR(254) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS doctors (
			id uuid PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			specialization VARCHAR(50) NOT NULL,
			contact VARCHAR(15) NOT NULL,
			email VARCHAR(254) NOT NULL UNIQUE,
			experience_years INTEGER NOT NULL,
			qualification VARCHAR(255) NOT NULL,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS patients (
			id uuid PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			age INTEGER NOT NULL,
			gender VARCHAR(1) NOT NULL,
			contact VARCHAR(15) NOT NULL,
			address TEXT NOT NULL,
			medical_history TEXT NOT NULL,
			created_by uuid NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS patient_doctor_mappings (
			id uuid PRIMARY KEY,
			patient_id uuid NOT NULL REFERENCES patients(id) ON DELETE CASCADE,
			doctor_id uuid NOT NULL REFERENCES doctors(id) ON DELETE CASCADE,
			assigned_date TIMESTAMPTZ NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			CONSTRAINT patient_doctor_unique UNIQUE (patient_id, doctor_id)
		)`,
	}

	for _, query := range sqlQueries {
		if _, err := s.pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// mapUniqueViolation translates a Postgres unique-constraint error into the
// matching sentinel, so concurrent duplicate creates fail cleanly.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if strings.Contains(pgErr.ConstraintName, "patient_doctor") {
			return ErrDuplicateMapping
		}
		return ErrDuplicateEmail
	}
	return err
}

// -- Users --

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID.String(), user.Email, user.Name, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (s *PostgresStore) scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	var id string
	err := row.Scan(&id, &user.Email, &user.Name, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE email = $1`, email))
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.scanUser(s.pool.QueryRow(ctx,
		`SELECT id, email, name, password_hash, created_at FROM users WHERE id = $1`, id.String()))
}

// -- Doctors --

const doctorColumns = `id, name, specialization, contact, email, experience_years, qualification, available, created_at, updated_at`

func (s *PostgresStore) CreateDoctor(ctx context.Context, doctor *models.Doctor) error {
	doctor.ID = uuid.New()
	now := time.Now().UTC()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	_, err := s.pool.Exec(ctx,
		`INSERT INTO doctors (`+doctorColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		doctor.ID.String(), doctor.Name, doctor.Specialization, doctor.Contact, doctor.Email,
		doctor.ExperienceYears, doctor.Qualification, doctor.Available, doctor.CreatedAt, doctor.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func scanDoctor(row pgx.Row) (*models.Doctor, error) {
	var doctor models.Doctor
	var id string
	err := row.Scan(&id, &doctor.Name, &doctor.Specialization, &doctor.Contact, &doctor.Email,
		&doctor.ExperienceYears, &doctor.Qualification, &doctor.Available, &doctor.CreatedAt, &doctor.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	doctor.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *PostgresStore) GetDoctor(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	return scanDoctor(s.pool.QueryRow(ctx,
		`SELECT `+doctorColumns+` FROM doctors WHERE id = $1`, id.String()))
}

func (s *PostgresStore) ListDoctors(ctx context.Context, filter DoctorFilter) ([]models.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors`
	var conditions []string
	var args []interface{}
	if filter.AvailableOnly {
		conditions = append(conditions, "available = TRUE")
	}
	if filter.Specialization != "" {
		args = append(args, filter.Specialization)
		conditions = append(conditions, fmt.Sprintf("specialization = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var doctors []models.Doctor
	for rows.Next() {
		doctor, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		doctors = append(doctors, *doctor)
	}
	return doctors, rows.Err()
}

func (s *PostgresStore) UpdateDoctor(ctx context.Context, doctor *models.Doctor) error {
	doctor.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE doctors SET name = $2, specialization = $3, contact = $4, email = $5,
			experience_years = $6, qualification = $7, available = $8, updated_at = $9
		 WHERE id = $1`,
		doctor.ID.String(), doctor.Name, doctor.Specialization, doctor.Contact, doctor.Email,
		doctor.ExperienceYears, doctor.Qualification, doctor.Available, doctor.UpdatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// -- Patients --

const patientColumns = `id, name, age, gender, contact, address, medical_history, created_by, created_at, updated_at`

func (s *PostgresStore) CreatePatient(ctx context.Context, patient *models.Patient) error {
	patient.ID = uuid.New()
	now := time.Now().UTC()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	_, err := s.pool.Exec(ctx,
		`INSERT INTO patients (`+patientColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		patient.ID.String(), patient.Name, patient.Age, patient.Gender, patient.Contact,
		patient.Address, patient.MedicalHistory, patient.CreatedBy.String(), patient.CreatedAt, patient.UpdatedAt)
	return err
}

func scanPatient(row pgx.Row) (*models.Patient, error) {
	var patient models.Patient
	var id, createdBy string
	err := row.Scan(&id, &patient.Name, &patient.Age, &patient.Gender, &patient.Contact,
		&patient.Address, &patient.MedicalHistory, &createdBy, &patient.CreatedAt, &patient.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if patient.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if patient.CreatedBy, err = uuid.Parse(createdBy); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (s *PostgresStore) GetPatient(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	return scanPatient(s.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1`, id.String()))
}

func (s *PostgresStore) GetPatientForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Patient, error) {
	return scanPatient(s.pool.QueryRow(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE id = $1 AND created_by = $2`,
		id.String(), ownerID.String()))
}

func (s *PostgresStore) ListPatientsForOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Patient, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+patientColumns+` FROM patients WHERE created_by = $1 ORDER BY created_at DESC`,
		ownerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, *patient)
	}
	return patients, rows.Err()
}

// UpdatePatient matches on both id and created_by, so an ownership mismatch
// surfaces as ErrNotFound.
func (s *PostgresStore) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	patient.UpdatedAt = time.Now().UTC()
	tag, err := s.pool.Exec(ctx,
		`UPDATE patients SET name = $3, age = $4, gender = $5, contact = $6,
			address = $7, medical_history = $8, updated_at = $9
		 WHERE id = $1 AND created_by = $2`,
		patient.ID.String(), patient.CreatedBy.String(), patient.Name, patient.Age, patient.Gender,
		patient.Contact, patient.Address, patient.MedicalHistory, patient.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) DeletePatientForOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM patients WHERE id = $1 AND created_by = $2`, id.String(), ownerID.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// -- Mappings --

func (s *PostgresStore) CreateMapping(ctx context.Context, mapping *models.Mapping) error {
	mapping.ID = uuid.New()
	mapping.AssignedDate = time.Now().UTC()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO patient_doctor_mappings (id, patient_id, doctor_id, assigned_date, notes, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		mapping.ID.String(), mapping.PatientID.String(), mapping.DoctorID.String(),
		mapping.AssignedDate, mapping.Notes, mapping.IsActive)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func scanMapping(row pgx.Row) (*models.Mapping, error) {
	var mapping models.Mapping
	var id, patientID, doctorID string
	err := row.Scan(&id, &patientID, &doctorID, &mapping.AssignedDate, &mapping.Notes, &mapping.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if mapping.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if mapping.PatientID, err = uuid.Parse(patientID); err != nil {
		return nil, err
	}
	if mapping.DoctorID, err = uuid.Parse(doctorID); err != nil {
		return nil, err
	}
	return &mapping, nil
}

func (s *PostgresStore) GetMappingForOwner(ctx context.Context, id, ownerID uuid.UUID) (*models.Mapping, error) {
	return scanMapping(s.pool.QueryRow(ctx,
		`SELECT m.id, m.patient_id, m.doctor_id, m.assigned_date, m.notes, m.is_active
		 FROM patient_doctor_mappings m
		 JOIN patients p ON p.id = m.patient_id
		 WHERE m.id = $1 AND p.created_by = $2`,
		id.String(), ownerID.String()))
}

func (s *PostgresStore) ListMappingsForOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]models.MappingSummary, error) {
	query := `SELECT m.id, m.patient_id, p.name, m.doctor_id, d.name, d.specialization, m.assigned_date, m.is_active
		 FROM patient_doctor_mappings m
		 JOIN patients p ON p.id = m.patient_id
		 JOIN doctors d ON d.id = m.doctor_id
		 WHERE p.created_by = $1`
	if activeOnly {
		query += ` AND m.is_active = TRUE`
	}
	query += ` ORDER BY m.assigned_date DESC`

	rows, err := s.pool.Query(ctx, query, ownerID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []models.MappingSummary
	for rows.Next() {
		var summary models.MappingSummary
		var id, patientID, doctorID, specialization string
		err := rows.Scan(&id, &patientID, &summary.PatientName, &doctorID, &summary.DoctorName,
			&specialization, &summary.AssignedDate, &summary.IsActive)
		if err != nil {
			return nil, err
		}
		if summary.ID, err = uuid.Parse(id); err != nil {
			return nil, err
		}
		if summary.PatientID, err = uuid.Parse(patientID); err != nil {
			return nil, err
		}
		if summary.DoctorID, err = uuid.Parse(doctorID); err != nil {
			return nil, err
		}
		summary.DoctorSpecialization = models.SpecializationDisplay[specialization]
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func (s *PostgresStore) ListMappingsForPatient(ctx context.Context, patientID uuid.UUID) ([]models.Mapping, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, patient_id, doctor_id, assigned_date, notes, is_active
		 FROM patient_doctor_mappings WHERE patient_id = $1 ORDER BY assigned_date DESC`,
		patientID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []models.Mapping
	for rows.Next() {
		mapping, err := scanMapping(rows)
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, *mapping)
	}
	return mappings, rows.Err()
}

func (s *PostgresStore) DeleteMappingForOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM patient_doctor_mappings m
		 USING patients p
		 WHERE m.id = $1 AND p.id = m.patient_id AND p.created_by = $2`,
		id.String(), ownerID.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
