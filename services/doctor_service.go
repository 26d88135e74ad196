package services

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"carelink_backend_go/models"
	"carelink_backend_go/storage"
	"carelink_backend_go/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func validateDoctorFields(errs validators.Errors, contact, specialization string, experienceYears int) {
	if msg := validators.ValidateContact(contact); msg != "" {
		errs.Add("contact", msg)
	}
	if msg := validators.ValidateSpecialization(specialization); msg != "" {
		errs.Add("specialization", msg)
	}
	if msg := validators.ValidateExperienceYears(experienceYears); msg != "" {
		errs.Add("experience_years", msg)
	}
}

// CreateDoctor handles POST /api/doctors. Doctors are a shared catalog:
// any authenticated user may add one.
func CreateDoctor(c *gin.Context, store storage.Store) {
	var req models.DoctorCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	errs := validators.Errors{}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" {
		errs.Add("name", "This field is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		errs.Add("email", "Enter a valid email address")
	}
	validateDoctorFields(errs, req.Contact, req.Specialization, req.ExperienceYears)
	if errs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}
	doctor := models.Doctor{
		Name:            req.Name,
		Specialization:  req.Specialization,
		Contact:         req.Contact,
		Email:           req.Email,
		ExperienceYears: req.ExperienceYears,
		Qualification:   req.Qualification,
		Available:       available,
	}
	if err := store.CreateDoctor(c, &doctor); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "Doctor with this email already exists"}})
			return
		}
		log.Printf("Failed to create doctor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"doctor":  models.NewDoctorView(&doctor),
		"message": "Doctor added successfully",
	})
}

// GetAllDoctors handles GET /api/doctors.
func GetAllDoctors(c *gin.Context, store storage.Store) {
	doctors, err := store.ListDoctors(c, storage.DoctorFilter{})
	if err != nil {
		log.Printf("Failed to list doctors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"doctors": models.NewDoctorViews(doctors),
		"count":   len(doctors),
	})
}

// GetDoctorById handles GET /api/doctors/:doctorId.
func GetDoctorById(c *gin.Context, store storage.Store) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	doctor, err := store.GetDoctor(c, doctorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		log.Printf("Failed to fetch doctor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctor": models.NewDoctorView(doctor)})
}

// UpdateDoctor handles PUT and PATCH /api/doctors/:doctorId. Both apply the
// request fields on top of the stored record; omitted fields keep their value.
func UpdateDoctor(c *gin.Context, store storage.Store) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	var req models.DoctorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	doctor, err := store.GetDoctor(c, doctorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		log.Printf("Failed to fetch doctor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if req.Name != nil {
		doctor.Name = strings.TrimSpace(*req.Name)
	}
	if req.Specialization != nil {
		doctor.Specialization = *req.Specialization
	}
	if req.Contact != nil {
		doctor.Contact = *req.Contact
	}
	if req.Email != nil {
		doctor.Email = strings.TrimSpace(strings.ToLower(*req.Email))
	}
	if req.ExperienceYears != nil {
		doctor.ExperienceYears = *req.ExperienceYears
	}
	if req.Qualification != nil {
		doctor.Qualification = *req.Qualification
	}
	if req.Available != nil {
		doctor.Available = *req.Available
	}

	errs := validators.Errors{}
	if doctor.Name == "" {
		errs.Add("name", "This field is required")
	}
	if doctor.Email == "" || !strings.Contains(doctor.Email, "@") {
		errs.Add("email", "Enter a valid email address")
	}
	validateDoctorFields(errs, doctor.Contact, doctor.Specialization, doctor.ExperienceYears)
	if errs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := store.UpdateDoctor(c, doctor); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateEmail):
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "Doctor with this email already exists"}})
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		default:
			log.Printf("Failed to update doctor: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor":  models.NewDoctorView(doctor),
		"message": "Doctor updated successfully",
	})
}

// DeleteDoctor handles DELETE /api/doctors/:doctorId. Mappings referencing
// the doctor go with it.
func DeleteDoctor(c *gin.Context, store storage.Store) {
	doctorID, err := uuid.Parse(c.Param("doctorId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}

	if err := store.DeleteDoctor(c, doctorID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		log.Printf("Failed to delete doctor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deleted successfully"})
}

// GetAvailableDoctors handles GET /api/doctors/available.
func GetAvailableDoctors(c *gin.Context, store storage.Store) {
	doctors, err := store.ListDoctors(c, storage.DoctorFilter{AvailableOnly: true})
	if err != nil {
		log.Printf("Failed to list doctors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"doctors": models.NewDoctorViews(doctors),
		"count":   len(doctors),
	})
}

// GetDoctorsBySpecialization handles GET /api/doctors/by_specialization.
func GetDoctorsBySpecialization(c *gin.Context, store storage.Store) {
	specialization := c.Query("specialization")
	if specialization == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide specialization parameter"})
		return
	}

	// An unrecognized value is a plain filter miss, not an error.
	doctors, err := store.ListDoctors(c, storage.DoctorFilter{Specialization: specialization})
	if err != nil {
		log.Printf("Failed to list doctors: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"specialization": specialization,
		"doctors":        models.NewDoctorViews(doctors),
		"count":          len(doctors),
	})
}
