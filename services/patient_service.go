package services

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"carelink_backend_go/middleware"
	"carelink_backend_go/models"
	"carelink_backend_go/storage"
	"carelink_backend_go/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func validatePatientFields(errs validators.Errors, age int, gender, contact string) {
	if msg := validators.ValidateAge(age); msg != "" {
		errs.Add("age", msg)
	}
	if msg := validators.ValidateGender(gender); msg != "" {
		errs.Add("gender", msg)
	}
	if msg := validators.ValidateContact(contact); msg != "" {
		errs.Add("contact", msg)
	}
}

// callerOrAbort pulls the authenticated user out of the gin context. The
// auth middleware guarantees it is there on protected routes.
func callerOrAbort(c *gin.Context) (uuid.UUID, bool) {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return uuid.Nil, false
	}
	return callerID, true
}

// CreatePatient handles POST /api/patients. The owner is always the caller;
// nothing in the request body can change that.
func CreatePatient(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req models.PatientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	errs := validators.Errors{}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		errs.Add("name", "This field is required")
	}
	validatePatientFields(errs, req.Age, req.Gender, req.Contact)
	if errs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	patient := models.Patient{
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		Contact:        req.Contact,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		CreatedBy:      callerID,
	}
	if err := store.CreatePatient(c, &patient); err != nil {
		log.Printf("Failed to create patient: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	owner, err := store.GetUserByID(c, callerID)
	if err != nil {
		log.Printf("Failed to fetch owner: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"patient": models.NewPatientView(&patient, owner),
		"message": "Patient created successfully",
	})
}

// GetPatients handles GET /api/patients, listing the caller's records only.
func GetPatients(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	patients, err := store.ListPatientsForOwner(c, callerID)
	if err != nil {
		log.Printf("Failed to list patients: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	owner, err := store.GetUserByID(c, callerID)
	if err != nil {
		log.Printf("Failed to fetch owner: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patients": models.NewPatientViews(patients, owner),
		"count":    len(patients),
	})
}

// GetPatientById handles GET /api/patients/:patientId. A record owned by
// someone else looks exactly like a missing one.
func GetPatientById(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	patient, err := store.GetPatientForOwner(c, patientID, callerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		log.Printf("Failed to fetch patient: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	owner, err := store.GetUserByID(c, callerID)
	if err != nil {
		log.Printf("Failed to fetch owner: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"patient": models.NewPatientView(patient, owner)})
}

// UpdatePatient handles PUT and PATCH /api/patients/:patientId, scoped to
// the caller's own records.
func UpdatePatient(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var req models.PatientUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	patient, err := store.GetPatientForOwner(c, patientID, callerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		log.Printf("Failed to fetch patient: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if req.Name != nil {
		patient.Name = strings.TrimSpace(*req.Name)
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Contact != nil {
		patient.Contact = *req.Contact
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.MedicalHistory != nil {
		patient.MedicalHistory = *req.MedicalHistory
	}

	errs := validators.Errors{}
	if patient.Name == "" {
		errs.Add("name", "This field is required")
	}
	validatePatientFields(errs, patient.Age, patient.Gender, patient.Contact)
	if errs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if err := store.UpdatePatient(c, patient); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		log.Printf("Failed to update patient: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	owner, err := store.GetUserByID(c, callerID)
	if err != nil {
		log.Printf("Failed to fetch owner: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"patient": models.NewPatientView(patient, owner),
		"message": "Patient updated successfully",
	})
}

// DeletePatient handles DELETE /api/patients/:patientId. Mappings for the
// patient cascade away with it.
func DeletePatient(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	if err := store.DeletePatientForOwner(c, patientID, callerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
			return
		}
		log.Printf("Failed to delete patient: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted successfully"})
}
