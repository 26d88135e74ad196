package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"carelink_backend_go/models"
	"carelink_backend_go/storage"
	"carelink_backend_go/validators"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateMapping handles POST /api/mappings. Both referenced records must
// exist, the patient must be the caller's, and the (patient, doctor) pair
// must be new.
func CreateMapping(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	var req models.MappingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	errs := validators.Errors{}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		errs.Add("patient_id", fmt.Sprintf("Patient with ID %s does not exist", req.PatientID))
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		errs.Add("doctor_id", fmt.Sprintf("Doctor with ID %s does not exist", req.DoctorID))
	}
	if errs.HasErrors() {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	patient, err := store.GetPatient(c, patientID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
				"patient_id": fmt.Sprintf("Patient with ID %s does not exist", req.PatientID),
			}})
			return
		}
		log.Printf("Failed to fetch patient: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if patient.CreatedBy != callerID {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
			"patient_id": "You can only assign your own patients to doctors",
		}})
		return
	}

	doctor, err := store.GetDoctor(c, doctorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{
				"doctor_id": fmt.Sprintf("Doctor with ID %s does not exist", req.DoctorID),
			}})
			return
		}
		log.Printf("Failed to fetch doctor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	mapping := models.Mapping{
		PatientID: patientID,
		DoctorID:  doctorID,
		Notes:     req.Notes,
		IsActive:  isActive,
	}
	if err := store.CreateMapping(c, &mapping); err != nil {
		if errors.Is(err, storage.ErrDuplicateMapping) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This patient is already assigned to this doctor"})
			return
		}
		log.Printf("Failed to create mapping: %v", err)
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
		"mapping": models.NewMappingDetailView(&mapping,
			models.NewPatientView(patient, owner), models.NewDoctorView(doctor)),
		"message": "Doctor assigned to patient successfully",
	})
}

// GetMappings handles GET /api/mappings, the flattened list of every
// assignment whose patient the caller owns.
func GetMappings(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	mappings, err := store.ListMappingsForOwner(c, callerID, false)
	if err != nil {
		log.Printf("Failed to list mappings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if mappings == nil {
		mappings = []models.MappingSummary{}
	}
	c.JSON(http.StatusOK, gin.H{
		"mappings": mappings,
		"count":    len(mappings),
	})
}

// GetActiveMappings handles GET /api/mappings/active.
func GetActiveMappings(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	mappings, err := store.ListMappingsForOwner(c, callerID, true)
	if err != nil {
		log.Printf("Failed to list mappings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if mappings == nil {
		mappings = []models.MappingSummary{}
	}
	c.JSON(http.StatusOK, gin.H{
		"mappings": mappings,
		"count":    len(mappings),
	})
}

// GetMappingsByPatient handles GET /api/mappings/patient/:patientId. The
// patient must exist and be the caller's, otherwise 404.
func GetMappingsByPatient(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found or you do not have permission"})
		return
	}

	patient, err := store.GetPatientForOwner(c, patientID, callerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found or you do not have permission"})
			return
		}
		log.Printf("Failed to fetch patient: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	mappings, err := store.ListMappingsForPatient(c, patientID)
	if err != nil {
		log.Printf("Failed to list mappings: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	owner, err := store.GetUserByID(c, callerID)
	if err != nil {
		log.Printf("Failed to fetch owner: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	patientView := models.NewPatientView(patient, owner)
	views := make([]models.MappingDetailView, 0, len(mappings))
	for i := range mappings {
		doctor, err := store.GetDoctor(c, mappings[i].DoctorID)
		if err != nil {
			log.Printf("Failed to fetch doctor: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		views = append(views, models.NewMappingDetailView(&mappings[i], patientView, models.NewDoctorView(doctor)))
	}

	c.JSON(http.StatusOK, gin.H{
		"patient": gin.H{"id": patient.ID, "name": patient.Name},
		"doctors": views,
		"count":   len(views),
	})
}

// DeleteMapping handles DELETE /api/mappings/:mappingId. A mapping whose
// patient belongs to someone else is reported as missing.
func DeleteMapping(c *gin.Context, store storage.Store) {
	callerID, ok := callerOrAbort(c)
	if !ok {
		return
	}

	mappingID, err := uuid.Parse(c.Param("mappingId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
		return
	}

	mapping, err := store.GetMappingForOwner(c, mappingID, callerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
			return
		}
		log.Printf("Failed to fetch mapping: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Names are loaded before the delete so the message can use them.
	patient, err := store.GetPatient(c, mapping.PatientID)
	if err != nil {
		log.Printf("Failed to fetch patient: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	doctor, err := store.GetDoctor(c, mapping.DoctorID)
	if err != nil {
		log.Printf("Failed to fetch doctor: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := store.DeleteMappingForOwner(c, mappingID, callerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
			return
		}
		log.Printf("Failed to delete mapping: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Dr. %s removed from patient %s", doctor.Name, patient.Name),
	})
}
