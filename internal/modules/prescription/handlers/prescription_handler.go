package handlers

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/prescription-reader-be/internal/modules/prescription/services"
)

// PrescriptionHandler handles prescription scan requests
type PrescriptionHandler struct {
	pipeline *services.PipelineService
}

// NewPrescriptionHandler creates a new prescription handler
func NewPrescriptionHandler(pipeline *services.PipelineService) *PrescriptionHandler {
	return &PrescriptionHandler{
		pipeline: pipeline,
	}
}

// ScanPrescription godoc
// @Summary Scan a prescription image
// @Description Upload a prescription image, extract its text via OCR and return structured medication details
// @Tags Prescriptions
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Prescription image file (JPEG or PNG)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/prescriptions/scan [post]
func (h *PrescriptionHandler) ScanPrescription(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "image file is required",
		})
	}

	// Validate file size (max 10MB)
	if file.Size > 10*1024*1024 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file size must be less than 10MB",
		})
	}

	fileHandle, err := file.Open()
	if err != nil {
		log.Printf("❌ Failed to open file: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read image file",
		})
	}
	defer fileHandle.Close()

	imageData, err := io.ReadAll(fileHandle)
	if err != nil {
		log.Printf("❌ Failed to read file data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read image file",
		})
	}

	scanID := uuid.New().String()
	contentType := file.Header.Get("Content-Type")

	log.Printf("📸 Processing prescription scan %s (type: %s, size: %.2f KB)", scanID, contentType, float64(file.Size)/1024)

	result, err := h.pipeline.Process(c.Context(), imageData, contentType)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidImageType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "only JPEG and PNG images are supported",
			})
		case errors.Is(err, services.ErrNoTextFound):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "no readable text found in the image, try a clearer photo",
			})
		default:
			log.Printf("❌ Scan %s failed: %v", scanID, err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	log.Printf("✅ Scan %s complete: %s", scanID, result.MedicationInfo.MedicineName)

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"scan_id":         scanID,
			"raw_text":        result.RawText,
			"normalized_text": result.NormalizedText,
			"admin_times":     result.AdminTimes,
			"medication_info": result.MedicationInfo,
		},
	})
}
