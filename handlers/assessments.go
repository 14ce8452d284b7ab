package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gdmcare/assessment-api/models"
	"github.com/gdmcare/assessment-api/store"
)

// CreateAssessment runs the intake flow: complete the intake data with
// population defaults, ask the prediction service, persist the pending
// assessment, then best-effort bookkeeping (counters and the doctor's
// notification). A prediction failure aborts the whole operation with
// nothing written; a bookkeeping failure after the insert is logged and
// the operation still reports success.
func (h *Handler) CreateAssessment(c *fiber.Ctx) error {
	var req struct {
		PatientID   string               `json:"patientId"`
		DoctorID    string               `json:"doctorId"`
		PatientName string               `json:"patientName"`
		DoctorName  string               `json:"doctorName"`
		Intake      models.PartialIntake `json:"intakeData"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.PatientID == "" || req.DoctorID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "patientId and doctorId are required"})
	}

	intake := models.ApplyDefaults(req.Intake)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pred, err := h.predictor.Predict(ctx, intake)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("prediction failed: %v", err)})
	}

	assessment := &models.Assessment{
		PatientID:         req.PatientID,
		DoctorID:          req.DoctorID,
		PatientName:       req.PatientName,
		DoctorName:        req.DoctorName,
		Intake:            intake,
		Prediction:        pred.Prediction,
		GDMProbability:    pred.GDMProbability,
		NonGDMProbability: pred.NonGDMProbability,
		RiskCategory:      pred.RiskCategory,
		Confidence:        pred.Confidence,
		RiskFactors:       pred.RiskFactors,
		ModelVersion:      pred.ModelVersion,
		Status:            models.StatusPending,
		CreatedAt:         time.Now(),
	}

	id, err := h.store.InsertAssessment(ctx, assessment)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fmt.Sprintf("cannot insert assessment: %v", err)})
	}
	assessment.ID = id

	// Best-effort bookkeeping. The assessment is already persisted, so
	// failures here are logged and do not fail the request.
	if err := h.store.IncrementPatientAssessments(ctx, req.PatientID); err != nil {
		h.log.Warn().Err(err).Str("patientId", req.PatientID).Msg("cannot increment patient counter")
	}
	if err := h.store.IncrementDoctorAssessments(ctx, req.DoctorID); err != nil {
		h.log.Warn().Err(err).Str("doctorId", req.DoctorID).Msg("cannot increment doctor counter")
	}

	notification := &models.Notification{
		UserID:       req.DoctorID,
		Type:         models.NotificationNewAssessment,
		Title:        "New Assessment",
		Message:      fmt.Sprintf("%s submitted a new assessment for review", req.PatientName),
		AssessmentID: id,
		IsRead:       false,
		CreatedAt:    time.Now(),
	}
	if err := h.store.InsertNotification(ctx, notification); err != nil {
		h.log.Warn().Err(err).Str("doctorId", req.DoctorID).Msg("cannot create assessment notification")
	}

	return c.Status(fiber.StatusCreated).JSON(assessment)
}

// GetAssessment returns an assessment with the patient and doctor
// records attached when they exist.
func (h *Handler) GetAssessment(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assessment ID"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assessment, err := h.store.AssessmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assessment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	response := fiber.Map{"assessment": assessment}
	if patient, err := h.store.PatientByID(ctx, assessment.PatientID); err == nil {
		response["patientInfo"] = patient
	}
	if doctor, err := h.store.DoctorByID(ctx, assessment.DoctorID); err == nil {
		response["doctorInfo"] = doctor
	}

	return c.JSON(response)
}

// SubmitReview completes an assessment: all review fields and the
// completed status are written together, then the updated record is
// re-read to notify the patient. A second review overwrites the first
// and emits another notification.
func (h *Handler) SubmitReview(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid assessment ID"})
	}

	var req struct {
		Diagnosis       string `json:"diagnosis"`
		Recommendations string `json:"recommendations"`
		FinalVerdict    string `json:"finalVerdict"`
		Notes           string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if !models.ValidVerdict(req.FinalVerdict) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid final verdict"})
	}

	doctorID, _ := c.Locals("subject").(string)

	review := models.Review{
		Diagnosis:       req.Diagnosis,
		Recommendations: req.Recommendations,
		FinalVerdict:    req.FinalVerdict,
		Notes:           req.Notes,
		ReviewedBy:      doctorID,
		ReviewedAt:      time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := h.store.ApplyReview(ctx, id, review); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assessment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	assessment, err := h.store.AssessmentByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assessment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	notification := &models.Notification{
		UserID:       assessment.PatientID,
		Type:         models.NotificationReviewCompleted,
		Title:        "Review Completed",
		Message:      fmt.Sprintf("Dr. %s has completed the review of your assessment", assessment.DoctorName),
		AssessmentID: id,
		IsRead:       false,
		CreatedAt:    time.Now(),
	}
	if err := h.store.InsertNotification(ctx, notification); err != nil {
		h.log.Warn().Err(err).Str("patientId", assessment.PatientID).Msg("cannot create review notification")
	}

	return c.JSON(review)
}
