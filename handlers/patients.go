package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gdmcare/assessment-api/models"
	"github.com/gdmcare/assessment-api/store"
)

// RegisterPatient creates a patient profile keyed by the authenticated
// subject id.
func (h *Handler) RegisterPatient(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Age     int    `json:"age"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	subject, _ := c.Locals("subject").(string)

	patient := &models.Patient{
		ID:        subject,
		Name:      req.Name,
		Age:       req.Age,
		Phone:     req.Phone,
		Address:   req.Address,
		CreatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.store.InsertPatient(ctx, patient); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Cannot insert patient"})
	}

	return c.Status(fiber.StatusCreated).JSON(patient)
}

func (h *Handler) GetPatient(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	patient, err := h.store.PatientByID(ctx, c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Patient not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(patient)
}

// PatientDashboard returns the patient's counts plus the five most
// recent assessments.
func (h *Handler) PatientDashboard(c *fiber.Ctx) error {
	patientID := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	total, err := h.store.CountAssessmentsByPatient(ctx, patientID, "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	pending, err := h.store.CountAssessmentsByPatient(ctx, patientID, models.StatusPending)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	completed, err := h.store.CountAssessmentsByPatient(ctx, patientID, models.StatusCompleted)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	recent, err := h.store.RecentAssessmentsByPatient(ctx, patientID, 5)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"totalAssessments":     total,
		"pendingReviews":       pending,
		"completedAssessments": completed,
		"recentAssessments":    recent,
	})
}

// PatientAssessments lists the patient's assessments with the doctor
// record attached per item; a missing doctor record is skipped, not an
// error.
func (h *Handler) PatientAssessments(c *fiber.Ctx) error {
	patientID := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assessments, err := h.store.AssessmentsByPatient(ctx, patientID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Cannot fetch assessments"})
	}

	items := make([]fiber.Map, 0, len(assessments))
	for i := range assessments {
		item := fiber.Map{"assessment": assessments[i]}
		doctor, err := h.store.DoctorByID(ctx, assessments[i].DoctorID)
		if err == nil {
			item["doctorInfo"] = doctor
		} else if !errors.Is(err, store.ErrNotFound) {
			h.log.Warn().Err(err).Str("doctorId", assessments[i].DoctorID).Msg("cannot fetch doctor info")
		}
		items = append(items, item)
	}

	return c.JSON(items)
}
