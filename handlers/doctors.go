package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gdmcare/assessment-api/models"
	"github.com/gdmcare/assessment-api/store"
)

// RegisterDoctor creates a doctor profile keyed by the authenticated
// subject id.
func (h *Handler) RegisterDoctor(c *fiber.Ctx) error {
	var req struct {
		Name           string `json:"name"`
		Specialization string `json:"specialization"`
		License        string `json:"license"`
		Phone          string `json:"phone"`
		Hospital       string `json:"hospital"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name is required"})
	}

	subject, _ := c.Locals("subject").(string)

	doctor := &models.Doctor{
		ID:             subject,
		Name:           req.Name,
		Specialization: req.Specialization,
		License:        req.License,
		Phone:          req.Phone,
		Hospital:       req.Hospital,
		Available:      true,
		CreatedAt:      time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.store.InsertDoctor(ctx, doctor); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Cannot insert doctor"})
	}

	return c.Status(fiber.StatusCreated).JSON(doctor)
}

// ListDoctors returns the doctors currently marked available.
func (h *Handler) ListDoctors(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	doctors, err := h.store.AvailableDoctors(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Cannot fetch doctors"})
	}

	return c.JSON(doctors)
}

func (h *Handler) GetDoctor(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	doctor, err := h.store.DoctorByID(ctx, c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Doctor not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(doctor)
}

// DoctorDashboard aggregates the doctor's counts by filtering the
// assessment collection. totalPatients and highRiskPatients are
// distinct patient cardinalities computed fresh per call.
func (h *Handler) DoctorDashboard(c *fiber.Ctx) error {
	doctorID := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	patients, err := h.store.DistinctPatientIDs(ctx, doctorID, "")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	pending, err := h.store.CountAssessmentsByDoctor(ctx, doctorID, models.StatusPending)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	completed, err := h.store.CountAssessmentsByDoctor(ctx, doctorID, models.StatusCompleted)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	highRisk, err := h.store.DistinctPatientIDs(ctx, doctorID, "High Risk")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"totalPatients":        len(patients),
		"pendingAssessments":   pending,
		"completedAssessments": completed,
		"highRiskPatients":     len(highRisk),
	})
}

// PendingAssessments lists the doctor's pending assessments with the
// patient record attached per item. A missing patient record is a
// soft failure: the assessment is returned without patientInfo.
func (h *Handler) PendingAssessments(c *fiber.Ctx) error {
	doctorID := c.Params("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assessments, err := h.store.PendingAssessmentsByDoctor(ctx, doctorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Cannot fetch assessments"})
	}

	items := make([]fiber.Map, 0, len(assessments))
	for i := range assessments {
		item := fiber.Map{"assessment": assessments[i]}
		patient, err := h.store.PatientByID(ctx, assessments[i].PatientID)
		if err == nil {
			item["patientInfo"] = patient
		} else if !errors.Is(err, store.ErrNotFound) {
			h.log.Warn().Err(err).Str("patientId", assessments[i].PatientID).Msg("cannot fetch patient info")
		}
		items = append(items, item)
	}

	return c.JSON(items)
}
