package handlers

import (
	"context"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gdmcare/assessment-api/models"
)

// Datastore is the persistence surface the handlers need. *store.Mongo
// satisfies it; tests substitute a fake.
type Datastore interface {
	InsertAssessment(ctx context.Context, a *models.Assessment) (primitive.ObjectID, error)
	AssessmentByID(ctx context.Context, id primitive.ObjectID) (*models.Assessment, error)
	AssessmentsByPatient(ctx context.Context, patientID string) ([]models.Assessment, error)
	PendingAssessmentsByDoctor(ctx context.Context, doctorID string) ([]models.Assessment, error)
	RecentAssessmentsByPatient(ctx context.Context, patientID string, limit int64) ([]models.Assessment, error)
	ApplyReview(ctx context.Context, id primitive.ObjectID, review models.Review) error
	CountAssessmentsByDoctor(ctx context.Context, doctorID, status string) (int64, error)
	CountAssessmentsByPatient(ctx context.Context, patientID, status string) (int64, error)
	DistinctPatientIDs(ctx context.Context, doctorID, riskCategory string) ([]string, error)

	InsertPatient(ctx context.Context, p *models.Patient) error
	PatientByID(ctx context.Context, id string) (*models.Patient, error)
	IncrementPatientAssessments(ctx context.Context, id string) error

	InsertDoctor(ctx context.Context, d *models.Doctor) error
	DoctorByID(ctx context.Context, id string) (*models.Doctor, error)
	AvailableDoctors(ctx context.Context) ([]models.Doctor, error)
	IncrementDoctorAssessments(ctx context.Context, id string) error

	InsertNotification(ctx context.Context, n *models.Notification) error
	NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id primitive.ObjectID) error
}

// Predictor is the external prediction collaborator.
type Predictor interface {
	Predict(ctx context.Context, intake models.IntakeData) (*models.Prediction, error)
}

type Handler struct {
	store     Datastore
	predictor Predictor
	log       zerolog.Logger
}

func New(store Datastore, predictor Predictor, log zerolog.Logger) *Handler {
	return &Handler{store: store, predictor: predictor, log: log}
}
