package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gdmcare/assessment-api/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("not found")

// Mongo persists the domain documents in four collections:
// assessments, patients, doctors and notifications.
type Mongo struct {
	db *mongo.Database
}

func New(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) assessments() *mongo.Collection   { return m.db.Collection("assessments") }
func (m *Mongo) patients() *mongo.Collection      { return m.db.Collection("patients") }
func (m *Mongo) doctors() *mongo.Collection       { return m.db.Collection("doctors") }
func (m *Mongo) notifications() *mongo.Collection { return m.db.Collection("notifications") }

// --- assessments ---

func (m *Mongo) InsertAssessment(ctx context.Context, a *models.Assessment) (primitive.ObjectID, error) {
	result, err := m.assessments().InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (m *Mongo) AssessmentByID(ctx context.Context, id primitive.ObjectID) (*models.Assessment, error) {
	var a models.Assessment
	err := m.assessments().FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (m *Mongo) AssessmentsByPatient(ctx context.Context, patientID string) ([]models.Assessment, error) {
	return m.findAssessments(ctx, bson.M{"patientId": patientID}, nil)
}

func (m *Mongo) PendingAssessmentsByDoctor(ctx context.Context, doctorID string) ([]models.Assessment, error) {
	return m.findAssessments(ctx, bson.M{"doctorId": doctorID, "status": models.StatusPending}, nil)
}

// RecentAssessmentsByPatient returns the patient's newest assessments,
// newest first, capped at limit.
func (m *Mongo) RecentAssessmentsByPatient(ctx context.Context, patientID string, limit int64) ([]models.Assessment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(limit)
	return m.findAssessments(ctx, bson.M{"patientId": patientID}, opts)
}

func (m *Mongo) findAssessments(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Assessment, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = m.assessments().Find(ctx, filter, opts)
	} else {
		cursor, err = m.assessments().Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	assessments := []models.Assessment{}
	if err = cursor.All(ctx, &assessments); err != nil {
		return nil, err
	}
	return assessments, nil
}

// ApplyReview sets all review fields and flips the status to completed
// in a single update. A second review on the same assessment matches
// and overwrites; only a missing document yields ErrNotFound.
func (m *Mongo) ApplyReview(ctx context.Context, id primitive.ObjectID, review models.Review) error {
	update := bson.M{
		"$set": bson.M{
			"diagnosis":       review.Diagnosis,
			"recommendations": review.Recommendations,
			"finalVerdict":    review.FinalVerdict,
			"notes":           review.Notes,
			"reviewedBy":      review.ReviewedBy,
			"reviewedAt":      review.ReviewedAt,
			"status":          models.StatusCompleted,
		},
	}

	result, err := m.assessments().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountAssessmentsByDoctor counts the doctor's assessments, optionally
// narrowed by status (empty string matches any).
func (m *Mongo) CountAssessmentsByDoctor(ctx context.Context, doctorID, status string) (int64, error) {
	filter := bson.M{"doctorId": doctorID}
	if status != "" {
		filter["status"] = status
	}
	return m.assessments().CountDocuments(ctx, filter)
}

func (m *Mongo) CountAssessmentsByPatient(ctx context.Context, patientID, status string) (int64, error) {
	filter := bson.M{"patientId": patientID}
	if status != "" {
		filter["status"] = status
	}
	return m.assessments().CountDocuments(ctx, filter)
}

// DistinctPatientIDs returns the distinct patient ids among the
// doctor's assessments, optionally narrowed by risk category. This is
// computed fresh per call; the stored Doctor.totalPatients counter is
// not consulted.
func (m *Mongo) DistinctPatientIDs(ctx context.Context, doctorID, riskCategory string) ([]string, error) {
	filter := bson.M{"doctorId": doctorID}
	if riskCategory != "" {
		filter["riskCategory"] = riskCategory
	}

	values, err := m.assessments().Distinct(ctx, "patientId", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}

// --- patients ---

func (m *Mongo) InsertPatient(ctx context.Context, p *models.Patient) error {
	_, err := m.patients().InsertOne(ctx, p)
	return err
}

func (m *Mongo) PatientByID(ctx context.Context, id string) (*models.Patient, error) {
	var p models.Patient
	err := m.patients().FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// IncrementPatientAssessments bumps the patient's assessment counter
// with a server-side $inc. The upsert creates the counter document if
// the patient record is absent.
func (m *Mongo) IncrementPatientAssessments(ctx context.Context, id string) error {
	update := bson.M{
		"$inc":         bson.M{"totalAssessments": 1},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}
	_, err := m.patients().UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	return err
}

// --- doctors ---

func (m *Mongo) InsertDoctor(ctx context.Context, d *models.Doctor) error {
	_, err := m.doctors().InsertOne(ctx, d)
	return err
}

func (m *Mongo) DoctorByID(ctx context.Context, id string) (*models.Doctor, error) {
	var d models.Doctor
	err := m.doctors().FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (m *Mongo) AvailableDoctors(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := m.doctors().Find(ctx, bson.M{"available": true})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	if err = cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (m *Mongo) IncrementDoctorAssessments(ctx context.Context, id string) error {
	update := bson.M{
		"$inc":         bson.M{"totalAssessments": 1},
		"$setOnInsert": bson.M{"createdAt": time.Now()},
	}
	_, err := m.doctors().UpdateOne(ctx, bson.M{"_id": id}, update, options.Update().SetUpsert(true))
	return err
}

// --- notifications ---

func (m *Mongo) InsertNotification(ctx context.Context, n *models.Notification) error {
	_, err := m.notifications().InsertOne(ctx, n)
	return err
}

// NotificationsByUser returns the user's notifications newest first,
// capped at 20.
func (m *Mongo) NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(20)
	cursor, err := m.notifications().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead flips the read flag false→true. Unknown ids
// yield ErrNotFound rather than a silent success.
func (m *Mongo) MarkNotificationRead(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"isRead": true}}
	result, err := m.notifications().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
