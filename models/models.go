package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assessment statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Final verdicts a doctor can attach to a review.
const (
	VerdictConfirmed      = "GDM Confirmed"
	VerdictRuledOut       = "GDM Ruled Out"
	VerdictFurtherTesting = "Further Testing Required"
)

// Notification types.
const (
	NotificationNewAssessment   = "new_assessment"
	NotificationReviewCompleted = "review_completed"
)

// Assessment is one risk-evaluation episode. It is created with
// status=pending and the prediction fields copied verbatim from the
// prediction service; the review fields are written together when a
// doctor completes the review.
type Assessment struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PatientID   string             `json:"patientId" bson:"patientId"`
	DoctorID    string             `json:"doctorId" bson:"doctorId"`
	PatientName string             `json:"patientName" bson:"patientName"`
	DoctorName  string             `json:"doctorName" bson:"doctorName"`
	Intake      IntakeData         `json:"intakeData" bson:"intakeData"`

	Prediction        string          `json:"prediction" bson:"prediction"`
	GDMProbability    float64         `json:"gdm_probability" bson:"gdmProbability"`
	NonGDMProbability float64         `json:"non_gdm_probability" bson:"nonGdmProbability"`
	RiskCategory      string          `json:"risk_category" bson:"riskCategory"`
	Confidence        float64         `json:"confidence" bson:"confidence"`
	RiskFactors       map[string]bool `json:"risk_factors" bson:"riskFactors"`
	ModelVersion      string          `json:"model_version" bson:"modelVersion"`

	Status string `json:"status" bson:"status"`

	Diagnosis       string     `json:"diagnosis,omitempty" bson:"diagnosis,omitempty"`
	Recommendations string     `json:"recommendations,omitempty" bson:"recommendations,omitempty"`
	Notes           string     `json:"notes,omitempty" bson:"notes,omitempty"`
	FinalVerdict    string     `json:"finalVerdict,omitempty" bson:"finalVerdict,omitempty"`
	ReviewedBy      string     `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty" bson:"reviewedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Review carries the fields written by a doctor when completing an
// assessment. All fields are applied together in a single update.
type Review struct {
	Diagnosis       string    `json:"diagnosis"`
	Recommendations string    `json:"recommendations"`
	FinalVerdict    string    `json:"finalVerdict"`
	Notes           string    `json:"notes"`
	ReviewedBy      string    `json:"reviewedBy"`
	ReviewedAt      time.Time `json:"reviewedAt"`
}

// ValidVerdict reports whether v belongs to the closed verdict set.
func ValidVerdict(v string) bool {
	switch v {
	case VerdictConfirmed, VerdictRuledOut, VerdictFurtherTesting:
		return true
	}
	return false
}

// Patient is keyed by the external identity subject id.
type Patient struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Age              int       `json:"age" bson:"age"`
	Phone            string    `json:"phone" bson:"phone"`
	Address          string    `json:"address" bson:"address"`
	TotalAssessments int       `json:"totalAssessments" bson:"totalAssessments"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
}

// Doctor is keyed by the external identity subject id. TotalPatients is
// a stored counter that dashboards ignore; they compute distinct
// patients from the assessment collection instead.
type Doctor struct {
	ID               string    `json:"id" bson:"_id"`
	Name             string    `json:"name" bson:"name"`
	Specialization   string    `json:"specialization" bson:"specialization"`
	License          string    `json:"license" bson:"license"`
	Phone            string    `json:"phone" bson:"phone"`
	Hospital         string    `json:"hospital" bson:"hospital"`
	Available        bool      `json:"available" bson:"available"`
	TotalPatients    int       `json:"totalPatients" bson:"totalPatients"`
	TotalAssessments int       `json:"totalAssessments" bson:"totalAssessments"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
}

// Notification is created as a side effect of assessment creation and
// review completion. IsRead is the only mutable field.
type Notification struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID       string             `json:"userId" bson:"userId"`
	Type         string             `json:"type" bson:"type"`
	Title        string             `json:"title" bson:"title"`
	Message      string             `json:"message" bson:"message"`
	AssessmentID primitive.ObjectID `json:"assessmentId,omitempty" bson:"assessmentId,omitempty"`
	IsRead       bool               `json:"isRead" bson:"isRead"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// Prediction is the response of the external prediction service. JSON
// names match the service's wire format so the struct decodes directly.
type Prediction struct {
	Prediction        string          `json:"prediction"`
	GDMProbability    float64         `json:"gdm_probability"`
	NonGDMProbability float64         `json:"non_gdm_probability"`
	RiskCategory      string          `json:"risk_category"`
	Confidence        float64         `json:"confidence"`
	RiskFactors       map[string]bool `json:"risk_factors"`
	ModelVersion      string          `json:"model_version"`
}
