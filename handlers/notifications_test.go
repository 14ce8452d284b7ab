package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gdmcare/assessment-api/models"
)

func TestListNotifications_CapAndOrder(t *testing.T) {
	st := newFakeStore()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 25; i++ {
		st.notifications = append(st.notifications, &models.Notification{
			ID:        primitive.NewObjectID(),
			UserID:    "patient-1",
			Type:      models.NotificationReviewCompleted,
			Message:   fmt.Sprintf("notification %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	app := testApp(st, &fakePredictor{}, "")

	resp, data := doJSON(t, app, http.MethodGet, "/notifications/patient-1", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var notifications []models.Notification
	if err := json.Unmarshal(data, &notifications); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(notifications) != 20 {
		t.Fatalf("notifications = %d, want exactly 20", len(notifications))
	}
	if notifications[0].Message != "notification 24" {
		t.Errorf("first = %q, want the newest", notifications[0].Message)
	}
	for i := 1; i < len(notifications); i++ {
		if notifications[i].CreatedAt.After(notifications[i-1].CreatedAt) {
			t.Fatal("notifications not ordered newest first")
		}
	}
}

func TestListNotifications_Empty(t *testing.T) {
	app := testApp(newFakeStore(), &fakePredictor{}, "")

	resp, data := doJSON(t, app, http.MethodGet, "/notifications/nobody", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var notifications []models.Notification
	if err := json.Unmarshal(data, &notifications); err != nil {
		t.Fatalf("unmarshal: %v (body %s)", err, data)
	}
	if len(notifications) != 0 {
		t.Errorf("notifications = %d, want 0", len(notifications))
	}
}

func TestMarkNotificationRead(t *testing.T) {
	st := newFakeStore()
	n := &models.Notification{
		ID:        primitive.NewObjectID(),
		UserID:    "patient-1",
		Type:      models.NotificationNewAssessment,
		CreatedAt: time.Now(),
	}
	st.notifications = append(st.notifications, n)
	app := testApp(st, &fakePredictor{}, "")

	resp, _ := doJSON(t, app, http.MethodPut, "/notifications/"+n.ID.Hex()+"/read", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !st.notifications[0].IsRead {
		t.Error("read flag not set")
	}
}

func TestMarkNotificationRead_NotFound(t *testing.T) {
	app := testApp(newFakeStore(), &fakePredictor{}, "")

	resp, _ := doJSON(t, app, http.MethodPut, "/notifications/"+primitive.NewObjectID().Hex()+"/read", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404, not a silent success", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, http.MethodPut, "/notifications/bogus/read", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed id", resp.StatusCode)
	}
}
