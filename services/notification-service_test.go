package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"task-management/backend/utils"
)

func TestNotifyPostsToNotificationsService(t *testing.T) {
	var got notificationRequest
	var role string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications/add" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		role = r.Header.Get("Role")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	svc := NewNotificationService(server.URL+"/", server.Client(), utils.NewCircuitBreaker("test-cb", time.Second))
	if err := svc.Notify(context.Background(), "42", "ana", "hello"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if got.UserID != "42" || got.Username != "ana" || got.Message != "hello" {
		t.Errorf("payload = %+v", got)
	}
	if role != "manager" {
		t.Errorf("Role header = %q", role)
	}
}

func TestNotifyOpensBreakerAfterFailures(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewNotificationService(server.URL, server.Client(), utils.NewCircuitBreaker("failing-cb", time.Minute))
	for i := 0; i < 6; i++ {
		if err := svc.Notify(context.Background(), "1", "ana", "hi"); err == nil {
			t.Fatalf("attempt %d: expected an error", i)
		}
	}
	if hits != 4 {
		t.Errorf("expected the breaker to stop calls after 4 failures, server saw %d", hits)
	}
}
