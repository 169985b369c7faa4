package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"task-management/backend/logging"

	"github.com/sony/gobreaker"
)

// NotificationService posts user notifications to the notifications service
// through a circuit breaker.
type NotificationService struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewNotificationService(baseURL string, client *http.Client, breaker *gobreaker.CircuitBreaker) *NotificationService {
	return &NotificationService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		breaker: breaker,
	}
}

type notificationRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

func (s *NotificationService) Notify(ctx context.Context, userID, username, message string) error {
	payload, err := json.Marshal(notificationRequest{
		UserID:   userID,
		Username: username,
		Message:  message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	_, err = s.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/notifications/add", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Role", "manager")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("notifications service responded with status %d", resp.StatusCode)
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("notification for %s not delivered: %w", username, err)
	}

	logging.Logger.Debugf("Event ID: NOTIFICATION_SENT, Description: Notification sent to user %s", username)
	return nil
}
