package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"churchshare-backend/internal/config"
	"churchshare-backend/internal/logger"
)

// fcmPushService delivers device notifications through Firebase Cloud
// Messaging.
type fcmPushService struct {
	client *messaging.Client
}

// noopPushService is used when push is disabled in config so callers
// never have to nil-check.
type noopPushService struct{}

func (noopPushService) Send(context.Context, string, string, string, map[string]string) error {
	return nil
}

// NewPushService builds the FCM client from the configured service
// account file, or a no-op sender when push is disabled.
func NewPushService(ctx context.Context, cfg config.PushConfig) (PushService, error) {
	if !cfg.Enabled {
		logger.Info("Push notifications disabled")
		return noopPushService{}, nil
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}
	return &fcmPushService{client: client}, nil
}

func (s *fcmPushService) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	_, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "send", err)
	if err != nil {
		return fmt.Errorf("failed to send push notification: %w", err)
	}
	return nil
}
