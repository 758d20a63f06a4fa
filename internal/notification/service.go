package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/repository"
)

// Sink delivers a composed message to the cook. Actual delivery (share
// sheet, clipboard, messaging app) lives outside this service.
type Sink interface {
	Deliver(ctx context.Context, groupID, date, message string) error
}

// LogSink writes the message to the structured log.
type LogSink struct{}

func (LogSink) Deliver(ctx context.Context, groupID, date, message string) error {
	slog.InfoContext(ctx, "[Cook] notification ready", "group_id", groupID, "date", date, "message", message)
	return nil
}

// Service composes cook notifications and keeps the last one per group and date.
type Service struct {
	notificationRepo repository.NotificationRepository
	sink             Sink
	now              func() time.Time
}

func NewService(notificationRepo repository.NotificationRepository, sink Sink) *Service {
	if sink == nil {
		sink = LogSink{}
	}
	return &Service{
		notificationRepo: notificationRepo,
		sink:             sink,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Send composes the message, overwrites the log entry for (groupID, date)
// and hands the message to the sink. The message is returned even when
// the sink fails, since the log entry is already written.
func (s *Service) Send(ctx context.Context, groupID, date string, summary models.DailySummary) (string, error) {
	message := Compose(date, summary)

	entry := &models.Notification{
		Message: message,
		SentAt:  s.now(),
		Summary: summary,
	}
	if err := s.notificationRepo.Save(ctx, groupID, date, entry); err != nil {
		return "", fmt.Errorf("save notification: %w", err)
	}

	if err := s.sink.Deliver(ctx, groupID, date, message); err != nil {
		slog.WarnContext(ctx, "[Cook] sink delivery failed", "group_id", groupID, "date", date, "error", err)
	}
	return message, nil
}

// Get returns the last notification for (groupID, date), or nil.
func (s *Service) Get(ctx context.Context, groupID, date string) (*models.Notification, error) {
	return s.notificationRepo.Find(ctx, groupID, date)
}
