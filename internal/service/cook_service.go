package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Marga-Ghale/flatmeals-backend/internal/metrics"
	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/notification"
	"github.com/Marga-Ghale/flatmeals-backend/internal/socket"
)

// Notification triggers, used as the metrics label.
const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
)

// ============================================
// Cook Service
// ============================================

type CookService interface {
	// Notify composes and logs the cook message for date. A nil summary is
	// computed from the stored headcount.
	Notify(ctx context.Context, groupID, date string, summary *models.DailySummary, trigger string) (string, error)
	GetNotification(ctx context.Context, groupID, date string) (*models.Notification, error)
}

type cookService struct {
	headcount   HeadcountService
	notifSvc    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewCookService(headcount HeadcountService, notifSvc *notification.Service, broadcaster *socket.Broadcaster) CookService {
	return &cookService{
		headcount:   headcount,
		notifSvc:    notifSvc,
		broadcaster: broadcaster,
	}
}

func (s *cookService) Notify(ctx context.Context, groupID, date string, summary *models.DailySummary, trigger string) (string, error) {
	if _, err := ParseDate(date); err != nil {
		return "", err
	}

	if summary == nil {
		computed, err := s.headcount.Summarize(ctx, groupID, date)
		if err != nil {
			return "", err
		}
		summary = computed
	}

	message, err := s.notifSvc.Send(ctx, groupID, date, *summary)
	if err != nil {
		return "", fmt.Errorf("notify cook: %w", err)
	}

	metrics.CookNotifications.WithLabelValues(trigger).Inc()
	s.broadcaster.BroadcastCookNotified(groupID, date, message)
	slog.InfoContext(ctx, "Cook notified", "group_id", groupID, "date", date, "trigger", trigger)
	return message, nil
}

func (s *cookService) GetNotification(ctx context.Context, groupID, date string) (*models.Notification, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	n, err := s.notifSvc.Get(ctx, groupID, date)
	if err != nil {
		return nil, fmt.Errorf("get notification: %w", err)
	}
	if n == nil {
		return nil, ErrNotFound
	}
	return n, nil
}
