package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/ecomstack/ordersaga/internal/notification/domain"
)

type Service struct {
	log  *slog.Logger
	repo NotificationRepository
}

func NewService(log *slog.Logger, repo NotificationRepository) *Service {
	return &Service{log: log, repo: repo}
}

// Record appends one notification row for a consumed event.
func (s *Service) Record(ctx context.Context, typ domain.Type, payload []byte) (int, error) {
	id, err := s.repo.Save(ctx, domain.Notification{
		Type:      typ,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("notification recorded", "notification_id", id, "type", typ)
	return id, nil
}
