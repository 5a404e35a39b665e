package application

import (
	"context"

	"github.com/ecomstack/ordersaga/internal/notification/domain"
)

type NotificationRepository interface {
	Save(ctx context.Context, n domain.Notification) (int, error)
}
