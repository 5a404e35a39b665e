package domain

import (
	"encoding/json"
	"time"
)

type Type string

const TypeOrderConfirmation Type = "ORDER_CONFIRMATION"

// Notification is one append-only row per consumed event. The payload is the
// event body verbatim; there is no referential link back to the order.
type Notification struct {
	ID        int
	Type      Type
	Payload   json.RawMessage
	CreatedAt time.Time
}
