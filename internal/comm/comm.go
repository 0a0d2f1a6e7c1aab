package comm

import (
	"time"

	"github.com/avvvet/card-services/internal/cardsvc/models"
)

// CardEvent is published to NATS after a card write succeeds.
type CardEvent struct {
	EventId    string      `json:"event_id"`
	Type       string      `json:"type"` // e.g. "card.created"
	InstanceId string      `json:"instance_id"`
	Card       models.Card `json:"card"`
	Timestamp  time.Time   `json:"timestamp"`
}
