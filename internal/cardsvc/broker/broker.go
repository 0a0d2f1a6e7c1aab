package broker

import (
	"encoding/json"
	"time"

	config "github.com/avvvet/card-services/configs"
	"github.com/avvvet/card-services/internal/cardsvc/models"
	"github.com/avvvet/card-services/internal/comm"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const TopicCardCreated = "card.created"

// Broker publishes card lifecycle events. A nil broker is valid and
// publishes nothing, so the HTTP surface works without a NATS server.
type Broker struct {
	Conn *nats.Conn
}

func NewBroker(nc *nats.Conn) *Broker {
	return &Broker{Conn: nc}
}

// PublishCardCreated notifies subscribers that a new card was stored.
func (b *Broker) PublishCardCreated(card models.Card) {
	if b == nil || b.Conn == nil {
		return
	}

	event := comm.CardEvent{
		EventId:    uuid.New().String(),
		Type:       TopicCardCreated,
		InstanceId: config.GetInstanceId(),
		Card:       card,
		Timestamp:  time.Now(),
	}

	bytes, err := json.Marshal(event)
	if err != nil {
		log.Errorf("Failed to marshal card event: %v", err)
		return
	}

	if err := b.Conn.Publish(TopicCardCreated, bytes); err != nil {
		log.Errorf("Error publishing to topic %s: %s", TopicCardCreated, err)
	}
}
