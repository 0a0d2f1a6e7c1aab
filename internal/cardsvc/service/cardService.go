package service

import (
	"context"
	"errors"

	"github.com/avvvet/card-services/internal/cardsvc/models"
	"github.com/avvvet/card-services/internal/cardsvc/store"

	log "github.com/sirupsen/logrus"
)

// CardStore is the record store contract consumed by the service:
// lookup by the number key, save, and a streamed walk of all cards.
type CardStore interface {
	GetByNumber(ctx context.Context, number string) (*models.Card, error)
	Save(ctx context.Context, card *models.Card) (*models.Card, error)
	Each(ctx context.Context, fn func(models.Card) error) error
}

// Publisher notifies downstream consumers about stored cards.
type Publisher interface {
	PublishCardCreated(card models.Card)
}

type CardService struct {
	store  CardStore
	events Publisher
}

func NewCardService(store CardStore, events Publisher) *CardService {
	return &CardService{store: store, events: events}
}

// Insert writes the candidate card unless one with the same number is
// already stored. A duplicate is dropped silently, first write wins;
// callers cannot tell a no-op from a real write. The unique index on
// number catches the race where two inserts pass the lookup at once,
// and that collision is treated the same way.
func (s *CardService) Insert(ctx context.Context, card *models.Card) error {
	existing, err := s.store.GetByNumber(ctx, card.Number)
	if err != nil {
		return err
	}
	if existing != nil {
		log.Infof("card with number %s already exists, skipping insert", card.Number)
		return nil
	}

	saved, err := s.store.Save(ctx, card)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateNumber) {
			log.Infof("concurrent insert for number %s lost the race, skipping", card.Number)
			return nil
		}
		return err
	}

	if s.events != nil {
		s.events.PublishCardCreated(*saved)
	}

	return nil
}

// ListAll streams every stored card to fn in store order.
func (s *CardService) ListAll(ctx context.Context, fn func(models.Card) error) error {
	return s.store.Each(ctx, fn)
}

// ListByType streams only cards whose type matches cardType.
func (s *CardService) ListByType(ctx context.Context, cardType string, fn func(models.Card) error) error {
	return s.store.Each(ctx, func(card models.Card) error {
		if card.Type != cardType {
			return nil
		}
		return fn(card)
	})
}
