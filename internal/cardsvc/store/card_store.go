package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/avvvet/card-services/internal/cardsvc/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CardCollection    = "cards"
	counterCollection = "counters"
)

// ErrDuplicateNumber is returned by Save when the unique index on
// the number field rejects the write.
var ErrDuplicateNumber = errors.New("card number already exists")

type CardStore struct {
	cards    *mongo.Collection
	counters *mongo.Collection
}

func NewCardStore(db *mongo.Database) *CardStore {
	return &CardStore{
		cards:    db.Collection(CardCollection),
		counters: db.Collection(counterCollection),
	}
}

// GetByNumber returns the card with the given number, or (nil, nil)
// when no document matches.
func (s *CardStore) GetByNumber(ctx context.Context, number string) (*models.Card, error) {
	var card models.Card
	err := s.cards.FindOne(ctx, bson.M{"number": number}).Decode(&card)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get card by number: %w", err)
	}

	return &card, nil
}

// Save inserts the card, assigning an id from the counter sequence
// when none is set.
func (s *CardStore) Save(ctx context.Context, card *models.Card) (*models.Card, error) {
	if card.ID == nil {
		id, err := s.nextID(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to assign card id: %w", err)
		}
		card.ID = &id
	}

	_, err := s.cards.InsertOne(ctx, card)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	return card, nil
}

// Each walks every card in collection order, invoking fn once per
// document. The cursor is consumed lazily, so callers can stream
// results without holding the full set in memory.
func (s *CardStore) Each(ctx context.Context, fn func(models.Card) error) error {
	cur, err := s.cards.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var card models.Card
		if err := cur.Decode(&card); err != nil {
			return fmt.Errorf("failed to decode card: %w", err)
		}
		if err := fn(card); err != nil {
			return err
		}
	}

	return cur.Err()
}

// nextID increments and returns the cards sequence counter.
func (s *CardStore) nextID(ctx context.Context) (int64, error) {
	var seq struct {
		Value int64 `bson:"value"`
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": CardCollection},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		opts,
	).Decode(&seq)
	if err != nil {
		return 0, err
	}

	return seq.Value, nil
}
