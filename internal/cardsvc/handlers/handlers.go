package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/avvvet/card-services/internal/cardsvc/models"
	"github.com/avvvet/card-services/internal/cardsvc/service"
	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	cardService *service.CardService
}

func NewHandler(cardService *service.CardService) *Handler {
	return &Handler{cardService: cardService}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "card service is running at port " + os.Getenv("CARD_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rsp)
}

// CreateCard stores the posted card unless its number is taken.
// The response is 200 with an empty body either way.
func (h *Handler) CreateCard(w http.ResponseWriter, r *http.Request) {
	card := &models.Card{}
	if err := json.NewDecoder(r.Body).Decode(card); err != nil {
		log.Errorf("Error decoding card payload: %v", err)
		http.Error(w, "invalid card payload", http.StatusBadRequest)
		return
	}

	if err := h.cardService.Insert(r.Context(), card); err != nil {
		log.Errorf("Error [CardService.Insert] %s", err)
		http.Error(w, "failed to insert card", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// GetCard is not implemented as a real lookup: the id is ignored and
// an empty card is returned, as id semantics are still unsettled.
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	_ = chi.URLParam(r, "id")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.Card{})
}

// UpdateCard is not implemented: it reports success without touching
// the store.
func (h *Handler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// DeleteCard is not implemented: it reports success without touching
// the store.
func (h *Handler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	_ = chi.URLParam(r, "id")

	w.WriteHeader(http.StatusOK)
}

// ListCards streams every stored card as a JSON array, in store order.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	h.streamCards(w, r, h.cardService.ListAll)
}

// ListCardsByType streams the cards matching the type path param.
func (h *Handler) ListCardsByType(w http.ResponseWriter, r *http.Request) {
	cardType := chi.URLParam(r, "cardType")
	h.streamCards(w, r, func(ctx context.Context, fn func(models.Card) error) error {
		return h.cardService.ListByType(ctx, cardType, fn)
	})
}

// streamCards writes a JSON array element by element as the store
// cursor yields cards, flushing between elements so large listings
// never sit fully in memory.
func (h *Handler) streamCards(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context, fn func(models.Card) error) error) {

	w.Header().Set("Content-Type", "application/json")

	flusher, _ := w.(http.Flusher)

	wrote := false
	err := list(r.Context(), func(card models.Card) error {
		bytes, err := json.Marshal(card)
		if err != nil {
			return err
		}

		sep := []byte(",")
		if !wrote {
			sep = []byte("[")
			wrote = true
		}
		if _, err := w.Write(sep); err != nil {
			return err
		}
		if _, err := w.Write(bytes); err != nil {
			return err
		}
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	if err != nil {
		log.Errorf("Error [CardService] listing cards %s", err)
		if !wrote {
			http.Error(w, "failed to list cards", http.StatusInternalServerError)
		}
		// headers are already sent mid stream, nothing left to do
		return
	}

	if !wrote {
		w.Write([]byte("[]"))
		return
	}
	w.Write([]byte("]"))
}
