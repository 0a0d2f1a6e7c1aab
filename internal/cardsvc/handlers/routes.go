package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Get("/health", h.HealthHandler)

	r.Route("/card", func(r chi.Router) {
		r.Post("/", h.CreateCard)
		r.Get("/", h.ListCards)
		r.Put("/", h.UpdateCard)
		r.Get("/type/{cardType}", h.ListCardsByType)
		r.Get("/{id}", h.GetCard)
		r.Delete("/{id}", h.DeleteCard)
	})
}
