package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mahirash.com/app/pkg/view"
)

type ShowcaseHandler struct {
	Showcase Showcase
	Currency string
}

func NewShowcaseHandler(s Showcase, currency string) *ShowcaseHandler {
	return &ShowcaseHandler{Showcase: s, Currency: currency}
}

type showcaseCard struct {
	ID      string       `json:"id"`
	Brand   string       `json:"brand"`
	Name    string       `json:"name"`
	Badge   string       `json:"badge,omitempty"`
	Image   string       `json:"image"`
	Variant view.Variant `json:"variant"`
}

// Get handles GET /api/showcase: the cards currently in the carousel window.
func (h *ShowcaseHandler) Get(c *gin.Context) {
	window := h.Showcase.Window()
	cards := make([]showcaseCard, 0, len(window))
	for _, card := range window {
		cards = append(cards, showcaseCard{
			ID:      card.Product.ID,
			Brand:   card.Product.Brand,
			Name:    card.Product.Name,
			Badge:   card.Badge,
			Image:   card.Variant.Cover(),
			Variant: view.NewVariant(card.Variant, h.Currency),
		})
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}
