package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/pangpangeats/pangpangeats-api/internal/api/shared"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/service"
)

// CardHandler handles credit card API requests. Every route sits behind
// the authentication middleware; the handler never reads an owner from the
// request body.
type CardHandler struct {
	cardService service.CardService
	validator   *validator.Validate
}

// NewCardHandler creates a new CardHandler with the given dependencies.
func NewCardHandler(cardService service.CardService) *CardHandler {
	return &CardHandler{
		cardService: cardService,
		validator:   validator.New(),
	}
}

func toCardResponse(card *domain.CreditCard) CardResponse {
	return CardResponse{
		ID:             card.ID,
		OwnerFirstName: card.OwnerFirstName,
		OwnerLastName:  card.OwnerLastName,
		Alias:          card.Alias,
		CardNumber:     card.MaskedNumber(),
		ExpiryYear:     card.ExpiryYear,
		ExpiryMonth:    card.ExpiryMonth,
		CreatedAt:      card.CreatedAt,
	}
}

// Create handles POST /api/credit-cards.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.Create(r.Context(), userID, service.CreateCardParams{
		OwnerFirstName: req.OwnerFirstName,
		OwnerLastName:  req.OwnerLastName,
		Alias:          req.Alias,
		CardNumber:     req.CardNumber,
		CVC:            req.CVC,
		ExpiryYear:     req.ExpiryYear,
		ExpiryMonth:    req.ExpiryMonth,
	})
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toCardResponse(card))
}

// List handles GET /api/credit-cards. Only the requester's own cards come
// back, never a global listing.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cards, err := h.cardService.List(r.Context(), userID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	response := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, toCardResponse(card))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// Get handles GET /api/credit-cards/{id}. A card outside the requester's
// set reads as absent.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	card, err := h.cardService.Get(r.Context(), userID, cardID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toCardResponse(card))
}

// Update handles PUT and PATCH on /api/credit-cards/{id}. Only the alias
// changes; a foreign card is a 403, an absent one a 404.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.UpdateAlias(r.Context(), userID, cardID, req.Alias)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toCardResponse(card))
}

// Delete handles DELETE /api/credit-cards/{id}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	cardID, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.cardService.Delete(r.Context(), userID, cardID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
