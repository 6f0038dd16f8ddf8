package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/mocks"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardParams(alias string) CreateCardParams {
	return CreateCardParams{
		OwnerFirstName: "길동",
		OwnerLastName:  "홍",
		Alias:          alias,
		CardNumber:     "1234567812345678",
		CVC:            "123",
		ExpiryYear:     time.Now().Year() + 2,
		ExpiryMonth:    12,
	}
}

func TestCardOwnershipScoping(t *testing.T) {
	cardStore := mocks.NewMockCardStore()
	svc := NewCardService(cardStore, nil, nil)
	ctx := context.Background()

	userA := uuid.New()
	userB := uuid.New()

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, userA, cardParams(fmt.Sprintf("a-card-%d", i)))
		require.NoError(t, err)
	}
	var bCard uuid.UUID
	for i := 0; i < 3; i++ {
		card, err := svc.Create(ctx, userB, cardParams(fmt.Sprintf("b-card-%d", i)))
		require.NoError(t, err)
		bCard = card.ID
	}

	// Each user lists only their own cards.
	aCards, err := svc.List(ctx, userA)
	require.NoError(t, err)
	assert.Len(t, aCards, 2)

	bCards, err := svc.List(ctx, userB)
	require.NoError(t, err)
	assert.Len(t, bCards, 3)

	// Reading another user's card by ID reads as absent.
	_, err = svc.Get(ctx, userA, bCard)
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	// Mutating another user's card is refused, not hidden.
	_, err = svc.UpdateAlias(ctx, userA, bCard, "stolen")
	assert.ErrorIs(t, err, ErrNotOwned)
	err = svc.Delete(ctx, userA, bCard)
	assert.ErrorIs(t, err, ErrNotOwned)

	// The refused delete changed nothing.
	bCards, err = svc.List(ctx, userB)
	require.NoError(t, err)
	assert.Len(t, bCards, 3)

	// An ID that exists nowhere is a plain not-found.
	_, err = svc.Get(ctx, userA, uuid.New())
	assert.ErrorIs(t, err, store.ErrCardNotFound)
	err = svc.Delete(ctx, userA, uuid.New())
	assert.ErrorIs(t, err, store.ErrCardNotFound)

	// The owner can delete their own card.
	require.NoError(t, svc.Delete(ctx, userB, bCard))
	bCards, err = svc.List(ctx, userB)
	require.NoError(t, err)
	assert.Len(t, bCards, 2)
}

func TestCardCreateValidation(t *testing.T) {
	cardStore := mocks.NewMockCardStore()
	svc := NewCardService(cardStore, nil, nil)
	ctx := context.Background()
	owner := uuid.New()

	tests := []struct {
		name   string
		mutate func(p *CreateCardParams)
	}{
		{"short number", func(p *CreateCardParams) { p.CardNumber = "123456781234567" }},
		{"long cvc", func(p *CreateCardParams) { p.CVC = "1234" }},
		{"month out of range", func(p *CreateCardParams) { p.ExpiryMonth = 13 }},
		{"expired year", func(p *CreateCardParams) { p.ExpiryYear = time.Now().Year() - 1 }},
		{"owner name too long", func(p *CreateCardParams) { p.OwnerFirstName = "아주긴이름임" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := cardParams("")
			tt.mutate(&params)
			_, err := svc.Create(ctx, owner, params)
			assert.Error(t, err)
		})
	}

	assert.Empty(t, cardStore.Cards)
}

func TestCardUpdateAliasOnly(t *testing.T) {
	cardStore := mocks.NewMockCardStore()
	svc := NewCardService(cardStore, nil, nil)
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.Create(ctx, owner, cardParams("before"))
	require.NoError(t, err)

	updated, err := svc.UpdateAlias(ctx, owner, created.ID, "after")
	require.NoError(t, err)

	assert.Equal(t, "after", updated.Alias)
	assert.Equal(t, created.CardNumber, updated.CardNumber)
	assert.Equal(t, created.CVC, updated.CVC)
	assert.Equal(t, created.ExpiryYear, updated.ExpiryYear)
}

func TestCardListIsEmptyNotNil(t *testing.T) {
	cardStore := mocks.NewMockCardStore()
	svc := NewCardService(cardStore, nil, nil)

	cards, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}
