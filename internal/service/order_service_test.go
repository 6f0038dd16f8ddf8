package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pangpangeats/pangpangeats-api/internal/domain"
	"github.com/pangpangeats/pangpangeats-api/internal/mocks"
	"github.com/pangpangeats/pangpangeats-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderFixture struct {
	svc             *OrderServiceImpl
	orderStore      *mocks.MockOrderStore
	cardStore       *mocks.MockCardStore
	restaurantStore *mocks.MockRestaurantStore
	ordererID       uuid.UUID
	menuItem        *domain.MenuItem
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	orderStore := mocks.NewMockOrderStore()
	cardStore := mocks.NewMockCardStore()
	restaurantStore := mocks.NewMockRestaurantStore()

	item, err := domain.NewMenuItem(uuid.New(), "김치찌개", "", 9000)
	require.NoError(t, err)
	require.NoError(t, restaurantStore.CreateMenuItem(context.Background(), item))

	return &orderFixture{
		svc:             NewOrderService(orderStore, cardStore, restaurantStore, nil, nil),
		orderStore:      orderStore,
		cardStore:       cardStore,
		restaurantStore: restaurantStore,
		ordererID:       uuid.New(),
		menuItem:        item,
	}
}

func TestOrderCreate(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, f.ordererID, CreateOrderParams{
		Selections: []SelectionParams{
			{MenuItemID: f.menuItem.ID, Amount: 2, Request: "extra spicy"},
		},
		Request: "leave at door",
	})
	require.NoError(t, err)

	assert.Equal(t, 18000, order.TotalCost)
	assert.Equal(t, f.ordererID, order.OrdererID())
	assert.Len(t, order.Selections, 1)
	assert.False(t, order.IsPaid)
	assert.Len(t, f.orderStore.Orders, 1)
}

func TestOrderCreateRequiresSelections(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Create(context.Background(), f.ordererID, CreateOrderParams{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.orderStore.Orders)
}

func TestOrderCreateUnknownMenuItem(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Create(context.Background(), f.ordererID, CreateOrderParams{
		Selections: []SelectionParams{{MenuItemID: uuid.New(), Amount: 1}},
	})
	assert.ErrorIs(t, err, store.ErrMenuItemNotFound)
}

func TestOrderCreateUnavailableMenuItem(t *testing.T) {
	f := newOrderFixture(t)
	f.menuItem.IsAvailable = false

	_, err := f.svc.Create(context.Background(), f.ordererID, CreateOrderParams{
		Selections: []SelectionParams{{MenuItemID: f.menuItem.ID, Amount: 1}},
	})
	assert.ErrorIs(t, err, ErrMenuUnavailable)
}

func TestOrderCreateWithForeignCard(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	// A card owned by someone else reads as absent to the orderer.
	foreign, err := domain.NewCreditCard(
		uuid.New(), "길동", "홍", "", "1234567812345678", "123",
		time.Now().Year()+1, 6,
	)
	require.NoError(t, err)
	require.NoError(t, f.cardStore.Create(ctx, foreign))

	_, err = f.svc.Create(ctx, f.ordererID, CreateOrderParams{
		Selections:      []SelectionParams{{MenuItemID: f.menuItem.ID, Amount: 1}},
		PurchasedCardID: &foreign.ID,
	})
	assert.ErrorIs(t, err, store.ErrCardNotFound)
}

func TestOrderCreateWithOwnCard(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	own, err := domain.NewCreditCard(
		f.ordererID, "길동", "홍", "", "1234567812345678", "123",
		time.Now().Year()+1, 6,
	)
	require.NoError(t, err)
	require.NoError(t, f.cardStore.Create(ctx, own))

	order, err := f.svc.Create(ctx, f.ordererID, CreateOrderParams{
		Selections:      []SelectionParams{{MenuItemID: f.menuItem.ID, Amount: 1}},
		PurchasedCardID: &own.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, order.PurchasedCardID)
	assert.Equal(t, own.ID, *order.PurchasedCardID)
}

func TestOrderListAndGetAreOwnerScoped(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, f.ordererID, CreateOrderParams{
		Selections: []SelectionParams{{MenuItemID: f.menuItem.ID, Amount: 1}},
	})
	require.NoError(t, err)

	mine, err := f.svc.List(ctx, f.ordererID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	other := uuid.New()
	theirs, err := f.svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = f.svc.Get(ctx, other, order.ID)
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}

func TestOrderCancel(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, f.ordererID, CreateOrderParams{
		Selections: []SelectionParams{{MenuItemID: f.menuItem.ID, Amount: 1}},
	})
	require.NoError(t, err)

	canceled, err := f.svc.Cancel(ctx, f.ordererID, order.ID)
	require.NoError(t, err)
	assert.True(t, canceled.IsCanceled)

	// Cancel is idempotent.
	again, err := f.svc.Cancel(ctx, f.ordererID, order.ID)
	require.NoError(t, err)
	assert.True(t, again.IsCanceled)
}

func TestOrderCancelRefusals(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, f.ordererID, CreateOrderParams{
		Selections: []SelectionParams{{MenuItemID: f.menuItem.ID, Amount: 1}},
	})
	require.NoError(t, err)

	// Someone else's order is refused outright.
	_, err = f.svc.Cancel(ctx, uuid.New(), order.ID)
	assert.ErrorIs(t, err, ErrNotOwned)

	// A delivered order cannot be canceled.
	order.IsDelivered = true
	_, err = f.svc.Cancel(ctx, f.ordererID, order.ID)
	assert.ErrorIs(t, err, ErrOrderDelivered)

	// An unknown order is a plain not-found.
	_, err = f.svc.Cancel(ctx, f.ordererID, uuid.New())
	assert.ErrorIs(t, err, store.ErrOrderNotFound)
}
