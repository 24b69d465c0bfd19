package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func assertTotalsConsistent(t *testing.T, cart *Cart) {
	t.Helper()
	wantQty := 0
	wantPrice := 0.0
	for _, item := range cart.Items {
		wantQty += item.Quantity
		wantPrice += float64(item.Quantity) * item.Price
	}
	assert.Equal(t, wantQty, cart.TotalQuantity)
	assert.Equal(t, wantPrice, cart.TotalPrice)
}

func TestCartAddMergeRemove(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := &Cart{UserID: primitive.NewObjectID()}

	cart.AddItem(CartItem{ProductID: productID, Quantity: 2, Price: 100, Color: "red"})
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.TotalQuantity)
	assert.Equal(t, 200.0, cart.TotalPrice)

	// Same product and color merges into the existing line.
	cart.AddItem(CartItem{ProductID: productID, Quantity: 1, Price: 100, Color: "red"})
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, 300.0, cart.TotalPrice)

	removed := cart.RemoveItem(cart.Items[0].ID)
	assert.True(t, removed)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalQuantity)
	assert.Zero(t, cart.TotalPrice)
}

func TestCartAddDifferentColorAppends(t *testing.T) {
	productID := primitive.NewObjectID()
	cart := &Cart{}

	cart.AddItem(CartItem{ProductID: productID, Quantity: 1, Price: 50, Color: "red"})
	cart.AddItem(CartItem{ProductID: productID, Quantity: 2, Price: 50, Color: "blue"})

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.TotalQuantity)
	assert.Equal(t, 150.0, cart.TotalPrice)
	assertTotalsConsistent(t, cart)
}

func TestCartSetQuantity(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(CartItem{ProductID: primitive.NewObjectID(), Quantity: 1, Price: 25})
	itemID := cart.Items[0].ID

	assert.True(t, cart.SetQuantity(itemID, 4))
	assert.Equal(t, 4, cart.TotalQuantity)
	assert.Equal(t, 100.0, cart.TotalPrice)

	assert.False(t, cart.SetQuantity(primitive.NewObjectID(), 1))
	assert.False(t, cart.RemoveItem(primitive.NewObjectID()))
}

func TestCartTotalsAfterMutationSequence(t *testing.T) {
	cart := &Cart{}
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	cart.AddItem(CartItem{ProductID: a, Quantity: 2, Price: 10})
	cart.AddItem(CartItem{ProductID: b, Quantity: 1, Price: 99.5})
	cart.AddItem(CartItem{ProductID: a, Quantity: 3, Price: 10})
	assertTotalsConsistent(t, cart)

	cart.SetQuantity(cart.Items[1].ID, 7)
	assertTotalsConsistent(t, cart)

	cart.RemoveItem(cart.Items[0].ID)
	assertTotalsConsistent(t, cart)

	cart.Clear()
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalQuantity)
	assert.Zero(t, cart.TotalPrice)
}
