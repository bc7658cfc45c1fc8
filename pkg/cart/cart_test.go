package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqna/souqna/pkg/cart"
	"github.com/souqna/souqna/pkg/catalog"
)

var (
	phone = catalog.Product{ID: "p1", Name: "Galaxy S23 Ultra", Price: 12499}
	watch = catalog.Product{ID: "p3", Name: "Apple Watch Series 8", Price: 4500}
)

func TestAddMergesByProductID(t *testing.T) {
	c := cart.New()

	for i := 0; i < 5; i++ {
		c.Add(phone)
	}

	lines := c.Lines()
	require.Len(t, lines, 1, "repeated adds of one id must keep a single line")
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, c.Count())
}

func TestAddDistinctProducts(t *testing.T) {
	c := cart.New()
	c.Add(phone)
	c.Add(watch)
	c.Add(phone)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, c.Count())
}

func TestAdjustQuantityClampsAtOne(t *testing.T) {
	c := cart.New()
	c.Add(phone)
	c.AdjustQuantity("p1", 4)
	require.Equal(t, 5, c.Lines()[0].Quantity)

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"small decrement", -2, 3},
		{"decrement to floor", -2, 1},
		{"large negative delta", -1000, 1},
		{"zero delta", 0, 1},
		{"increment from floor", 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.AdjustQuantity("p1", tt.delta)
			assert.Equal(t, tt.want, c.Lines()[0].Quantity)
		})
	}
}

func TestAdjustQuantityUnknownID(t *testing.T) {
	c := cart.New()
	c.Add(phone)
	c.AdjustQuantity("missing", 10)
	assert.Equal(t, 1, c.Count())
}

func TestRemove(t *testing.T) {
	c := cart.New()
	c.Add(phone)
	c.Add(watch)

	c.Remove("p1")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "p3", c.Lines()[0].Product.ID)

	// Removing an absent line is a no-op
	c.Remove("p1")
	assert.Equal(t, 1, c.Len())
}

func TestTotalRecomputedFresh(t *testing.T) {
	c := cart.New()
	c.Add(phone)
	c.Add(phone)
	c.Add(watch)

	want := 12499.0*2 + 4500.0
	assert.Equal(t, want, c.Total())
	assert.Equal(t, want, c.Total(), "calling Total twice without mutation yields the same value")

	c.AdjustQuantity("p3", 1)
	assert.Equal(t, 12499.0*2+4500.0*2, c.Total())
}

func TestPriceFrozenAtAddTime(t *testing.T) {
	store := catalog.NewStore([]catalog.Product{phone})
	c := cart.New()

	p, ok := store.Find("p1")
	require.True(t, ok)
	c.Add(p)

	// Delete the source product; the cart line keeps its snapshot
	store.Remove("p1")
	require.Equal(t, 0, store.Len())

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 12499.0, lines[0].Product.Price)
	assert.Equal(t, 12499.0, c.Total())
}

func TestEmptyCart(t *testing.T) {
	c := cart.New()
	assert.Zero(t, c.Total())
	assert.Zero(t, c.Count())
	assert.Empty(t, c.Lines())
}
