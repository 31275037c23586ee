package cart

import (
	"testing"
	"time"

	"storefront/internal/product"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputeTotal(t *testing.T) {
	a, b, gone := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	products := map[primitive.ObjectID]*product.Product{
		a: {ID: a, Price: 0.1},
		b: {ID: b, Price: 0.2},
	}

	items := []Item{
		{ProductID: a, Quantity: 3, Selected: true},
		{ProductID: b, Quantity: 1, Selected: true},
		{ProductID: b, Quantity: 9, Selected: false},
		{ProductID: gone, Quantity: 1, Selected: true},
	}

	assert.Equal(t, 0.5, computeTotal(items, products))
	assert.Equal(t, 0.0, computeTotal(nil, products))
}

func TestToView(t *testing.T) {
	t.Run("Nil cart", func(t *testing.T) {
		v := toView(nil, nil)
		assert.NotNil(t, v.Items)
		assert.Empty(t, v.Items)
		assert.Empty(t, v.ID)
	})

	t.Run("Lines with products", func(t *testing.T) {
		id := primitive.NewObjectID()
		updated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		c := &Cart{
			ID:          primitive.NewObjectID(),
			Items:       []Item{{ProductID: id, Quantity: 3, Selected: true}},
			TotalAmount: 29.97,
			UpdatedAt:   updated,
		}
		products := map[primitive.ObjectID]*product.Product{id: {ID: id, Name: "Case", Price: 9.99}}

		v := toView(c, products)
		assert.Equal(t, c.ID.Hex(), v.ID)
		assert.Equal(t, 29.97, v.TotalAmount)
		assert.Equal(t, 29.97, v.Items[0].Subtotal)
		assert.Equal(t, "Case", v.Items[0].Product.Name)
		assert.Equal(t, id.Hex(), v.Items[0].ProductID)
		assert.Equal(t, updated, *v.UpdatedAt)
	})
}
