package cart

import (
	"storefront/internal/product"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// computeTotal sums price x quantity over selected lines at the given
// prices. Lines whose product no longer exists contribute nothing.
func computeTotal(items []Item, products map[primitive.ObjectID]*product.Product) float64 {
	total := decimal.Zero
	for _, it := range items {
		if !it.Selected {
			continue
		}
		p, ok := products[it.ProductID]
		if !ok {
			continue
		}
		total = total.Add(lineAmount(p.Price, it.Quantity))
	}
	return total.Round(2).InexactFloat64()
}

func lineAmount(price float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
}

func toView(c *Cart, products map[primitive.ObjectID]*product.Product) *View {
	if c == nil {
		return &View{Items: []ItemView{}}
	}

	items := make([]ItemView, 0, len(c.Items))
	for _, it := range c.Items {
		v := ItemView{
			ProductID: it.ProductID.Hex(),
			Quantity:  it.Quantity,
			Selected:  it.Selected,
		}
		if p, ok := products[it.ProductID]; ok {
			v.Product = p
			v.Subtotal = lineAmount(p.Price, it.Quantity).Round(2).InexactFloat64()
		}
		items = append(items, v)
	}

	view := &View{
		Items:       items,
		TotalAmount: c.TotalAmount,
	}
	if !c.ID.IsZero() {
		view.ID = c.ID.Hex()
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		view.UpdatedAt = &updated
	}
	return view
}
