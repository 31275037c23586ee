package cart

import (
	"time"

	"storefront/internal/product"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Item struct {
	ProductID primitive.ObjectID `bson:"product"`
	Quantity  int                `bson:"quantity"`
	Selected  bool               `bson:"selected"`
}

// Cart is the single cart owned by a user. TotalAmount is derived and
// rewritten after every mutation.
type Cart struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user"`
	Items       []Item             `bson:"items"`
	TotalAmount float64            `bson:"totalAmount"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (c *Cart) find(productID primitive.ObjectID) *Item {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

func (c *Cart) productIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(c.Items))
	for _, it := range c.Items {
		ids = append(ids, it.ProductID)
	}
	return ids
}

type ItemView struct {
	ProductID string           `json:"productId"`
	Product   *product.Product `json:"product"`
	Quantity  int              `json:"quantity"`
	Selected  bool             `json:"selected"`
	Subtotal  float64          `json:"subtotal"`
}

type View struct {
	ID          string     `json:"id,omitempty"`
	Items       []ItemView `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}
