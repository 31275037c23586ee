package order

import (
	"time"

	"storefront/internal/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Item snapshots the product at purchase time. Price is the catalog price
// the order was charged at; ClientPrice is what the client displayed.
type Item struct {
	ProductID   primitive.ObjectID `bson:"product" json:"product"`
	Name        string             `bson:"name" json:"name"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	ClientPrice float64            `bson:"clientPrice,omitempty" json:"clientPrice,omitempty"`
	Quantity    int                `bson:"quantity" json:"quantity"`
}

type ShippingAddress struct {
	Name     string `bson:"name" json:"name"`
	Phone    string `bson:"phone" json:"phone"`
	Address  string `bson:"address" json:"address"`
	City     string `bson:"city" json:"city"`
	Province string `bson:"province" json:"province"`
	ZipCode  string `bson:"zipCode" json:"zipCode"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	OrderNo         string             `bson:"orderNo" json:"orderNo"`
	Items           []Item             `bson:"items" json:"items"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	TotalAmount     float64            `bson:"totalAmount" json:"totalAmount"`
	Status          Status             `bson:"status" json:"status"`
	PaymentMethod   payment.Method     `bson:"paymentMethod,omitempty" json:"paymentMethod,omitempty"`
	PaymentRef      string             `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	PaymentTime     *time.Time         `bson:"paymentTime,omitempty" json:"paymentTime,omitempty"`
	CancelTime      *time.Time         `bson:"cancelTime,omitempty" json:"cancelTime,omitempty"`
	ShippingTime    *time.Time         `bson:"shippingTime,omitempty" json:"shippingTime,omitempty"`
	DeliveryTime    *time.Time         `bson:"deliveryTime,omitempty" json:"deliveryTime,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ItemInput is one requested line. Both "product" and "productId" are
// accepted for the product reference.
type ItemInput struct {
	Product   string  `json:"product"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

func (i ItemInput) productRef() string {
	if i.Product != "" {
		return i.Product
	}
	return i.ProductID
}

type CreateInput struct {
	Items           []ItemInput     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

type ListResult struct {
	List       []Order `json:"list"`
	TotalCount int64   `json:"totalCount"`
}

// Transition is a status change applied only to a pending order.
type Transition struct {
	To            Status
	At            time.Time
	PaymentMethod payment.Method
	PaymentRef    string
}

const DefaultListLimit = 10
