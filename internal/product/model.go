package product

import (
	"time"

	"storefront/internal/category"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Spec struct {
	Name  string `bson:"name" json:"name"`
	Value string `bson:"value" json:"value"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Stock         int                `bson:"stock" json:"stock"`
	Images        []string           `bson:"images" json:"images"`
	Category      category.Category  `bson:"category" json:"category"`
	Tags          []string           `bson:"tags" json:"tags"`
	Specs         []Spec             `bson:"specs" json:"specs"`
	Rating        float64            `bson:"rating" json:"rating"`
	Sales         int                `bson:"sales" json:"sales"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Image returns the first image, or "" when the product has none.
func (p *Product) Image() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type ListResult struct {
	Products   []Product `json:"products"`
	TotalCount int64     `json:"totalCount"`
}

const (
	DefaultListLimit = 12
	SearchLimit      = 20
)

func (p *Product) Validate() error {
	if !p.Category.Valid() {
		return ErrInvalidCategory
	}
	if p.Price < 0 || p.OriginalPrice < 0 || p.Stock < 0 {
		return ErrInvalidPrice
	}
	return nil
}
