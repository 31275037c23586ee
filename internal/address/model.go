package address

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is a shipping address embedded in the owning user's document.
type Address struct {
	ID primitive.ObjectID `bson:"_id" json:"id"`

	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`

	Province string `bson:"province" json:"province"`
	City     string `bson:"city" json:"city"`
	District string `bson:"district" json:"district"`
	Address  string `bson:"address" json:"address"`

	IsDefault bool `bson:"isDefault" json:"isDefault"`
}

type Input struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Province  string `json:"province"`
	City      string `json:"city"`
	District  string `json:"district"`
	Address   string `json:"address"`
	IsDefault bool   `json:"isDefault"`
}
