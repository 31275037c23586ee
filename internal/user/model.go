package user

import (
	"time"

	"storefront/internal/address"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Username   string             `bson:"username"`
	Password   string             `bson:"password"`
	IsVerified bool               `bson:"isVerified"`
	Role       Role               `bson:"role"`
	Avatar     string             `bson:"avatar,omitempty"`
	Phone      string             `bson:"phone,omitempty"`

	Addresses []address.Address `bson:"addresses"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Profile is the public view of a user. It never carries the password.
type Profile struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Phone      string    `json:"phone,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	IsVerified bool      `json:"isVerified"`
	Role       Role      `json:"role"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (u *User) ToProfile() *Profile {
	return &Profile{
		ID:         u.ID.Hex(),
		Email:      u.Email,
		Username:   u.Username,
		Phone:      u.Phone,
		Avatar:     u.Avatar,
		IsVerified: u.IsVerified,
		Role:       u.Role,
		CreatedAt:  u.CreatedAt,
	}
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Username    string `json:"username"`
	CaptchaKey  string `json:"captchaKey"`
	CaptchaCode string `json:"captchaCode"`
}

type LoginInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CaptchaKey  string `json:"captchaKey"`
	CaptchaCode string `json:"captchaCode"`
}

type LoginResult struct {
	Token string   `json:"token"`
	User  *Profile `json:"user"`
}

// UpdateProfileParams holds optional profile changes; nil fields are left as is.
type UpdateProfileParams struct {
	Username *string `json:"username"`
	Avatar   *string `json:"avatar"`
	Phone    *string `json:"phone"`
}
