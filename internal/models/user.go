package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`

	Username string `bson:"username" json:"username"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // Don't return password in JSON

	Avatar      string     `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Addresses   []string   `bson:"addresses,omitempty" json:"addresses,omitempty"`
	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
}

// Public returns a copy of u with the password hash cleared.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Password = ""
	return &cp
}
