// Package model defines the documents stored in MongoDB
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Email          string              `bson:"email" json:"email"`
	Password       string              `bson:"password" json:"-"`
	Username       string              `bson:"username" json:"username"`
	FirstName      string              `bson:"firstName,omitempty" json:"firstName,omitempty"`
	LastName       string              `bson:"lastName,omitempty" json:"lastName,omitempty"`
	EmailActivated bool                `bson:"emailActivated" json:"emailActivated"`
	Role           string              `bson:"role" json:"role"`
	Status         string              `bson:"status" json:"status"`
	AcceptTerms    bool                `bson:"acceptTerms" json:"acceptTerms"`
	Credits        int                 `bson:"credits" json:"credits"`
	Subscription   *primitive.ObjectID `bson:"subscriptionTier,omitempty" json:"subscriptionTier,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt" json:"updatedAt"`
}
