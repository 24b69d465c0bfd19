package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

type NotificationPrefs struct {
	Email bool `bson:"email" json:"email"`
	Push  bool `bson:"push" json:"push"`
	SMS   bool `bson:"sms" json:"sms"`
}

func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{Email: true, Push: true, SMS: false}
}

type User struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                string             `bson:"name" json:"name"`
	Email               string             `bson:"email" json:"email"`
	Password            string             `bson:"password,omitempty" json:"-"`
	Phone               string             `bson:"phone,omitempty" json:"phone,omitempty"`
	ProfileImage        string             `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	IsGoogle            bool               `bson:"isGoogle" json:"isGoogle"`
	GoogleID            string             `bson:"googleId,omitempty" json:"googleId,omitempty"`
	LastLogin           *time.Time         `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	Role                string             `bson:"role" json:"role"`
	Addresses           []bson.M           `bson:"addresses,omitempty" json:"addresses,omitempty"`
	Verified            bool               `bson:"verified" json:"verified"`
	LoginHistory        []time.Time        `bson:"loginHistory,omitempty" json:"loginHistory,omitempty"`
	PreferredCategories []string           `bson:"preferredCategories,omitempty" json:"preferredCategories,omitempty"`
	Notifications       NotificationPrefs  `bson:"notifications" json:"notifications"`
}
