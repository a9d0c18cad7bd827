package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is the account model. The password hash is never serialised.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Phone        string             `bson:"phone" json:"phone"`
	IsAdmin      bool               `bson:"isAdmin" json:"isAdmin"`
	Street       string             `bson:"street,omitempty" json:"street"`
	Apartment    string             `bson:"apartment,omitempty" json:"apartment"`
	Zip          string             `bson:"zip,omitempty" json:"zip"`
	City         string             `bson:"city,omitempty" json:"city"`
	Country      string             `bson:"country,omitempty" json:"country"`
}
