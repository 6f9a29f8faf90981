package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a document in the users collection. UserID mirrors the ObjectID as hex
// and is the identifier clients see.
type User struct {
	ID       primitive.ObjectID `json:"-" bson:"_id"`
	Username string             `json:"username" bson:"username" validate:"required"`
	UserID   string             `json:"id" bson:"user_id"`
}

// UserNotFoundMessage is the error body the API answers, with status 200, for
// an unknown user id.
const UserNotFoundMessage = "User not found"
