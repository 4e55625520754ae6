package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin accounts are provisioned out of band and only ever read,
// solely to mint a moderation token.
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AdminID  string             `bson:"admin_id" json:"admin_id"`
	Password string             `bson:"password,omitempty" json:"-"`
}
