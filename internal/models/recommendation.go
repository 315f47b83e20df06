package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TasteHistory guarda cada taste test que un usuario pidió sobre su estante.
type TasteHistory struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       int                `bson:"userId"        json:"userId"`
	ModelVersion string             `bson:"modelVersion"  json:"modelVersion"`
	Inputs       []string           `bson:"inputs"        json:"inputs"`
	Items        []BookCard         `bson:"items"         json:"items"`
	CreatedAt    time.Time          `bson:"createdAt"     json:"createdAt"`
}
