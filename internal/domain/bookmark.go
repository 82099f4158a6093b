package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark links a user to a meme they saved. The (userId, memeId) pair is unique.
type Bookmark struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	MemeID    primitive.ObjectID `bson:"memeId" json:"memeId"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
