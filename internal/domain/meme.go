// internal/domain/meme.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meme represents a single uploaded video clip and its metadata.
// The video bytes themselves live in object storage; VideoURL points at them.
type Meme struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	VideoURL     string             `bson:"videoUrl" json:"videoUrl"` // Public URL or object key of the stored video
	ThumbnailURL string             `bson:"thumbnailUrl,omitempty" json:"thumbnailUrl,omitempty"`

	CreatorID   primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	CreatorName string             `bson:"creatorName,omitempty" json:"creatorName,omitempty"` // Denormalized for feed rendering

	Tags     []string `bson:"tags,omitempty" json:"tags,omitempty"`
	Country  string   `bson:"country,omitempty" json:"country,omitempty"`   // ISO code, e.g. "NG"
	Language string   `bson:"language,omitempty" json:"language,omitempty"` // ISO code, e.g. "en"

	// Counters are only ever incremented, never rewritten wholesale.
	Views     int64 `bson:"views" json:"views"`
	Downloads int64 `bson:"downloads" json:"downloads"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
