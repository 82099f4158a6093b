package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportStatus tracks the moderation state of a report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusResolved ReportStatus = "resolved"
)

// Report is a user complaint about a meme. A user may report a given meme only once.
type Report struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemeID     primitive.ObjectID `bson:"memeId" json:"memeId"`
	ReporterID primitive.ObjectID `bson:"reporterId" json:"reporterId"`
	Reason     string             `bson:"reason" json:"reason"`
	Comment    string             `bson:"comment,omitempty" json:"comment,omitempty"`
	Status     ReportStatus       `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
