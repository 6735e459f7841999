package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ComplaintMessage holds the structure for the complaintMessages collection in
// mongo. Messages are immutable once written; the thread is ordered by
// timestamp ascending with _id as the insertion-order tiebreak.
type ComplaintMessage struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ComplaintID string             `json:"complaintId" bson:"complaintId"` // parent student ID
	Text        string             `json:"text" bson:"text"`
	SentBy      ActorRole          `json:"sentBy" bson:"sentBy"`
	IsAdmin     bool               `json:"isAdmin" bson:"isAdmin"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp"`
}
