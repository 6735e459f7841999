package databases

// go generate: mockery --name ComplaintMessageDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cuportal/student-portal-api/models"
)

const complaintMessageCollectionName = "complaintMessages"

// ComplaintMessageDatabase contains the methods to use with the complaint
// message log. The log is append-only: messages are never edited or removed
// except when the whole thread is torn down with the parent record.
type ComplaintMessageDatabase interface {
	Append(ctx context.Context, complaintID, text string, sentBy models.ActorRole) (*models.ComplaintMessage, error)
	List(ctx context.Context, complaintID string) ([]models.ComplaintMessage, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	DeleteThread(ctx context.Context, complaintID string) (int64, error)
}

type complaintMessageDatabase struct {
	db DatabaseHelper
}

// NewComplaintMessageDatabase initializes a new instance of complaint message database with the provided db connection
func NewComplaintMessageDatabase(db DatabaseHelper) ComplaintMessageDatabase {
	return &complaintMessageDatabase{
		db: db,
	}
}

// Append writes a new message to the thread. The timestamp is assigned here,
// at write time, never taken from the caller, so thread order cannot be
// scrambled by client clock skew. Repeated identical text is two messages.
func (c *complaintMessageDatabase) Append(ctx context.Context, complaintID, text string, sentBy models.ActorRole) (*models.ComplaintMessage, error) {
	msg := models.ComplaintMessage{
		ID:          primitive.NewObjectID(),
		ComplaintID: complaintID,
		Text:        text,
		SentBy:      sentBy,
		IsAdmin:     sentBy == models.RoleAdmin,
		Timestamp:   time.Now().UTC(),
	}
	_, err := c.db.Collection(complaintMessageCollectionName).InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns every message of the thread in ascending timestamp order. Two
// messages with the same timestamp sort by _id, which preserves insertion
// order. An empty thread yields an empty slice, not an error.
func (c *complaintMessageDatabase) List(ctx context.Context, complaintID string) ([]models.ComplaintMessage, error) {
	var messages []models.ComplaintMessage
	sort := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}})
	curr, err := c.db.Collection(complaintMessageCollectionName).Find(ctx, bson.M{"complaintId": complaintID}, sort)
	if err != nil {
		return nil, err
	}
	err = curr.Decode(&messages)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.ComplaintMessage{}
	}
	return messages, nil
}

func (c *complaintMessageDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(complaintMessageCollectionName).CountDocuments(ctx, filter, opts...)
}

// DeleteThread removes every message for the given complaint. Only used by
// the admin delete capability.
func (c *complaintMessageDatabase) DeleteThread(ctx context.Context, complaintID string) (int64, error) {
	return c.db.Collection(complaintMessageCollectionName).DeleteMany(ctx, bson.M{"complaintId": complaintID})
}
