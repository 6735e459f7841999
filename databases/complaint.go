package databases

// go generate: mockery --name ComplaintDatabase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cuportal/student-portal-api/models"
)

const complaintCollectionName = "complaints"

// ComplaintDatabase contains the methods to use with the complaints database.
// The document ID is the normalized student ID, so every write here is keyed
// and there is never more than one complaint record per student.
type ComplaintDatabase interface {
	FindOne(ctx context.Context, studentID string) (*models.ComplaintRecord, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ComplaintRecord, error)
	Upsert(ctx context.Context, studentID string, sub models.ComplaintSubmission) error
	UpdateSummary(ctx context.Context, studentID string, lastTextBy models.ActorRole) error
	UpdateStatus(ctx context.Context, studentID string, status models.ComplaintStatus) (int64, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	DeleteOne(ctx context.Context, studentID string) (int64, error)
}

type complaintDatabase struct {
	db DatabaseHelper
}

// NewComplaintDatabase initializes a new instance of complaint database with the provided db connection
func NewComplaintDatabase(db DatabaseHelper) ComplaintDatabase {
	return &complaintDatabase{
		db: db,
	}
}

func (c *complaintDatabase) FindOne(ctx context.Context, studentID string) (*models.ComplaintRecord, error) {
	complaint := &models.ComplaintRecord{}
	err := c.db.Collection(complaintCollectionName).FindOne(ctx, bson.M{"_id": studentID}).Decode(&complaint)
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

func (c *complaintDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.ComplaintRecord, error) {
	var complaints []models.ComplaintRecord
	curr, err := c.db.Collection(complaintCollectionName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	err = curr.Decode(&complaints)
	if err != nil {
		return nil, err
	}
	return complaints, nil
}

// Upsert creates the complaint record if absent and merges into it if present.
// Descriptive fields (title, email, department, description) plus status and
// openedAt are written only on insert, so a re-submission never clobbers the
// original title or opening time. The summary fields lastUpdatedAt and
// lastTextBy are overwritten on every call. Concurrent upserts to the same
// student ID converge on a single document with last-write-wins summaries.
func (c *complaintDatabase) Upsert(ctx context.Context, studentID string, sub models.ComplaintSubmission) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"lastUpdatedAt": now,
			"lastTextBy":    models.RoleStudent,
		},
		"$setOnInsert": bson.M{
			"title":       sub.Title,
			"email":       sub.Email,
			"department":  sub.Department,
			"description": sub.Description,
			"status":      models.StatusOpen,
			"openedAt":    now,
		},
	}
	_, err := c.db.Collection(complaintCollectionName).UpdateOne(ctx, bson.M{"_id": studentID}, update, options.Update().SetUpsert(true))
	return err
}

// UpdateSummary is the narrow merge applied after every new message. It never
// touches the descriptive fields or the status.
func (c *complaintDatabase) UpdateSummary(ctx context.Context, studentID string, lastTextBy models.ActorRole) error {
	update := bson.M{
		"$set": bson.M{
			"lastUpdatedAt": time.Now().UTC(),
			"lastTextBy":    lastTextBy,
		},
	}
	_, err := c.db.Collection(complaintCollectionName).UpdateOne(ctx, bson.M{"_id": studentID}, update)
	return err
}

// UpdateStatus moves the complaint to the given lifecycle state. Returns the
// number of matched documents so callers can detect a missing record.
func (c *complaintDatabase) UpdateStatus(ctx context.Context, studentID string, status models.ComplaintStatus) (int64, error) {
	update := bson.M{
		"$set": bson.M{
			"status":        status,
			"lastUpdatedAt": time.Now().UTC(),
		},
	}
	res, err := c.db.Collection(complaintCollectionName).UpdateOne(ctx, bson.M{"_id": studentID}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (c *complaintDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return c.db.Collection(complaintCollectionName).CountDocuments(ctx, filter, opts...)
}

func (c *complaintDatabase) DeleteOne(ctx context.Context, studentID string) (int64, error) {
	return c.db.Collection(complaintCollectionName).DeleteOne(ctx, bson.M{"_id": studentID})
}

// IsNoDocuments reports whether err means the record simply does not exist,
// which is a valid outcome distinct from a store failure.
func IsNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
