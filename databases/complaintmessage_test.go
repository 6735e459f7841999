package databases_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cuportal/student-portal-api/databases"
	"github.com/cuportal/student-portal-api/databases/mocks"
	"github.com/cuportal/student-portal-api/models"
)

func TestComplaintMessageDatabase_Append_AssignsServerTimestamp(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	coll := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	var inserted models.ComplaintMessage
	coll.On("InsertOne", mock.Anything, mock.AnythingOfType("models.ComplaintMessage")).
		Return(insertResult, nil).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).(models.ComplaintMessage)
		})
	db.On("Collection", "complaintMessages").Return(coll)

	mdb := databases.NewComplaintMessageDatabase(db)

	before := time.Now().UTC()
	msg, err := mdb.Append(context.Background(), "20231234", "Any update on this?", models.RoleStudent)
	after := time.Now().UTC()

	assert.NoError(t, err)
	assert.Equal(t, "20231234", msg.ComplaintID)
	assert.Equal(t, "Any update on this?", msg.Text)
	assert.Equal(t, models.RoleStudent, msg.SentBy)
	assert.False(t, msg.IsAdmin)
	assert.False(t, msg.ID.IsZero())

	// Timestamp comes from the store at write time, not from the caller
	assert.False(t, inserted.Timestamp.Before(before))
	assert.False(t, inserted.Timestamp.After(after))
}

func TestComplaintMessageDatabase_Append_AdminFlag(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	coll := &mocks.CollectionHelper{}
	insertResult := &mocks.InsertOneResultHelper{}

	coll.On("InsertOne", mock.Anything, mock.AnythingOfType("models.ComplaintMessage")).Return(insertResult, nil)
	db.On("Collection", "complaintMessages").Return(coll)

	mdb := databases.NewComplaintMessageDatabase(db)
	msg, err := mdb.Append(context.Background(), "20231234", "Maintenance dispatched", models.RoleAdmin)

	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, msg.SentBy)
	assert.True(t, msg.IsAdmin)
}

func TestComplaintMessageDatabase_List_SortsByTimestampThenID(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	coll := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	var gotFilter bson.M
	var gotOpts *options.FindOptions

	cursor.On("Decode", mock.Anything).Return(nil)
	coll.On("Find", mock.Anything, mock.Anything, mock.Anything).
		Return(cursor, nil).
		Run(func(args mock.Arguments) {
			gotFilter = args.Get(1).(bson.M)
			gotOpts = args.Get(2).(*options.FindOptions)
		})
	db.On("Collection", "complaintMessages").Return(coll)

	mdb := databases.NewComplaintMessageDatabase(db)
	msgs, err := mdb.List(context.Background(), "20231234")

	assert.NoError(t, err)
	assert.Equal(t, bson.M{"complaintId": "20231234"}, gotFilter)

	// Ascending timestamp with _id as the insertion-order tiebreak
	assert.Equal(t, bson.D{{Key: "timestamp", Value: 1}, {Key: "_id", Value: 1}}, gotOpts.Sort)

	// Empty thread is an empty slice, not nil
	assert.NotNil(t, msgs)
	assert.Len(t, msgs, 0)
}

func TestComplaintMessageDatabase_DeleteThread(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	coll := &mocks.CollectionHelper{}

	coll.On("DeleteMany", mock.Anything, bson.M{"complaintId": "20231234"}).Return(int64(7), nil)
	db.On("Collection", "complaintMessages").Return(coll)

	mdb := databases.NewComplaintMessageDatabase(db)
	removed, err := mdb.DeleteThread(context.Background(), "20231234")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), removed)
}
