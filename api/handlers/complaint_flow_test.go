package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cuportal/student-portal-api/databases"
	"github.com/cuportal/student-portal-api/models"
)

// memoryStore is an in-memory DatabaseHelper backing the full router, so a
// test can walk a complaint through its real routes and middleware without a
// running mongo. It honors the update-document shapes the stores actually
// send: $setOnInsert applies only when the record is created, $set always.
type memoryStore struct {
	complaints map[string]*models.ComplaintRecord
	messages   []models.ComplaintMessage
}

func newMemoryStore() *memoryStore {
	return &memoryStore{complaints: map[string]*models.ComplaintRecord{}}
}

func (s *memoryStore) Collection(name string) databases.CollectionHelper {
	switch name {
	case "complaints":
		return &memoryComplaints{s: s}
	case "complaintMessages":
		return &memoryMessages{s: s}
	}
	return nil
}

func (s *memoryStore) Client() databases.ClientHelper { return nil }

type memoryComplaints struct{ s *memoryStore }

func (c *memoryComplaints) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) databases.SingleResultHelper {
	id := filter.(bson.M)["_id"].(string)
	rec, ok := c.s.complaints[id]
	if !ok {
		return memoryResult{err: mongo.ErrNoDocuments}
	}
	cp := *rec
	return memoryResult{rec: &cp}
}

func (c *memoryComplaints) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	id := filter.(bson.M)["_id"].(string)
	u := update.(bson.M)

	rec, ok := c.s.complaints[id]
	if !ok {
		upsert := false
		for _, o := range opts {
			if o.Upsert != nil && *o.Upsert {
				upsert = true
			}
		}
		if !upsert {
			return &mongo.UpdateResult{}, nil
		}
		rec = &models.ComplaintRecord{StudentID: id}
		if ins, ok := u["$setOnInsert"].(bson.M); ok {
			applyComplaintFields(rec, ins)
		}
		if set, ok := u["$set"].(bson.M); ok {
			applyComplaintFields(rec, set)
		}
		c.s.complaints[id] = rec
		return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: id}, nil
	}

	if set, ok := u["$set"].(bson.M); ok {
		applyComplaintFields(rec, set)
	}
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

func (c *memoryComplaints) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (databases.CursorHelper, error) {
	var recs []models.ComplaintRecord
	for _, rec := range c.s.complaints {
		recs = append(recs, *rec)
	}
	return memoryRecordCursor{recs: recs}, nil
}

func (c *memoryComplaints) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (databases.InsertOneResultHelper, error) {
	return nil, nil
}

func (c *memoryComplaints) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) databases.SingleResultHelper {
	return memoryResult{err: mongo.ErrNoDocuments}
}

func (c *memoryComplaints) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	return int64(len(c.s.complaints)), nil
}

func (c *memoryComplaints) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	id := filter.(bson.M)["_id"].(string)
	if _, ok := c.s.complaints[id]; !ok {
		return 0, nil
	}
	delete(c.s.complaints, id)
	return 1, nil
}

func (c *memoryComplaints) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return 0, nil
}

func applyComplaintFields(rec *models.ComplaintRecord, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "title":
			rec.Title = v.(string)
		case "email":
			rec.Email = v.(string)
		case "department":
			rec.Department = v.(string)
		case "description":
			rec.Description = v.(string)
		case "status":
			rec.Status = v.(models.ComplaintStatus)
		case "openedAt":
			rec.OpenedAt = v.(time.Time)
		case "lastUpdatedAt":
			rec.LastUpdatedAt = v.(time.Time)
		case "lastTextBy":
			rec.LastTextBy = v.(models.ActorRole)
		}
	}
}

type memoryMessages struct{ s *memoryStore }

func (m *memoryMessages) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (databases.InsertOneResultHelper, error) {
	msg := document.(models.ComplaintMessage)
	m.s.messages = append(m.s.messages, msg)
	return memoryInsertResult{id: msg.ID}, nil
}

func (m *memoryMessages) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (databases.CursorHelper, error) {
	id := filter.(bson.M)["complaintId"].(string)
	var msgs []models.ComplaintMessage
	for _, msg := range m.s.messages {
		if msg.ComplaintID == id {
			msgs = append(msgs, msg)
		}
	}
	return memoryMessageCursor{msgs: msgs}, nil
}

func (m *memoryMessages) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) databases.SingleResultHelper {
	return memoryResult{err: mongo.ErrNoDocuments}
}

func (m *memoryMessages) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	return &mongo.UpdateResult{}, nil
}

func (m *memoryMessages) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) databases.SingleResultHelper {
	return memoryResult{err: mongo.ErrNoDocuments}
}

func (m *memoryMessages) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	id := filter.(bson.M)["complaintId"].(string)
	var n int64
	for _, msg := range m.s.messages {
		if msg.ComplaintID == id {
			n++
		}
	}
	return n, nil
}

func (m *memoryMessages) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	return 0, nil
}

func (m *memoryMessages) DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (int64, error) {
	id := filter.(bson.M)["complaintId"].(string)
	var kept []models.ComplaintMessage
	var removed int64
	for _, msg := range m.s.messages {
		if msg.ComplaintID == id {
			removed++
			continue
		}
		kept = append(kept, msg)
	}
	m.s.messages = kept
	return removed, nil
}

type memoryResult struct {
	rec *models.ComplaintRecord
	err error
}

func (r memoryResult) Decode(v interface{}) error {
	if r.err != nil {
		return r.err
	}
	*v.(**models.ComplaintRecord) = r.rec
	return nil
}

type memoryInsertResult struct{ id interface{} }

func (r memoryInsertResult) Decode() interface{} { return r.id }

type memoryMessageCursor struct{ msgs []models.ComplaintMessage }

func (c memoryMessageCursor) Decode(v interface{}) error {
	*v.(*[]models.ComplaintMessage) = c.msgs
	return nil
}

type memoryRecordCursor struct{ recs []models.ComplaintRecord }

func (c memoryRecordCursor) Decode(v interface{}) error {
	*v.(*[]models.ComplaintRecord) = c.recs
	return nil
}

// TestComplaintLifecycleThroughRouter drives a complaint through the real
// routes end to end: filed by a student, tracked, replied to, closed by an
// admin, and then locked against further student replies.
func TestComplaintLifecycleThroughRouter(t *testing.T) {
	t.Setenv("JWT_SECRET", "lifecycle-test-secret")

	store := newMemoryStore()
	app := &App{dbHelper: store}
	router := app.New()

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr
	}

	// File the complaint. The submitted ID carries whitespace; the tracking
	// handle comes back normalized.
	submitBody := `{
		"studentId": " 2024001 ",
		"title": "Broken heater",
		"email": "jo@university.edu",
		"department": "Housing",
		"description": "The heater in my dorm room has been broken for a week"
	}`
	req, _ := http.NewRequest("POST", "/api/v1/complaint", strings.NewReader(submitBody))
	resp := serve(req)
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"studentId":"2024001"`)

	// Track it: open, one thread message holding the description.
	req, _ = http.NewRequest("GET", "/api/v1/complaint/2024001", nil)
	resp = serve(req)
	assert.Equal(t, http.StatusOK, resp.Code)

	var view models.ComplaintView
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.Equal(t, models.StatusOpen, view.Status)
	assert.Equal(t, "Broken heater", view.Title)
	assert.Len(t, view.Messages, 1)
	assert.Equal(t, models.RoleStudent, view.Messages[0].SentBy)

	// The student follows up while the thread is open.
	req, _ = http.NewRequest("POST", "/api/v1/complaint/2024001/messages", strings.NewReader(`{"text": "It is getting colder, please hurry"}`))
	resp = serve(req)
	assert.Equal(t, http.StatusCreated, resp.Code)

	req, _ = http.NewRequest("GET", "/api/v1/complaint/2024001", nil)
	resp = serve(req)
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.Len(t, view.Messages, 2)
	assert.Equal(t, models.RoleStudent, view.LastTextBy)

	// An admin closes the complaint through the protected status route.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "admin-1",
		"email": "dean@university.edu",
		"scope": "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("lifecycle-test-secret"))
	assert.NoError(t, err)

	req, _ = http.NewRequest("PATCH", "/api/v1/admin/complaints/2024001/status", strings.NewReader(`{"status": "closed"}`))
	req.Header.Add("Authorization", "Bearer "+signed)
	resp = serve(req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status": "closed"`)

	// A closed thread rejects further student replies and stays unchanged.
	req, _ = http.NewRequest("POST", "/api/v1/complaint/2024001/messages", strings.NewReader(`{"text": "One more thing"}`))
	resp = serve(req)
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Contains(t, resp.Body.String(), "complaint thread is closed")

	req, _ = http.NewRequest("GET", "/api/v1/complaint/2024001", nil)
	resp = serve(req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NoError(t, json.Unmarshal(resp.Body.Bytes(), &view))
	assert.Equal(t, models.StatusClosed, view.Status)
	assert.Len(t, view.Messages, 2)
}
