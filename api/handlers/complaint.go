package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cuportal/student-portal-api/api"
	"github.com/cuportal/student-portal-api/config"
	"github.com/cuportal/student-portal-api/databases"
	"github.com/cuportal/student-portal-api/models"
)

// Complaint holds the stores for the student-facing complaint operations
type Complaint struct {
	CDB databases.ComplaintDatabase
	MDB databases.ComplaintMessageDatabase
}

var (
	errThreadClosed = errors.New("thread closed")
	errEmptyMessage = errors.New("empty message")
)

// ComplaintSubmitResponse returns the durable tracking handle for a filed complaint
type ComplaintSubmitResponse struct {
	StudentID string `json:"studentId"`
}

// SubmitComplaintHandler files a complaint. The write is an upsert keyed by
// the normalized student ID, so a re-submission merges into the existing
// record and extends its thread instead of creating a duplicate. The
// description is duplicated as the first (or next) thread message.
func (c Complaint) SubmitComplaintHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var sub models.ComplaintSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if fieldErrs := sub.Validate(); len(fieldErrs) > 0 {
		b, _ := json.Marshal(models.ValidationErrorResponse{Errors: fieldErrs})
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write(b)
		return
	}

	studentID, err := models.ResolveStudentID(sub.StudentID)
	if err != nil {
		config.ErrorStatus("invalid student ID", http.StatusBadRequest, w, err)
		return
	}

	sub.Title = strings.TrimSpace(sub.Title)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Description = strings.TrimSpace(sub.Description)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := c.CDB.Upsert(ctx, studentID, sub); err != nil {
		config.ErrorStatus("failed to upsert complaint", http.StatusInternalServerError, w, err)
		return
	}

	// No rollback of the upsert if this append fails; a record with an empty
	// thread is a detectable, recoverable state and the submit is safe to
	// retry.
	if _, err := c.MDB.Append(ctx, studentID, sub.Description, models.RoleStudent); err != nil {
		config.ErrorStatus("failed to append complaint message", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("complaint submitted", "studentId", studentID, "department", sub.Department)

	b, err := json.Marshal(ComplaintSubmitResponse{StudentID: studentID})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// TrackComplaintHandler returns the complaint record and its full ordered
// thread for a student ID. A student with no complaint on file gets an
// explicit empty-state body, not a store error.
func (c Complaint) TrackComplaintHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	studentID, err := models.ResolveStudentID(mux.Vars(r)["student_id"])
	if err != nil {
		config.ErrorStatus("invalid student ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	record, err := c.CDB.FindOne(ctx, studentID)
	if err != nil {
		if databases.IsNoDocuments(err) {
			b, _ := json.Marshal(models.NotFoundResponse{Found: false, Message: "no complaints found"})
			w.WriteHeader(http.StatusNotFound)
			w.Write(b)
			return
		}
		config.ErrorStatus("failed to get complaint", http.StatusInternalServerError, w, err)
		return
	}

	messages, err := c.MDB.List(ctx, studentID)
	if err != nil {
		config.ErrorStatus("failed to list complaint messages", http.StatusInternalServerError, w, err)
		return
	}

	view := models.ComplaintView{ComplaintRecord: *record, Messages: messages}
	b, err := json.Marshal(view)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// StudentReplyHandler appends a student message to an existing thread
func (c Complaint) StudentReplyHandler(w http.ResponseWriter, r *http.Request) {
	c.continueConversation(w, r, models.RoleStudent)
}

type replyRequest struct {
	Text string `json:"text"`
}

// continueConversation appends a message to the thread and refreshes the
// parent record's summary fields. The acting role comes from the route, never
// from the request body. A closed thread rejects every append.
func (c Complaint) continueConversation(w http.ResponseWriter, r *http.Request, role models.ActorRole) {
	w.Header().Set("Content-Type", "application/json")

	studentID, err := models.ResolveStudentID(mux.Vars(r)["student_id"])
	if err != nil {
		config.ErrorStatus("invalid student ID", http.StatusBadRequest, w, err)
		return
	}

	var req replyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		config.ErrorStatus("message text must not be empty", http.StatusBadRequest, w, errEmptyMessage)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	record, err := c.CDB.FindOne(ctx, studentID)
	if err != nil {
		if databases.IsNoDocuments(err) {
			b, _ := json.Marshal(models.NotFoundResponse{Found: false, Message: "no complaints found"})
			w.WriteHeader(http.StatusNotFound)
			w.Write(b)
			return
		}
		config.ErrorStatus("failed to get complaint", http.StatusInternalServerError, w, err)
		return
	}

	if record.Status == models.StatusClosed {
		config.ErrorStatus("complaint thread is closed", http.StatusConflict, w, errThreadClosed)
		return
	}

	msg, err := c.MDB.Append(ctx, studentID, text, role)
	if err != nil {
		config.ErrorStatus("failed to append complaint message", http.StatusInternalServerError, w, err)
		return
	}

	if err := c.CDB.UpdateSummary(ctx, studentID, role); err != nil {
		// The message is already durable; the summary catches up on the next
		// write. Surface the failure so the caller can retry.
		config.ErrorStatus("failed to update complaint summary", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Debugw("complaint message appended", "studentId", studentID, "sentBy", role)

	if role == models.RoleAdmin {
		go notifyStudentOfReply(record, text)
	}

	b, err := json.Marshal(msg)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}
