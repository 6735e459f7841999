package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/cuportal/student-portal-api/api"
	"github.com/cuportal/student-portal-api/config"
	"github.com/cuportal/student-portal-api/databases"
	"github.com/cuportal/student-portal-api/models"
	templates "github.com/cuportal/student-portal-api/templates/html"
)

// AdminComplaint holds the stores for the back-office complaint operations
type AdminComplaint struct {
	CDB databases.ComplaintDatabase
	MDB databases.ComplaintMessageDatabase
}

// ListComplaintsHandler returns a page of complaints for the dashboard,
// newest activity first, optionally filtered by status
func (ac AdminComplaint) ListComplaintsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" {
		if !models.ValidComplaintStatus(models.ComplaintStatus(status)) {
			config.ErrorStatus("unknown complaint status", http.StatusBadRequest, w, fmt.Errorf("status %q is not one of open, in-progress, resolved, closed", status))
			return
		}
		filter["status"] = status
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	sort := options.Find().SetSort(bson.D{{Key: "lastUpdatedAt", Value: -1}})
	complaints, err := ac.CDB.Find(ctx, filter, databases.PaginatedOpts(limit, page), sort)
	if err != nil {
		config.ErrorStatus("failed to list complaints", http.StatusInternalServerError, w, err)
		return
	}
	if complaints == nil {
		complaints = []models.ComplaintRecord{}
	}

	totalCount, err := ac.CDB.CountDocuments(ctx, filter)
	if err != nil {
		config.ErrorStatus("failed to count complaints", http.StatusInternalServerError, w, err)
		return
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))
	response := models.PaginatedComplaintsResponse{
		Complaints: complaints,
		Pagination: models.PaginationInfo{
			CurrentPage:     page,
			TotalPages:      totalPages,
			TotalComplaints: int(totalCount),
			HasNextPage:     page < totalPages,
			HasPrevPage:     page > 1,
		},
	}

	b, err := json.Marshal(response)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type statusRequest struct {
	Status models.ComplaintStatus `json:"status"`
}

// UpdateComplaintStatusHandler moves a complaint through its lifecycle. This
// is the only place a status ever changes after creation.
func (ac AdminComplaint) UpdateComplaintStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	studentID, err := models.ResolveStudentID(mux.Vars(r)["student_id"])
	if err != nil {
		config.ErrorStatus("invalid student ID", http.StatusBadRequest, w, err)
		return
	}

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !models.ValidComplaintStatus(req.Status) {
		config.ErrorStatus("unknown complaint status", http.StatusBadRequest, w, fmt.Errorf("status %q is not one of open, in-progress, resolved, closed", req.Status))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	matched, err := ac.CDB.UpdateStatus(ctx, studentID, req.Status)
	if err != nil {
		config.ErrorStatus("failed to update complaint status", http.StatusInternalServerError, w, err)
		return
	}
	if matched == 0 {
		b, _ := json.Marshal(models.NotFoundResponse{Found: false, Message: "no complaints found"})
		w.WriteHeader(http.StatusNotFound)
		w.Write(b)
		return
	}

	zap.S().Infow("complaint status updated", "studentId", studentID, "status", req.Status)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"studentId": %q, "status": %q}`, studentID, req.Status)))
}

// AdminReplyHandler appends an admin message to the thread and notifies the
// student's contact address
func (ac AdminComplaint) AdminReplyHandler(w http.ResponseWriter, r *http.Request) {
	Complaint{CDB: ac.CDB, MDB: ac.MDB}.continueConversation(w, r, models.RoleAdmin)
}

// DeleteComplaintHandler removes the complaint record and its whole thread
func (ac AdminComplaint) DeleteComplaintHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	studentID, err := models.ResolveStudentID(mux.Vars(r)["student_id"])
	if err != nil {
		config.ErrorStatus("invalid student ID", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	deleted, err := ac.CDB.DeleteOne(ctx, studentID)
	if err != nil {
		config.ErrorStatus("failed to delete complaint", http.StatusInternalServerError, w, err)
		return
	}
	if deleted == 0 {
		b, _ := json.Marshal(models.NotFoundResponse{Found: false, Message: "no complaints found"})
		w.WriteHeader(http.StatusNotFound)
		w.Write(b)
		return
	}

	removed, err := ac.MDB.DeleteThread(ctx, studentID)
	if err != nil {
		config.ErrorStatus("failed to delete complaint thread", http.StatusInternalServerError, w, err)
		return
	}

	zap.S().Infow("complaint deleted", "studentId", studentID, "messagesRemoved", removed)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"deleted": %q, "messagesRemoved": %d}`, studentID, removed)))
}

// notifyStudentOfReply emails the complaint's contact address about a new
// admin reply. Best effort: a mail failure never fails the API request.
func notifyStudentOfReply(record *models.ComplaintRecord, text string) {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		zap.S().Debug("sendgrid not configured, skipping reply notification")
		return
	}

	from := mail.NewEmail("Student Portal", "no-reply@cuportal.edu")
	subject := fmt.Sprintf("New reply on your complaint %q", record.Title)
	to := mail.NewEmail("", record.Email)
	plain := fmt.Sprintf("An administrator replied to your complaint:\n\n%s\n\nTrack it with your student ID %s.", text, record.StudentID)
	html := templates.RenderGenericEmail(subject, plain)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)

	client := sendgrid.NewSendClient(apiKey)
	if _, err := client.Send(msg); err != nil {
		zap.S().Errorw("failed to send reply notification", "studentId", record.StudentID, "error", err)
	}
}
