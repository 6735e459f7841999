package scheduler

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/cuportal/student-portal-api/databases"
	"github.com/cuportal/student-portal-api/models"
	templates "github.com/cuportal/student-portal-api/templates/html"
)

// staleAfter is how long a complaint may sit with the student's message as the
// last word before it shows up in the reminder digest
const staleAfter = 72 * time.Hour

// Scheduler handles periodic background jobs for the complaint back office
type Scheduler struct {
	cron *cron.Cron
	CDB  databases.ComplaintDatabase
	MDB  databases.ComplaintMessageDatabase
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cdb databases.ComplaintDatabase, mdb databases.ComplaintMessageDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		CDB:  cdb,
		MDB:  mdb,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Remind the admin inbox about unanswered complaints daily at 3 AM UTC
	_, err := s.cron.AddFunc("0 3 * * *", s.remindStaleComplaints)
	if err != nil {
		zap.S().Errorw("failed to register stale complaint job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("complaint reminder scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// remindStaleComplaints finds open complaints whose last message came from the
// student and has gone unanswered past the cutoff, and emails a digest to the
// configured admin inbox. The job never mutates complaint state.
func (s *Scheduler) remindStaleComplaints() {
	notifyEmail := strings.TrimSpace(os.Getenv("ADMIN_NOTIFY_EMAIL"))
	if notifyEmail == "" {
		zap.S().Debug("no admin notify email configured, skipping stale complaint reminder")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cutoff := time.Now().UTC().Add(-staleAfter)
	filter := bson.M{
		"status":        bson.M{"$in": []models.ComplaintStatus{models.StatusOpen, models.StatusInProgress}},
		"lastTextBy":    models.RoleStudent,
		"lastUpdatedAt": bson.M{"$lt": cutoff},
	}

	stale, err := s.CDB.Find(ctx, filter)
	if err != nil {
		zap.S().Errorw("failed to query stale complaints", "error", err)
		return
	}
	if len(stale) == 0 {
		zap.S().Debug("no stale complaints to report")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d complaint(s) are waiting on an admin reply for more than %s:\n\n", len(stale), staleAfter)
	for _, rec := range stale {
		count, err := s.MDB.CountDocuments(ctx, bson.M{"complaintId": rec.StudentID})
		if err != nil {
			count = 0
		}
		fmt.Fprintf(&sb, "- %s (%s): %q, %d message(s), last activity %s\n",
			rec.StudentID, rec.Department, rec.Title, count, rec.LastUpdatedAt.Format(time.RFC1123))
	}

	if err := s.sendDigest(notifyEmail, sb.String()); err != nil {
		zap.S().Errorw("failed to send stale complaint digest", "error", err)
		return
	}
	zap.S().Infow("stale complaint digest sent", "count", len(stale), "to", notifyEmail)
}

func (s *Scheduler) sendDigest(toEmail, body string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("sendgrid is not configured")
	}

	subject := "Unanswered student complaints"
	from := mail.NewEmail("Student Portal", "no-reply@cuportal.edu")
	to := mail.NewEmail("", toEmail)
	html := templates.RenderGenericEmail(subject, body)
	msg := mail.NewSingleEmail(from, subject, to, body, html)

	client := sendgrid.NewSendClient(apiKey)
	_, err := client.Send(msg)
	return err
}
