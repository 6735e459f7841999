package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// ComplaintStatus enumerates the lifecycle states of a complaint
type ComplaintStatus string

// Complaint lifecycle states. A complaint is created as StatusOpen and only
// moves between states through the admin status endpoint.
const (
	StatusOpen       ComplaintStatus = "open"
	StatusInProgress ComplaintStatus = "in-progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusClosed     ComplaintStatus = "closed"
)

// ValidComplaintStatus reports whether s is one of the known lifecycle states
func ValidComplaintStatus(s ComplaintStatus) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

// ActorRole identifies who authored a message or action
type ActorRole string

// The two parties of a complaint thread
const (
	RoleStudent ActorRole = "student"
	RoleAdmin   ActorRole = "admin"
)

// ComplaintRecord holds the structure for the complaints collection in mongo.
// The document ID is the normalized student ID, so there is at most one
// complaint record per student.
type ComplaintRecord struct {
	StudentID     string          `json:"studentId" bson:"_id"`
	Title         string          `json:"title" bson:"title"`
	Email         string          `json:"email" bson:"email"`
	Department    string          `json:"department" bson:"department"`
	Description   string          `json:"description" bson:"description"`
	Status        ComplaintStatus `json:"status" bson:"status"`
	OpenedAt      time.Time       `json:"openedAt" bson:"openedAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt" bson:"lastUpdatedAt"`
	LastTextBy    ActorRole       `json:"lastTextBy" bson:"lastTextBy"`
}

// ComplaintView is the aggregate returned when tracking a complaint: the
// parent record plus its full ordered message thread
type ComplaintView struct {
	ComplaintRecord
	Messages []ComplaintMessage `json:"messages"`
}

// PaginationInfo describes one page of a listed collection
type PaginationInfo struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalComplaints int  `json:"totalComplaints"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPrevPage     bool `json:"hasPrevPage"`
}

// PaginatedComplaintsResponse is the back-office complaint listing
type PaginatedComplaintsResponse struct {
	Complaints []ComplaintRecord `json:"complaints"`
	Pagination PaginationInfo    `json:"pagination"`
}

// ComplaintSubmission is the request body for filing a complaint
type ComplaintSubmission struct {
	StudentID   string `json:"studentId"`
	Title       string `json:"title"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Description string `json:"description"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks every required field and returns one FieldError per
// violation. All violations are reported together, not just the first.
func (c ComplaintSubmission) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(c.StudentID) == "" {
		errs = append(errs, FieldError{Field: "studentId", Message: "Student ID is required"})
	}
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "Title is required"})
	}
	if email := strings.TrimSpace(c.Email); email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "Email is required"})
	} else if !emailPattern.MatchString(email) {
		errs = append(errs, FieldError{Field: "email", Message: "Invalid email format"})
	}
	if strings.TrimSpace(c.Department) == "" {
		errs = append(errs, FieldError{Field: "department", Message: "Department is required"})
	}
	if desc := strings.TrimSpace(c.Description); desc == "" {
		errs = append(errs, FieldError{Field: "description", Message: "Detailed description is required"})
	} else if utf8.RuneCountInString(desc) < 10 {
		errs = append(errs, FieldError{Field: "description", Message: "Please provide at least 10 characters"})
	}

	return errs
}

// ResolveStudentID normalizes a human-entered student ID into the canonical
// complaint key. It trims surrounding whitespace and rejects empty input.
func ResolveStudentID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("student ID must not be empty")
	}
	return id, nil
}
