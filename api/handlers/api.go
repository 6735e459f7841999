package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/cuportal/student-portal-api/api"
	"github.com/cuportal/student-portal-api/api/scheduler"
	"github.com/cuportal/student-portal-api/config"
	"github.com/cuportal/student-portal-api/databases"
	"github.com/cuportal/student-portal-api/models"
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	// setup go-guardian for the console token middleware
	m := api.MiddlewareDB{DB: databases.NewAdminDatabase(a.dbHelper)}
	m.SetupGoGuardian()

	r := mux.NewRouter()

	c := Complaint{
		CDB: databases.NewComplaintDatabase(a.dbHelper),
		MDB: databases.NewComplaintMessageDatabase(a.dbHelper),
	}
	ac := AdminComplaint{
		CDB: databases.NewComplaintDatabase(a.dbHelper),
		MDB: databases.NewComplaintMessageDatabase(a.dbHelper),
	}
	adm := Admin{
		ADB: databases.NewAdminDatabase(a.dbHelper),
		RDB: databases.NewAdminResetDatabase(a.dbHelper),
	}
	d := Department{DB: databases.NewDepartmentDatabase(a.dbHelper)}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/auth/token", http.HandlerFunc(m.CreateToken)).Methods("POST")
	apiCreate.Handle("/auth/logout", api.Middleware(http.HandlerFunc(api.RevokeToken))).Methods("DELETE")

	// student-facing routes are open on purpose: the student ID is the ticket
	apiCreate.Handle("/complaint", http.HandlerFunc(c.SubmitComplaintHandler)).Methods("POST")
	apiCreate.Handle("/complaint/{student_id}", http.HandlerFunc(c.TrackComplaintHandler)).Methods("GET")
	apiCreate.Handle("/complaint/{student_id}/messages", http.HandlerFunc(c.StudentReplyHandler)).Methods("POST")

	apiCreate.Handle("/departments", http.HandlerFunc(d.ListDepartmentsHandler)).Methods("GET")
	apiCreate.Handle("/admin/departments", api.Middleware(http.HandlerFunc(d.CreateDepartmentHandler))).Methods("POST")

	// back office
	apiCreate.Handle("/admin/login", http.HandlerFunc(adm.AdminLoginHandler)).Methods("POST")
	apiCreate.Handle("/admin/forgot-password", http.HandlerFunc(adm.AdminForgotPasswordHandler)).Methods("POST")
	apiCreate.Handle("/admin/reset-password", http.HandlerFunc(adm.AdminResetPasswordHandler)).Methods("POST")

	apiCreate.Handle("/admin/complaints", api.AdminOnly(http.HandlerFunc(ac.ListComplaintsHandler))).Methods("GET")
	apiCreate.Handle("/admin/complaints/{student_id}/status", api.AdminOnly(http.HandlerFunc(ac.UpdateComplaintStatusHandler))).Methods("PATCH")
	apiCreate.Handle("/admin/complaints/{student_id}/messages", api.AdminOnly(http.HandlerFunc(ac.AdminReplyHandler))).Methods("POST")
	apiCreate.Handle("/admin/complaints/{student_id}", api.AdminOnly(http.HandlerFunc(ac.DeleteComplaintHandler))).Methods("DELETE")

	apiCreate.Handle("/admin/metrics", api.Middleware(http.HandlerFunc(MetricsHandler))).Methods("GET")

	r.Use(api.MetricsMiddleware)
	r.Use(api.TimeoutMiddleware(30 * time.Second))

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {

	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With(err).Error("failed to create new client")
		return err
	}

	a.dbHelper = databases.NewDatabase(&a.Config, client)
	err = client.Connect()
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to connect to database")
		return err
	}
	zap.S().Info("student-portal-api has connected to the database")

	if err := a.ensureSuperAdmin(); err != nil {
		zap.S().With(err).Error("failed to bootstrap superadmin")
		return err
	}

	// start the stale-complaint reminder job
	s := scheduler.NewScheduler(
		databases.NewComplaintDatabase(a.dbHelper),
		databases.NewComplaintMessageDatabase(a.dbHelper),
	)
	s.Start()

	// initialize api router
	a.initializeRoutes()
	return nil

}

// ensureSuperAdmin creates the configured superadmin account on first boot so
// the back office is reachable on a fresh database. Skipped when the env vars
// are unset.
func (a *App) ensureSuperAdmin() error {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SUPERADMIN_EMAIL")))
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		zap.S().Debug("superadmin bootstrap skipped, no credentials configured")
		return nil
	}

	adb := databases.NewAdminDatabase(a.dbHelper)
	ctx, cancel := api.WithQueryTimeout(nil)
	defer cancel()

	if _, err := adb.FindOne(ctx, bson.M{"email": email}); err == nil {
		return nil
	} else if !databases.IsNoDocuments(err) {
		// a lookup failure is not the same as an absent account; creating a
		// duplicate superadmin here is worse than failing the boot
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = adb.InsertOne(ctx, models.AdminUser{
		Email:        email,
		Name:         "Super Administrator",
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []string{"superadmin"},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}
	zap.S().Infow("superadmin account created", "email", email)
	return nil
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}
