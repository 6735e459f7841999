package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/cuportal/student-portal-api/api"
	"github.com/cuportal/student-portal-api/config"
	"github.com/cuportal/student-portal-api/databases"
	"github.com/cuportal/student-portal-api/models"
)

// Department holds the store for the departments catalog that feeds the
// complaint form's department field
type Department struct {
	DB databases.DepartmentDatabase
}

// ListDepartmentsHandler returns every department, name ascending
func (d Department) ListDepartmentsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	departments, err := d.DB.Find(ctx, bson.M{})
	if err != nil {
		config.ErrorStatus("failed to list departments", http.StatusInternalServerError, w, err)
		return
	}
	if departments == nil {
		departments = []models.Department{}
	}

	b, err := json.Marshal(departments)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type departmentRequest struct {
	Name    string `json:"name"`
	Faculty string `json:"faculty"`
}

// CreateDepartmentHandler adds a department to the catalog
func (d Department) CreateDepartmentHandler(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		config.ErrorStatus("department name is required", http.StatusBadRequest, w, fmt.Errorf("empty name"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := d.DB.FindOne(ctx, bson.M{"name": name}); err == nil {
		config.ErrorStatus("department already exists", http.StatusConflict, w, fmt.Errorf("duplicate department %q", name))
		return
	} else if !databases.IsNoDocuments(err) {
		config.ErrorStatus("failed to check department", http.StatusInternalServerError, w, err)
		return
	}

	dept := models.Department{
		Name:      name,
		Faculty:   strings.TrimSpace(req.Faculty),
		CreatedAt: time.Now().UTC(),
	}
	res, err := d.DB.InsertOne(ctx, dept)
	if err != nil {
		config.ErrorStatus("failed to create department", http.StatusInternalServerError, w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(fmt.Sprintf(`{"inserted": "%v"}`, res.Decode())))
}
