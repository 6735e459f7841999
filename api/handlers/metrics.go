package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cuportal/student-portal-api/api"
	"github.com/cuportal/student-portal-api/config"
)

// MetricsHandler returns the in-process request metrics for the back office
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	mc := api.GetMetrics()

	payload := map[string]interface{}{
		"summary": mc.GetSummary(),
		"routes":  mc.GetRouteMetrics(),
	}

	b, err := json.Marshal(payload)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
