package http

import (
	"net/http"
	"strconv"

	"thyrocast/db"
	"thyrocast/logger"
	"thyrocast/patient"
	"thyrocast/report"
)

func RegisterDashboardRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", handleFormPage)
	mux.HandleFunc("GET /analytics", handleAnalyticsPage)

	mux.HandleFunc("GET /api/analytics/summary", handleAnalyticsSummary)
	mux.HandleFunc("GET /api/analytics/top-risk", handleTopRisk)
	mux.HandleFunc("GET /api/dataset/summary", handleDatasetSummary)
	mux.HandleFunc("GET /api/export/csv", handleExportCSV)
}

type formPageData struct {
	Fields []patient.Field
	MinAge int
	MaxAge int
}

func handleFormPage(w http.ResponseWriter, r *http.Request) {
	data := formPageData{
		Fields: patient.Fields(),
		MinAge: patient.MinAge,
		MaxAge: patient.MaxAge,
	}
	renderPage(w, "form.html", data)
}

func handleAnalyticsPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, "analytics.html", nil)
}

func handleAnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	if history == nil {
		http.Error(w, `{"error":"history not initialized"}`, http.StatusServiceUnavailable)
		return
	}
	respondJSON(w, report.Summarize(history.List()))
}

func handleTopRisk(w http.ResponseWriter, r *http.Request) {
	if history == nil {
		http.Error(w, `{"error":"history not initialized"}`, http.StatusServiceUnavailable)
		return
	}

	limit := 5
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	entries := report.TopRisk(history.List(), limit)
	respondJSON(w, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func handleDatasetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := db.QueryDatasetSummary()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "dataset unavailable")
		return
	}
	respondJSON(w, summary)
}

func handleExportCSV(w http.ResponseWriter, r *http.Request) {
	if history == nil {
		http.Error(w, `{"error":"history not initialized"}`, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="prediction_history.csv"`)
	if err := report.WriteCSV(w, history.List()); err != nil {
		// Headers are already sent at this point; just log it.
		logger.Errorf("export csv: %v", err)
	}
}
