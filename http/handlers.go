package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"thyrocast/db"
	"thyrocast/narration"
	"thyrocast/patient"
	"thyrocast/predict"
	"thyrocast/session"
)

// recurrencePredictor is the invoker as seen by the handlers. Tests swap in a
// fake.
type recurrencePredictor interface {
	Invoke(patient.Record) (predict.Result, error)
}

var (
	activePredictor recurrencePredictor
	history         *session.History
	demoCounter     int
)

func SetPredictor(p recurrencePredictor) {
	activePredictor = p
}

func SetHistory(h *session.History) {
	history = h
}

func RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", handleHealth)
	mux.HandleFunc("POST /api/predict", handlePredict)
	mux.HandleFunc("GET /api/history", handleHistory)
	mux.HandleFunc("GET /api/compare", handleCompare)
	mux.HandleFunc("GET /api/demo", handleDemo)
	mux.HandleFunc("GET /api/narrate/{id}", handleNarrate)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, map[string]string{"status": "ok"})
}

// handlePredict runs one submission through the invoker and, on success,
// appends it to the session history. Failed predictions never reach the
// history.
func handlePredict(w http.ResponseWriter, r *http.Request) {
	if activePredictor == nil || history == nil {
		http.Error(w, `{"error":"predictor not initialized"}`, http.StatusServiceUnavailable)
		return
	}

	var record patient.Record
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := activePredictor.Invoke(record)
	if err != nil {
		var mismatch *patient.InputMismatchError
		if errors.As(err, &mismatch) {
			respondError(w, http.StatusBadRequest, mismatch.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "prediction failed")
		return
	}

	entry := history.Record(record, result)
	broadcastEntry(entry)

	respondJSON(w, entry)
}

func handleHistory(w http.ResponseWriter, r *http.Request) {
	if history == nil {
		http.Error(w, `{"error":"history not initialized"}`, http.StatusServiceUnavailable)
		return
	}
	entries := history.List()
	respondJSON(w, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

func handleCompare(w http.ResponseWriter, r *http.Request) {
	if history == nil {
		http.Error(w, `{"error":"history not initialized"}`, http.StatusServiceUnavailable)
		return
	}

	i, errI := strconv.Atoi(r.URL.Query().Get("i"))
	j, errJ := strconv.Atoi(r.URL.Query().Get("j"))
	if errI != nil || errJ != nil {
		respondError(w, http.StatusBadRequest, "i and j must be integers")
		return
	}

	first, second, err := history.Compare(i, j)
	if err != nil {
		if errors.Is(err, session.ErrIndexOutOfRange) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "comparison failed")
		return
	}

	respondJSON(w, map[string]interface{}{
		"first":  first,
		"second": second,
	})
}

// handleDemo returns a prefill record for demo mode: either a randomized one
// or, with ?source=dataset, a row sampled from the reference cohort.
func handleDemo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("source") == "dataset" {
		row, err := db.RandomPatient()
		if err != nil {
			respondError(w, http.StatusInternalServerError, "dataset unavailable")
			return
		}
		demoCounter++
		record := row.Record
		record.Name = "Dataset Patient " + strconv.Itoa(demoCounter)
		respondJSON(w, record)
		return
	}

	demoCounter++
	respondJSON(w, patient.DemoRecord(demoCounter))
}

func handleNarrate(w http.ResponseWriter, r *http.Request) {
	if history == nil {
		http.Error(w, `{"error":"history not initialized"}`, http.StatusServiceUnavailable)
		return
	}

	id := r.PathValue("id")
	entry, ok := history.Find(id)
	if !ok {
		respondError(w, http.StatusNotFound, "no such prediction")
		return
	}

	lang := narration.Match(r.URL.Query().Get("lang"))
	text := narration.Script(entry.Name, entry.Result.Probability, entry.Result.Verdict, lang)

	respondJSON(w, map[string]string{
		"id":   entry.ID,
		"lang": lang.String(),
		"text": text,
	})
}

func respondJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
