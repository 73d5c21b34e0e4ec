package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gyansetu.io/backend/internal/core"
)

func (h *APIHandler) UpdateProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req core.ReportTimeInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	progress, err := h.progressService.ReportTime(userID, req)
	if err != nil {
		log.Printf("Error updating progress for user %s: %v", userID, err)
		http.Error(w, "Error updating progress", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]any{"progress": progress})
}

func (h *APIHandler) GetUserProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	records, err := h.progressService.UserProgress(userID)
	if err != nil {
		log.Printf("Error fetching progress for user %s: %v", userID, err)
		http.Error(w, "Error fetching progress", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(records)
}

func (h *APIHandler) GetSubjectProgressHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	subjectID, err := strconv.Atoi(chi.URLParam(r, "subjectID"))
	if err != nil {
		http.Error(w, "Invalid subject id", http.StatusBadRequest)
		return
	}

	records, err := h.progressService.SubjectProgress(userID, subjectID)
	if err != nil {
		log.Printf("Error fetching subject progress for user %s: %v", userID, err)
		http.Error(w, "Error fetching progress", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(records)
}

// ChapterViewHandler merges the syllabus with the caller's stored
// progress, marking each chapter locked until the previous one is
// completed.
func (h *APIHandler) ChapterViewHandler(w http.ResponseWriter, r *http.Request) {
	user := requestUser(r)

	subjectID, err := strconv.Atoi(chi.URLParam(r, "subjectID"))
	if err != nil {
		http.Error(w, "Invalid subject id", http.StatusBadRequest)
		return
	}

	view, err := h.progressService.ChapterViews(user.ID, user.Class, subjectID)
	if err != nil {
		if errors.Is(err, core.ErrSubjectNotFound) {
			http.Error(w, "Subject not found", http.StatusNotFound)
			return
		}
		log.Printf("Error building chapter view for user %s: %v", user.ID, err)
		http.Error(w, "Error fetching chapters", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(view)
}

func (h *APIHandler) WeeklyAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	analytics, err := h.progressService.WeeklyAnalytics(userID, time.Now())
	if err != nil {
		log.Printf("Error computing weekly analytics for user %s: %v", userID, err)
		http.Error(w, "Error fetching analytics", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(analytics)
}

func (h *APIHandler) MonthlyAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	analytics, err := h.progressService.MonthlyAnalytics(userID, time.Now())
	if err != nil {
		log.Printf("Error computing monthly analytics for user %s: %v", userID, err)
		http.Error(w, "Error fetching analytics", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(analytics)
}
