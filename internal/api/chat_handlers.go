package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"gyansetu.io/backend/internal/core"
	"gyansetu.io/backend/internal/store"
)

type ChatMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Language  string `json:"language"`
}

func (h *APIHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	result, err := h.chatService.Respond(r.Context(), userID, req.SessionID, req.Message, req.Language)
	if err != nil {
		log.Printf("Error processing chat message for user %s: %v", userID, err)
		http.Error(w, "Error processing chat message", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(result)
}

// StreamMessageHandler relays the reply as Server-Sent Events: one
// data: {chunk, done:false} frame per increment and a single terminal
// frame. Once the headers are flushed there is no way to switch to a
// plain error response, so failures also arrive as SSE frames.
func (h *APIHandler) StreamMessageHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	var req ChatMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	h.chatService.RespondStream(r.Context(), userID, req.SessionID, req.Message, req.Language, func(event core.StreamEvent) {
		data, err := json.Marshal(event)
		if err != nil {
			log.Printf("Failed to marshal stream event: %v", err)
			return
		}
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	})
}

func (h *APIHandler) GetChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	sessionID := r.URL.Query().Get("sessionId")

	if sessionID != "" {
		session, err := h.chatService.GetSession(userID, sessionID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "Chat session not found", http.StatusNotFound)
				return
			}
			log.Printf("Error fetching chat session %s: %v", sessionID, err)
			http.Error(w, "Error fetching chat history", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(session)
		return
	}

	sessions, err := h.chatService.ListSessions(userID)
	if err != nil {
		log.Printf("Error listing chat sessions for user %s: %v", userID, err)
		http.Error(w, "Error fetching chat history", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(sessions)
}

func (h *APIHandler) DeleteChatHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)
	sessionID := chi.URLParam(r, "sessionID")

	if err := h.chatService.DeleteSession(userID, sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Chat session not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting chat session %s: %v", sessionID, err)
		http.Error(w, "Error deleting chat session", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
