package api

import (
	"encoding/json"
	"log"
	"net/http"
)

const maxUploadSize = 32 << 20 // 32 MB

func (h *APIHandler) UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "A file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	doc, err := h.documentService.Upload(r.Context(), userID, header.Filename, file)
	if err != nil {
		log.Printf("Error uploading document %s for user %s: %v", header.Filename, userID, err)
		http.Error(w, "Error processing document", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func (h *APIHandler) ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.Context().Value("userID").(string)

	docs, err := h.documentService.List(userID)
	if err != nil {
		log.Printf("Error listing documents for user %s: %v", userID, err)
		http.Error(w, "Error fetching documents", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(docs)
}
