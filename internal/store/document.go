package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func (s *SQLiteStore) CreateDocument(userID, fileName string, numChunks int) (*Document, error) {
	doc := &Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		NumChunks:  numChunks,
		UploadedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(
		"INSERT INTO documents (id, user_id, file_name, num_chunks, uploaded_at) VALUES (?, ?, ?, ?, ?)",
		doc.ID, doc.UserID, doc.FileName, doc.NumChunks, doc.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}
	return doc, nil
}

func (s *SQLiteStore) ListDocuments(userID string) ([]Document, error) {
	var docs []Document
	err := s.db.Select(&docs,
		"SELECT * FROM documents WHERE user_id = ? ORDER BY uploaded_at DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}
