package core

import (
	"context"
	"fmt"
	"io"

	"gyansetu.io/backend/internal/store"
)

// DocumentService hands uploaded study material to the RAG service and
// keeps per-user metadata about what was ingested. Unlike chat, there is
// no fallback here: if the RAG service is down, ingestion fails loudly.
type DocumentService struct {
	dbStore *store.SQLiteStore
	rag     *RAGProvider
}

func NewDocumentService(db *store.SQLiteStore, rag *RAGProvider) *DocumentService {
	return &DocumentService{dbStore: db, rag: rag}
}

func (s *DocumentService) Upload(ctx context.Context, userID, fileName string, file io.Reader) (*store.Document, error) {
	result, err := s.rag.Upload(ctx, fileName, file)
	if err != nil {
		return nil, fmt.Errorf("RAG ingestion failed: %w", err)
	}

	doc, err := s.dbStore.CreateDocument(userID, fileName, result.NumChunks)
	if err != nil {
		return nil, fmt.Errorf("failed to record document: %w", err)
	}
	return doc, nil
}

func (s *DocumentService) List(userID string) ([]store.Document, error) {
	return s.dbStore.ListDocuments(userID)
}
