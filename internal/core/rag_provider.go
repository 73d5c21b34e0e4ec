package core

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const (
	ragHealthTimeout = 5 * time.Second
	ragChatTimeout   = 60 * time.Second
	ragUploadTimeout = 120 * time.Second
)

// RAGProvider talks to the document-aware inference microservice. It is
// the preferred provider: replies are grounded in whatever the user has
// uploaded.
type RAGProvider struct {
	baseURL string
	client  *http.Client
}

// NewRAGProvider keeps the client free of an overall timeout; streaming
// responses outlive any sane fixed deadline, so non-streaming calls set
// their own context deadlines instead. The transport still bounds the
// wait for response headers: a stream request that connects but never
// answers must fail over to the next provider, not hang the relay.
func NewRAGProvider(baseURL string) *RAGProvider {
	return &RAGProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Transport: &http.Transport{ResponseHeaderTimeout: ragChatTimeout},
		},
	}
}

func (p *RAGProvider) Name() string { return "rag" }

// Healthy probes GET /health with a bounded deadline. A slow or erroring
// probe reads as unavailable; the relay then falls through to the next
// provider.
func (p *RAGProvider) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, ragHealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}

	var body struct {
		Available bool `json:"available"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		// A reachable service with an unexpected body still counts.
		return true
	}
	return body.Available
}

type ragChatRequest struct {
	Message  string `json:"message"`
	UseRAG   bool   `json:"use_rag"`
	Language string `json:"language,omitempty"`
}

type ragChatResponse struct {
	Response    string `json:"response"`
	Message     string `json:"message"`
	ContextUsed bool   `json:"context_used"`
	NumChunks   int    `json:"num_chunks"`
}

func (p *RAGProvider) Chat(ctx context.Context, in PromptInput) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, ragChatTimeout)
	defer cancel()

	resp, err := p.post(ctx, "/chat", ragChatRequest{Message: in.Message, UseRAG: true, Language: in.Language})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body ragChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode RAG response: %w", err)
	}

	content := body.Response
	if content == "" {
		content = body.Message
	}
	if content == "" {
		return nil, fmt.Errorf("RAG service returned empty response")
	}
	return &Reply{Content: content}, nil
}

// ChatStream reads the RAG service's event stream. Frames are "data: "
// prefixed JSON lines carrying {content}; bufio.Scanner does the
// partial-buffer carryover between reads.
func (p *RAGProvider) ChatStream(ctx context.Context, in PromptInput, emit func(chunk string)) error {
	resp, err := p.post(ctx, "/chat/stream", ragChatRequest{Message: in.Message, UseRAG: true, Language: in.Language})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var event struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &event); err != nil {
			continue // skip malformed frames
		}
		if event.Content != "" {
			emit(event.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("RAG stream read failed: %w", err)
	}
	return nil
}

type UploadResult struct {
	NumChunks int    `json:"num_chunks"`
	Message   string `json:"message"`
}

// Upload forwards a document to the RAG service for chunking and
// embedding. Large PDFs take a while, hence the generous deadline.
func (p *RAGProvider) Upload(ctx context.Context, fileName string, file io.Reader) (*UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, ragUploadTimeout)
	defer cancel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/upload", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RAG upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &result, nil
}

func (p *RAGProvider) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal RAG request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create RAG request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("RAG request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return resp, nil
}
