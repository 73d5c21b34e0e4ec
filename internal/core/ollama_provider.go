package core

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const ollamaChatTimeout = 60 * time.Second

// OllamaProvider calls a locally hosted Ollama instance directly. It is
// the fallback when the RAG service is down, so it does not health-probe:
// failures surface from the chat call itself and become the canned
// apology.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaProvider bounds the transport's wait for response headers so a
// stalled stream request surfaces as a failure instead of blocking the
// relay; the token stream itself carries no deadline.
func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client: &http.Client{
			Transport: &http.Transport{ResponseHeaderTimeout: ollamaChatTimeout},
		},
	}
}

func (p *OllamaProvider) Name() string { return "ollama" }

func (p *OllamaProvider) Healthy(ctx context.Context) bool { return true }

type ollamaChatRequest struct {
	Model    string `json:"model"`
	Messages []Turn `json:"messages"`
	Stream   bool   `json:"stream"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Done bool `json:"done"`
}

func (p *OllamaProvider) Chat(ctx context.Context, in PromptInput) (*Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, ollamaChatTimeout)
	defer cancel()

	resp, err := p.send(ctx, ollamaChatRequest{Model: p.model, Messages: buildMessages(in), Stream: false})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode ollama response: %w", err)
	}
	if body.Message.Content == "" {
		return nil, fmt.Errorf("ollama returned empty response")
	}
	return &Reply{Content: body.Message.Content}, nil
}

// ChatStream reads Ollama's line-delimited JSON stream and emits each
// content increment as it arrives. The stream ends with a done:true frame.
func (p *OllamaProvider) ChatStream(ctx context.Context, in PromptInput, emit func(chunk string)) error {
	resp, err := p.send(ctx, ollamaChatRequest{Model: p.model, Messages: buildMessages(in), Stream: true})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var frame ollamaChatResponse
		if err := json.Unmarshal([]byte(line), &frame); err != nil {
			continue // skip malformed frames
		}
		if frame.Message.Content != "" {
			emit(frame.Message.Content)
		}
		if frame.Done {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("ollama stream read failed: %w", err)
	}
	return nil
}

func (p *OllamaProvider) send(ctx context.Context, payload ollamaChatRequest) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	return resp, nil
}
