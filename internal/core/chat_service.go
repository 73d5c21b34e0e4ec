package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"gyansetu.io/backend/internal/store"
)

const recentSessionLimit = 20

// ChatService relays one user message to the first available provider in
// the chain and keeps the session transcript. Provider failures never
// reach the caller as errors; they degrade into a canned assistant reply
// so the conversation stays intact.
type ChatService struct {
	dbStore   *store.SQLiteStore
	providers []Provider
	model     string // used only to word the apology messages
}

func NewChatService(db *store.SQLiteStore, model string, providers ...Provider) *ChatService {
	return &ChatService{
		dbStore:   db,
		providers: providers,
		model:     model,
	}
}

type ChatResult struct {
	SessionID string `json:"sessionId"`
	Response  string `json:"response"`
	AudioURL  string `json:"audioUrl,omitempty"`
}

// StreamEvent is one frame of the client-facing SSE contract: any number
// of {chunk, done:false} frames, then exactly one terminal frame carrying
// either the session summary or an error.
type StreamEvent struct {
	Chunk        string `json:"chunk,omitempty"`
	Done         bool   `json:"done"`
	SessionID    string `json:"sessionId,omitempty"`
	FullResponse string `json:"fullResponse,omitempty"`
	Error        string `json:"error,omitempty"`
}

// GetOrCreateSession resolves a supplied session id, falling back to a
// fresh session whenever the id is absent, malformed, unknown, or owned by
// another user. Creation must never fail the caller's request over a bad
// id.
func (s *ChatService) GetOrCreateSession(userID, suppliedID, language string) (*store.ChatSession, error) {
	if suppliedID != "" {
		if _, err := uuid.Parse(suppliedID); err == nil {
			session, err := s.dbStore.GetChatSession(suppliedID)
			if err == nil && session.UserID == userID {
				return session, nil
			}
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				log.Printf("Chat session lookup failed for %s, creating a new one: %v", suppliedID, err)
			}
		}
	}
	if language == "" {
		language = DefaultLanguage
	}
	return s.dbStore.CreateChatSession(userID, language)
}

// Respond handles the non-streaming path: append the user turn, get one
// reply from the provider chain, append and return it.
func (s *ChatService) Respond(ctx context.Context, userID, sessionID, message, language string) (*ChatResult, error) {
	session, err := s.GetOrCreateSession(userID, sessionID, language)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve chat session: %w", err)
	}
	if language == "" {
		language = session.Language
	}

	if _, err := s.dbStore.AppendChatMessage(session.ID, "user", message, nil); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	in, err := s.promptInput(session.ID, message, language)
	if err != nil {
		return nil, err
	}

	reply := s.complete(ctx, in)

	var audioURL *string
	if reply.AudioURL != "" {
		audioURL = &reply.AudioURL
	}
	if _, err := s.dbStore.AppendChatMessage(session.ID, "assistant", reply.Content, audioURL); err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}

	return &ChatResult{
		SessionID: session.ID,
		Response:  reply.Content,
		AudioURL:  reply.AudioURL,
	}, nil
}

// RespondStream is the streaming variant. Chunks go to emit as they
// arrive; the concatenation is persisted as the assistant turn exactly
// once, after the stream ends or fails. If the client disconnects, ctx is
// cancelled, the upstream read aborts, and whatever was accumulated is
// still saved best-effort.
func (s *ChatService) RespondStream(ctx context.Context, userID, sessionID, message, language string, emit func(StreamEvent)) {
	session, err := s.GetOrCreateSession(userID, sessionID, language)
	if err != nil {
		emit(StreamEvent{Error: "failed to resolve chat session", Done: true})
		return
	}
	if language == "" {
		language = session.Language
	}

	if _, err := s.dbStore.AppendChatMessage(session.ID, "user", message, nil); err != nil {
		emit(StreamEvent{Error: "failed to store message", Done: true})
		return
	}

	in, err := s.promptInput(session.ID, message, language)
	if err != nil {
		emit(StreamEvent{Error: "failed to load chat history", Done: true})
		return
	}

	var full strings.Builder
	forward := func(chunk string) {
		full.WriteString(chunk)
		emit(StreamEvent{Chunk: chunk, Done: false})
	}

	var lastErr error
	delivered := false
	for _, p := range s.providers {
		if !p.Healthy(ctx) {
			log.Printf("Provider %s unavailable, trying next", p.Name())
			continue
		}
		startLen := full.Len()
		if err := p.ChatStream(ctx, in, forward); err != nil {
			lastErr = err
			log.Printf("Provider %s stream failed: %v", p.Name(), err)
			if full.Len() > startLen {
				// Mid-flight failure after partial output: close out with
				// a synthetic diagnostic chunk instead of switching
				// providers and replaying from scratch.
				forward(s.apologyFor(err))
				delivered = true
				break
			}
			continue
		}
		if full.Len() == startLen {
			lastErr = fmt.Errorf("provider %s streamed no content", p.Name())
			continue
		}
		delivered = true
		break
	}
	if !delivered {
		forward(s.apologyFor(lastErr))
	}

	if _, err := s.dbStore.AppendChatMessage(session.ID, "assistant", full.String(), nil); err != nil {
		log.Printf("Failed to persist streamed assistant message for session %s: %v", session.ID, err)
	}

	emit(StreamEvent{Done: true, SessionID: session.ID, FullResponse: full.String()})
}

// complete walks the provider chain for the non-streaming path.
func (s *ChatService) complete(ctx context.Context, in PromptInput) *Reply {
	var lastErr error
	for _, p := range s.providers {
		if !p.Healthy(ctx) {
			log.Printf("Provider %s unavailable, trying next", p.Name())
			continue
		}
		reply, err := p.Chat(ctx, in)
		if err != nil {
			lastErr = err
			log.Printf("Provider %s failed: %v", p.Name(), err)
			continue
		}
		if reply == nil || reply.Content == "" {
			lastErr = fmt.Errorf("provider %s returned empty response", p.Name())
			continue
		}
		return reply
	}
	return &Reply{Content: s.apologyFor(lastErr)}
}

// promptInput loads the trimmed transcript (which already includes the
// just-appended user turn) into provider wire format.
func (s *ChatService) promptInput(sessionID, message, language string) (PromptInput, error) {
	msgs, err := s.dbStore.GetLastNChatMessages(sessionID, historyLimit)
	if err != nil {
		return PromptInput{}, fmt.Errorf("failed to load chat history: %w", err)
	}

	history := make([]Turn, 0, len(msgs))
	for _, m := range msgs {
		history = append(history, Turn{Role: m.Role, Content: m.Content})
	}
	return PromptInput{Message: message, History: history, Language: language}, nil
}

// apologyFor turns the last provider error into the degraded assistant
// reply, naming the likely cause where it can tell.
func (s *ChatService) apologyFor(err error) string {
	var statusErr *StatusError
	switch {
	case err == nil:
		return "I apologize, but I'm having technical difficulties. Please try again in a moment."
	case errors.Is(err, syscall.ECONNREFUSED):
		return fmt.Sprintf("I'm having trouble connecting to my AI service. Please make sure Ollama is running with the %s model installed.", s.model)
	case errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound:
		return fmt.Sprintf("The AI model is not available. Please run: ollama pull %s", s.model)
	default:
		return "I apologize, but I'm having technical difficulties. Please try again in a moment."
	}
}

// History and lifecycle operations

// GetSession returns one session with its full transcript, only for its
// owner; anything else reads as not found.
func (s *ChatService) GetSession(userID, sessionID string) (*store.ChatSession, error) {
	session, err := s.dbStore.GetChatSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, store.ErrNotFound
	}
	messages, err := s.dbStore.ListChatMessages(sessionID)
	if err != nil {
		return nil, err
	}
	session.Messages = messages
	return session, nil
}

func (s *ChatService) ListSessions(userID string) ([]store.ChatSession, error) {
	return s.dbStore.ListChatSessions(userID, recentSessionLimit)
}

func (s *ChatService) DeleteSession(userID, sessionID string) error {
	return s.dbStore.DeleteChatSession(userID, sessionID)
}
