package core

import (
	"context"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gyansetu.io/backend/internal/store"
)

// fakeProvider scripts one provider in the fallback chain.
type fakeProvider struct {
	name      string
	healthy   bool
	reply     string
	chunks    []string
	err       error
	chatCalls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Healthy(ctx context.Context) bool { return f.healthy }

func (f *fakeProvider) Chat(ctx context.Context, in PromptInput) (*Reply, error) {
	f.chatCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &Reply{Content: f.reply}, nil
}

func (f *fakeProvider) ChatStream(ctx context.Context, in PromptInput, emit func(chunk string)) error {
	f.chatCalls++
	for _, c := range f.chunks {
		emit(c)
	}
	return f.err
}

func collectEvents(t *testing.T, svc *ChatService, userID, sessionID, message, language string) []StreamEvent {
	t.Helper()
	var events []StreamEvent
	svc.RespondStream(context.Background(), userID, sessionID, message, language, func(e StreamEvent) {
		events = append(events, e)
	})
	require.NotEmpty(t, events)
	return events
}

func TestRespondUsesFirstHealthyProvider(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "chat1@example.com")

	primary := &fakeProvider{name: "rag", healthy: true, reply: "grounded answer"}
	fallback := &fakeProvider{name: "ollama", healthy: true, reply: "plain answer"}
	svc := NewChatService(s, "llama3.2", primary, fallback)

	result, err := svc.Respond(context.Background(), user.ID, "", "What is gravity?", "en")
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", result.Response)
	assert.NotEmpty(t, result.SessionID)
	assert.Equal(t, 1, primary.chatCalls)
	assert.Equal(t, 0, fallback.chatCalls, "fallback must not run when primary answers")

	// Both turns persisted.
	session, err := svc.GetSession(user.ID, result.SessionID)
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "user", session.Messages[0].Role)
	assert.Equal(t, "What is gravity?", session.Messages[0].Content)
	assert.Equal(t, "assistant", session.Messages[1].Role)
	assert.Equal(t, "grounded answer", session.Messages[1].Content)
}

func TestRespondFallsThroughUnhealthyAndFailing(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "chat2@example.com")

	down := &fakeProvider{name: "rag", healthy: false}
	failing := &fakeProvider{name: "broken", healthy: true, err: fmt.Errorf("boom")}
	working := &fakeProvider{name: "ollama", healthy: true, reply: "recovered"}
	svc := NewChatService(s, "llama3.2", down, failing, working)

	result, err := svc.Respond(context.Background(), user.ID, "", "hello", "en")
	require.NoError(t, err)
	assert.Equal(t, "recovered", result.Response)
	assert.Equal(t, 0, down.chatCalls, "unhealthy providers are skipped without a call")
	assert.Equal(t, 1, failing.chatCalls)
}

func TestRespondApologyWhenAllProvidersFail(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "chat3@example.com")

	failing := &fakeProvider{name: "ollama", healthy: true, err: fmt.Errorf("boom")}
	svc := NewChatService(s, "llama3.2", failing)

	result, err := svc.Respond(context.Background(), user.ID, "", "hello", "en")
	require.NoError(t, err, "provider failure must degrade, not error")
	assert.Contains(t, result.Response, "technical difficulties")

	// The apology is persisted as the assistant turn.
	session, err := svc.GetSession(user.ID, result.SessionID)
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, result.Response, session.Messages[1].Content)
}

func TestRespondApologyNamesConnectionRefused(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "chat4@example.com")

	refused := &fakeProvider{name: "ollama", healthy: true, err: fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED)}
	svc := NewChatService(s, "llama3.2", refused)

	result, err := svc.Respond(context.Background(), user.ID, "", "hello", "en")
	require.NoError(t, err)
	assert.Contains(t, result.Response, "make sure Ollama is running")
	assert.Contains(t, result.Response, "llama3.2")
}

func TestRespondApologyNamesMissingModel(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "chat5@example.com")

	notFound := &fakeProvider{name: "ollama", healthy: true, err: &StatusError{Code: 404, Body: "model not found"}}
	svc := NewChatService(s, "llama3.2", notFound)

	result, err := svc.Respond(context.Background(), user.ID, "", "hello", "en")
	require.NoError(t, err)
	assert.Contains(t, result.Response, "ollama pull llama3.2")
}

func TestRespondReusesSession(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "chat6@example.com")
	svc := NewChatService(s, "llama3.2", &fakeProvider{name: "ollama", healthy: true, reply: "ok"})

	first, err := svc.Respond(context.Background(), user.ID, "", "first", "en")
	require.NoError(t, err)
	second, err := svc.Respond(context.Background(), user.ID, first.SessionID, "second", "en")
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	session, err := svc.GetSession(user.ID, first.SessionID)
	require.NoError(t, err)
	assert.Len(t, session.Messages, 4, "each turn adds exactly one user and one assistant message")
}

func TestGetOrCreateSessionRejectsForeignAndBadIDs(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "owner6@example.com")
	intruder := createTestUser(t, s, "intruder@example.com")
	svc := NewChatService(s, "llama3.2")

	session, err := svc.GetOrCreateSession(owner.ID, "", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", session.Language)

	// Malformed id: new session rather than an error.
	fresh, err := svc.GetOrCreateSession(owner.ID, "not-a-uuid", "en")
	require.NoError(t, err)
	assert.NotEqual(t, session.ID, fresh.ID)

	// Someone else's session id must not be joined.
	stolen, err := svc.GetOrCreateSession(intruder.ID, session.ID, "en")
	require.NoError(t, err)
	assert.NotEqual(t, session.ID, stolen.ID)

	// The owner gets their session back.
	same, err := svc.GetOrCreateSession(owner.ID, session.ID, "en")
	require.NoError(t, err)
	assert.Equal(t, session.ID, same.ID)
}

func TestRespondStreamChunksMatchFullResponse(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "stream1@example.com")

	provider := &fakeProvider{name: "ollama", healthy: true, chunks: []string{"The ", "answer ", "is 42."}}
	svc := NewChatService(s, "llama3.2", provider)

	events := collectEvents(t, svc, user.ID, "", "question", "en")

	var concat string
	for _, e := range events[:len(events)-1] {
		assert.False(t, e.Done)
		concat += e.Chunk
	}
	final := events[len(events)-1]
	assert.True(t, final.Done)
	assert.Empty(t, final.Error)
	assert.Equal(t, "The answer is 42.", final.FullResponse)
	assert.Equal(t, final.FullResponse, concat, "terminal fullResponse must equal the concatenated chunks")
	assert.NotEmpty(t, final.SessionID)

	// The streamed reply is persisted once, as a single assistant turn.
	session, err := svc.GetSession(user.ID, final.SessionID)
	require.NoError(t, err)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "The answer is 42.", session.Messages[1].Content)
}

func TestRespondStreamFallsBackBetweenProviders(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "stream2@example.com")

	// Fails before producing anything: the next provider gets a clean start.
	failing := &fakeProvider{name: "rag", healthy: true, err: fmt.Errorf("boom")}
	working := &fakeProvider{name: "ollama", healthy: true, chunks: []string{"plan B"}}
	svc := NewChatService(s, "llama3.2", failing, working)

	events := collectEvents(t, svc, user.ID, "", "question", "en")
	final := events[len(events)-1]
	assert.Equal(t, "plan B", final.FullResponse)
}

func TestRespondStreamMidFlightFailureStopsChain(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "stream3@example.com")

	// Partial output then failure: no replay from the fallback, the stream
	// closes out with a diagnostic chunk instead.
	partial := &fakeProvider{name: "rag", healthy: true, chunks: []string{"half an "}, err: fmt.Errorf("connection reset")}
	fallback := &fakeProvider{name: "ollama", healthy: true, chunks: []string{"should not run"}}
	svc := NewChatService(s, "llama3.2", partial, fallback)

	events := collectEvents(t, svc, user.ID, "", "question", "en")
	final := events[len(events)-1]
	assert.True(t, final.Done)
	assert.Contains(t, final.FullResponse, "half an ")
	assert.Contains(t, final.FullResponse, "technical difficulties")
	assert.NotContains(t, final.FullResponse, "should not run")
	assert.Equal(t, 0, fallback.chatCalls)
}

func TestRespondStreamApologyWhenNothingDelivers(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "stream4@example.com")

	empty := &fakeProvider{name: "rag", healthy: true}            // succeeds with zero chunks
	down := &fakeProvider{name: "ollama", healthy: true, err: fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED)}
	svc := NewChatService(s, "llama3.2", empty, down)

	events := collectEvents(t, svc, user.ID, "", "question", "en")
	final := events[len(events)-1]
	assert.True(t, final.Done)
	assert.Contains(t, final.FullResponse, "make sure Ollama is running")
}

func TestDeleteSessionOwnership(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "del1@example.com")
	other := createTestUser(t, s, "del2@example.com")
	svc := NewChatService(s, "llama3.2", &fakeProvider{name: "ollama", healthy: true, reply: "ok"})

	result, err := svc.Respond(context.Background(), owner.ID, "", "hello", "en")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteSession(other.ID, result.SessionID), store.ErrNotFound)
	require.NoError(t, svc.DeleteSession(owner.ID, result.SessionID))
	_, err = svc.GetSession(owner.ID, result.SessionID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetSessionHidesForeignSessions(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "hide1@example.com")
	other := createTestUser(t, s, "hide2@example.com")
	svc := NewChatService(s, "llama3.2", &fakeProvider{name: "ollama", healthy: true, reply: "ok"})

	result, err := svc.Respond(context.Background(), owner.ID, "", "hello", "en")
	require.NoError(t, err)

	_, err = svc.GetSession(other.ID, result.SessionID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
