package core

import (
	"context"
	"fmt"
)

// Turn is one role-tagged message in provider wire format.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PromptInput carries everything a provider needs to answer one user
// message. History already includes the current message as its last turn;
// providers that ignore history (the RAG service keeps its own context)
// use Message directly.
type PromptInput struct {
	Message  string
	History  []Turn
	Language string
}

type Reply struct {
	Content  string
	AudioURL string
}

// Provider is one inference backend in the relay's fallback chain. The
// relay probes Healthy first and commits to the first provider that
// accepts the request; providers therefore keep Healthy cheap and bounded.
type Provider interface {
	Name() string
	Healthy(ctx context.Context) bool
	Chat(ctx context.Context, in PromptInput) (*Reply, error)
	// ChatStream forwards each decoded text increment to emit in arrival
	// order. It returns once the upstream stream ends or fails.
	ChatStream(ctx context.Context, in PromptInput, emit func(chunk string)) error
}

// StatusError reports a non-2xx upstream response; the relay inspects the
// code to pick an apology message.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Code, e.Body)
}
