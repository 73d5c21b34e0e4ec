package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Chat session methods

func (s *SQLiteStore) CreateChatSession(userID, language string) (*ChatSession, error) {
	now := time.Now().UTC()
	session := &ChatSession{
		ID:          uuid.NewString(),
		UserID:      userID,
		SessionName: "New Chat",
		Language:    language,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := s.db.Exec(
		"INSERT INTO chat_sessions (id, user_id, session_name, language, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		session.ID, session.UserID, session.SessionName, session.Language, session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert chat session: %w", err)
	}
	return session, nil
}

func (s *SQLiteStore) GetChatSession(sessionID string) (*ChatSession, error) {
	var session ChatSession
	err := s.db.Get(&session, "SELECT * FROM chat_sessions WHERE id = ?", sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get chat session: %w", err)
	}
	return &session, nil
}

func (s *SQLiteStore) ListChatSessions(userID string, limit int) ([]ChatSession, error) {
	var sessions []ChatSession
	err := s.db.Select(&sessions,
		"SELECT * FROM chat_sessions WHERE user_id = ? ORDER BY updated_at DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat sessions: %w", err)
	}
	return sessions, nil
}

// DeleteChatSession removes a session and its messages, but only for its
// owner. A foreign or unknown id is ErrNotFound either way.
func (s *SQLiteStore) DeleteChatSession(userID, sessionID string) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin delete tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("DELETE FROM chat_sessions WHERE id = ? AND user_id = ?", sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete chat session: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	if _, err = tx.Exec("DELETE FROM chat_messages WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete chat messages: %w", err)
	}
	return tx.Commit()
}

// Message methods

func (s *SQLiteStore) AppendChatMessage(sessionID, role, content string, audioURL *string) (*ChatMessage, error) {
	msg := &ChatMessage{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		AudioURL:  audioURL,
		CreatedAt: time.Now().UTC(),
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin message tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO chat_messages (id, session_id, role, content, audio_url, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		msg.ID, msg.SessionID, msg.Role, msg.Content, msg.AudioURL, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert chat message: %w", err)
	}

	_, err = tx.Exec("UPDATE chat_sessions SET updated_at = ? WHERE id = ?", msg.CreatedAt, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to bump chat session: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit message tx: %w", err)
	}
	return msg, nil
}

func (s *SQLiteStore) ListChatMessages(sessionID string) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := s.db.Select(&messages,
		"SELECT * FROM chat_messages WHERE session_id = ? ORDER BY created_at ASC, id ASC",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}

// GetLastNChatMessages returns the most recent n messages in chronological
// order, for trimming LLM context.
func (s *SQLiteStore) GetLastNChatMessages(sessionID string, n int) ([]ChatMessage, error) {
	var messages []ChatMessage
	err := s.db.Select(&messages, `
        SELECT * FROM (
            SELECT * FROM chat_messages WHERE session_id = ? ORDER BY created_at DESC, id DESC LIMIT ?
        ) ORDER BY created_at ASC, id ASC`,
		sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query last messages: %w", err)
	}
	return messages, nil
}

// CountUserMessagesSince counts the user's own (role = 'user') messages
// written at or after the given time; the monthly dashboard reports it as
// "AI tutor queries".
func (s *SQLiteStore) CountUserMessagesSince(userID string, since time.Time) (int, error) {
	var count int
	err := s.db.Get(&count, `
        SELECT COUNT(*) FROM chat_messages m
        JOIN chat_sessions s ON s.id = m.session_id
        WHERE s.user_id = ? AND m.role = 'user' AND m.created_at >= ?`,
		userID, since.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to count user messages: %w", err)
	}
	return count, nil
}
