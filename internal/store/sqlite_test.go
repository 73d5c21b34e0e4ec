package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *SQLiteStore, email string) *User {
	t.Helper()
	user, err := s.CreateUser("Test Student", email, "hashed-password", "Class 6")
	require.NoError(t, err)
	return user
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)

	user := createTestUser(t, s, "student@example.com")
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "user", user.Role)

	byEmail, err := s.GetUserByEmail("student@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "Class 6", byEmail.Class)

	byID, err := s.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	_, err = s.GetUserByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateUser("Another", "student@example.com", "hash", "Class 7")
	assert.Error(t, err, "duplicate email must be rejected")
}

func TestAddTimeDeltaAccumulates(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "progress@example.com")
	key := ProgressKey{UserID: user.ID, SubjectID: 1, ChapterID: 1}
	now := time.Now().UTC()

	p, err := s.AddTimeDelta(key, "Mathematics", "Number Play", 0.5, 2.0, now)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p.TimeSpent, 1e-9)
	assert.False(t, p.Completed)

	p, err = s.AddTimeDelta(key, "Mathematics", "Number Play", 0.7, 2.0, now.Add(time.Minute))
	require.NoError(t, err)
	assert.InDelta(t, 1.2, p.TimeSpent, 1e-9)
	assert.False(t, p.Completed)

	// Crossing the threshold latches completed.
	p, err = s.AddTimeDelta(key, "Mathematics", "Number Play", 1.0, 2.0, now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.InDelta(t, 2.2, p.TimeSpent, 1e-9)
	assert.True(t, p.Completed)

	// Completed never reverts, even for a tiny follow-up delta.
	p, err = s.AddTimeDelta(key, "Mathematics", "Number Play", 0.01, 2.0, now.Add(3*time.Minute))
	require.NoError(t, err)
	assert.True(t, p.Completed)

	// Each report added one session row.
	records, err := s.ListProgressSince(user.ID, now.Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Sessions, 4)

	var total float64
	for _, session := range records[0].Sessions {
		total += session.Duration
	}
	assert.InDelta(t, records[0].TimeSpent, total, 1e-9, "cached total must equal the sum of sessions")
}

// The periodic autosave racing the flush-on-close call is the production
// shape of this access pattern: many small deltas for one key from
// concurrent requests. Every delta must land.
func TestAddTimeDeltaConcurrentReports(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "race@example.com")
	key := ProgressKey{UserID: user.ID, SubjectID: 1, ChapterID: 1}

	const (
		writers = 8
		reports = 25
	)
	var wg sync.WaitGroup
	errs := make(chan error, writers*reports)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < reports; j++ {
				_, err := s.AddTimeDelta(key, "Mathematics", "Number Play", 0.1, 2.0, time.Now().UTC())
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	p, err := s.GetProgress(key)
	require.NoError(t, err)
	assert.InDelta(t, float64(writers*reports)*0.1, p.TimeSpent, 1e-6, "no delta may be lost")
	assert.True(t, p.Completed)

	records, err := s.ListProgressSince(user.ID, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Len(t, records[0].Sessions, writers*reports, "every report appends its session row")
}

func TestAddTimeDeltaSeparatesTriples(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "triples@example.com")
	now := time.Now().UTC()

	// Same chapter id under two subjects must stay distinct.
	_, err := s.AddTimeDelta(ProgressKey{UserID: user.ID, SubjectID: 1, ChapterID: 1}, "Mathematics", "Number Play", 1.0, 2.0, now)
	require.NoError(t, err)
	_, err = s.AddTimeDelta(ProgressKey{UserID: user.ID, SubjectID: 2, ChapterID: 1}, "Science", "Components in Food", 3.0, 2.0, now)
	require.NoError(t, err)

	math, err := s.GetProgress(ProgressKey{UserID: user.ID, SubjectID: 1, ChapterID: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, math.TimeSpent, 1e-9)
	assert.False(t, math.Completed)

	sci, err := s.GetProgress(ProgressKey{UserID: user.ID, SubjectID: 2, ChapterID: 1})
	require.NoError(t, err)
	assert.InDelta(t, 3.0, sci.TimeSpent, 1e-9)
	assert.True(t, sci.Completed)

	bySubject, err := s.ListProgressBySubject(user.ID, 1)
	require.NoError(t, err)
	require.Len(t, bySubject, 1)
	assert.Equal(t, "Mathematics", bySubject[0].SubjectName)

	all, err := s.ListProgressByUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = s.GetProgress(ProgressKey{UserID: user.ID, SubjectID: 3, ChapterID: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChatSessionLifecycle(t *testing.T) {
	s := newTestStore(t)
	owner := createTestUser(t, s, "owner@example.com")
	other := createTestUser(t, s, "other@example.com")

	session, err := s.CreateChatSession(owner.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, "New Chat", session.SessionName)
	assert.Equal(t, "hi", session.Language)

	got, err := s.GetChatSession(session.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, got.UserID)

	_, err = s.AppendChatMessage(session.ID, "user", "What is a fraction?", nil)
	require.NoError(t, err)
	_, err = s.AppendChatMessage(session.ID, "assistant", "A fraction is part of a whole.", nil)
	require.NoError(t, err)

	messages, err := s.ListChatMessages(session.ID)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "assistant", messages[1].Role)

	// Deleting as a non-owner must not touch the session.
	err = s.DeleteChatSession(other.ID, session.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetChatSession(session.ID)
	require.NoError(t, err)

	err = s.DeleteChatSession(owner.ID, session.ID)
	require.NoError(t, err)
	_, err = s.GetChatSession(session.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	messages, err = s.ListChatMessages(session.ID)
	require.NoError(t, err)
	assert.Empty(t, messages, "messages must be deleted with their session")
}

func TestListChatSessionsOrderAndLimit(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "list@example.com")

	first, err := s.CreateChatSession(user.ID, "en")
	require.NoError(t, err)
	second, err := s.CreateChatSession(user.ID, "en")
	require.NoError(t, err)

	// A new message bumps updated_at, moving the session to the front.
	time.Sleep(10 * time.Millisecond)
	_, err = s.AppendChatMessage(first.ID, "user", "bump", nil)
	require.NoError(t, err)

	sessions, err := s.ListChatSessions(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, first.ID, sessions[0].ID)
	assert.Equal(t, second.ID, sessions[1].ID)

	sessions, err = s.ListChatSessions(user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestGetLastNChatMessages(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "trim@example.com")
	session, err := s.CreateChatSession(user.ID, "en")
	require.NoError(t, err)

	contents := []string{"one", "two", "three", "four", "five"}
	for _, c := range contents {
		_, err = s.AppendChatMessage(session.ID, "user", c, nil)
		require.NoError(t, err)
	}

	last3, err := s.GetLastNChatMessages(session.ID, 3)
	require.NoError(t, err)
	require.Len(t, last3, 3)
	assert.Equal(t, "three", last3[0].Content)
	assert.Equal(t, "five", last3[2].Content)

	all, err := s.GetLastNChatMessages(session.ID, 50)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestCountUserMessagesSince(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "count@example.com")
	session, err := s.CreateChatSession(user.ID, "en")
	require.NoError(t, err)

	_, err = s.AppendChatMessage(session.ID, "user", "question", nil)
	require.NoError(t, err)
	_, err = s.AppendChatMessage(session.ID, "assistant", "answer", nil)
	require.NoError(t, err)

	count, err := s.CountUserMessagesSince(user.ID, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count, "assistant turns must not count as queries")

	count, err = s.CountUserMessagesSince(user.ID, time.Now().UTC().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestDocuments(t *testing.T) {
	s := newTestStore(t)
	user := createTestUser(t, s, "docs@example.com")

	doc, err := s.CreateDocument(user.ID, "notes.pdf", 12)
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, 12, doc.NumChunks)

	docs, err := s.ListDocuments(user.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "notes.pdf", docs[0].FileName)

	other := createTestUser(t, s, "docs2@example.com")
	docs, err = s.ListDocuments(other.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)
}
